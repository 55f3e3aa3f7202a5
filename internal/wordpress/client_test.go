package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wp-content-migrator/internal/config"
)

const testBase = "https://wp.example/wp-json/wp/v2"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := &config.WordPressConfig{
		BaseURL:  testBase,
		Username: "migrator",
		Password: "secret",
		Timeout:  5 * time.Second,
	}
	client := NewClient(cfg, zerolog.Nop())
	httpmock.ActivateNonDefault(client.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestCreatePost_Success(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/posts",
		httpmock.NewStringResponder(201, `{"id": 12, "link": "https://wp.example/?p=12", "status": "publish"}`))

	post, err := client.CreatePost(context.Background(), &PostPayload{Title: "t", Status: "publish"})
	require.NoError(t, err)
	assert.Equal(t, 12, post.ID)
	assert.Equal(t, "https://wp.example/?p=12", post.Link)
}

func TestCreatePost_RejectedOnValidationError(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/posts",
		httpmock.NewStringResponder(400, `{"code": "rest_invalid_param"}`))

	_, err := client.CreatePost(context.Background(), &PostPayload{})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestCreatePost_TransientOnServerError(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/posts",
		httpmock.NewStringResponder(502, "bad gateway"))

	_, err := client.CreatePost(context.Background(), &PostPayload{})
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestCreatePost_TransientOnNetworkError(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/posts",
		httpmock.NewErrorResponder(assert.AnError))

	_, err := client.CreatePost(context.Background(), &PostPayload{})
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestCreatePost_MissingIDRejected(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/posts",
		httpmock.NewStringResponder(201, `{}`))

	_, err := client.CreatePost(context.Background(), &PostPayload{})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestCreatePost_UndecodableResponseRejected(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/posts",
		httpmock.NewStringResponder(200, `<html>maintenance</html>`))

	_, err := client.CreatePost(context.Background(), &PostPayload{})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestCreateMedia_TwoStepUpload(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("POST", testBase+"/media",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "attachment; filename=x.jpg", req.Header.Get("Content-Disposition"))
			assert.Equal(t, "image/jpg", req.Header.Get("Content-Type"))
			return httpmock.NewStringResponse(201, `{"id": 5, "source_url": "https://wp.example/uploads/x.jpg"}`), nil
		})
	httpmock.RegisterResponder("POST", testBase+"/media/5",
		httpmock.NewStringResponder(200, `{"id": 5, "source_url": "https://wp.example/uploads/x.jpg"}`))

	media, err := client.CreateMedia(context.Background(), &Upload{
		Name:    "x.jpg",
		Data:    []byte("bytes"),
		Caption: "Photo Desk",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, media.ID)
	assert.Equal(t, "https://wp.example/uploads/x.jpg", media.SourceURL)

	calls := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, calls["POST "+testBase+"/media"])
	assert.Equal(t, 1, calls["POST "+testBase+"/media/5"])
}

func TestCreateMedia_NoMetadataSkipsSecondStep(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/media",
		httpmock.NewStringResponder(201, `{"id": 5, "source_url": "https://wp.example/uploads/x.jpg"}`))

	_, err := client.CreateMedia(context.Background(), &Upload{Name: "x.jpg", Data: []byte("bytes")})
	require.NoError(t, err)

	calls := httpmock.GetCallCountInfo()
	assert.Zero(t, calls["POST "+testBase+"/media/5"])
}

func TestCreateMedia_MetadataFailureDoesNotFailUpload(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/media",
		httpmock.NewStringResponder(201, `{"id": 5, "source_url": "https://wp.example/uploads/x.jpg"}`))
	httpmock.RegisterResponder("POST", testBase+"/media/5",
		httpmock.NewStringResponder(500, "boom"))

	media, err := client.CreateMedia(context.Background(), &Upload{
		Name:        "x.jpg",
		Data:        []byte("bytes"),
		Description: "tags",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, media.ID)
}

func TestCreateMedia_MissingSourceURLRejected(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/media",
		httpmock.NewStringResponder(201, `{"id": 5}`))

	_, err := client.CreateMedia(context.Background(), &Upload{Name: "x.jpg", Data: []byte("b")})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestCreateUser_Success(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", testBase+"/users",
		httpmock.NewStringResponder(201, `{"id": 9, "name": "ivan.petrov", "slug": "ivan.petrov"}`))

	user, err := client.CreateUser(context.Background(), &UserPayload{Username: "ivan.petrov"})
	require.NoError(t, err)
	assert.Equal(t, 9, user.ID)
}

func TestListCategories_WalksPages(t *testing.T) {
	client := newTestClient(t)

	page1 := "["
	for i := 1; i <= listPageSize; i++ {
		if i > 1 {
			page1 += ","
		}
		page1 += fmt.Sprintf(`{"id": %d, "name": "cat%d"}`, i, i)
	}
	page1 += "]"

	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/categories?per_page=%d&page=1", testBase, listPageSize),
		httpmock.NewStringResponder(200, page1))
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/categories?per_page=%d&page=2", testBase, listPageSize),
		httpmock.NewStringResponder(200, `[{"id": 101, "name": "last"}]`))

	terms, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, terms, listPageSize+1)
	assert.Equal(t, "last", terms[listPageSize].Name)
}

func TestListTags_ExactPageMultiple(t *testing.T) {
	client := newTestClient(t)

	page1 := "["
	for i := 1; i <= listPageSize; i++ {
		if i > 1 {
			page1 += ","
		}
		page1 += fmt.Sprintf(`{"id": %d, "name": "tag%d"}`, i, i)
	}
	page1 += "]"

	// A collection of exactly per_page entities has no short final page;
	// WordPress answers the request past the end with a 400.
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/tags?per_page=%d&page=1", testBase, listPageSize),
		httpmock.NewStringResponder(200, page1))
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/tags?per_page=%d&page=2", testBase, listPageSize),
		httpmock.NewStringResponder(400, `{"code":"rest_post_invalid_page_number","message":"The page number requested is larger than the number of pages available."}`))

	terms, err := client.ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, terms, listPageSize)
}

func TestListUsers_ExactPageMultiple(t *testing.T) {
	client := newTestClient(t)

	page1 := "["
	for i := 1; i <= listPageSize; i++ {
		if i > 1 {
			page1 += ","
		}
		page1 += fmt.Sprintf(`{"id": %d, "slug": "user%d"}`, i, i)
	}
	page1 += "]"

	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/users?per_page=%d&page=1", testBase, listPageSize),
		httpmock.NewStringResponder(200, page1))
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/users?per_page=%d&page=2", testBase, listPageSize),
		httpmock.NewStringResponder(400, `{"code":"rest_post_invalid_page_number"}`))

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, listPageSize)
}

func TestListTags_FirstPageErrorPropagates(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/tags?per_page=%d&page=1", testBase, listPageSize),
		httpmock.NewStringResponder(400, `{"code":"rest_post_invalid_page_number"}`))

	_, err := client.ListTags(context.Background())
	require.Error(t, err)
}

func TestListTags_SinglePage(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/tags?per_page=%d&page=1", testBase, listPageSize),
		httpmock.NewStringResponder(200, `[{"id": 4, "name": "economy", "slug": "economy"}]`))

	terms, err := client.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "economy", terms[0].Name)
}

func TestListUsers_AuthSent(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET",
		fmt.Sprintf("%s/users?per_page=%d&page=1", testBase, listPageSize),
		func(req *http.Request) (*http.Response, error) {
			user, pass, ok := req.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "migrator", user)
			assert.Equal(t, "secret", pass)
			return httpmock.NewStringResponse(200, `[{"id": 1, "name": "Newsmaker", "slug": "newsmaker"}]`), nil
		})

	users, err := client.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "newsmaker", users[0].Slug)
}
