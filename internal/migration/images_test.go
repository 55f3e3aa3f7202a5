package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, hostBase string) *ImageFetcher {
	t.Helper()
	fetcher := NewImageFetcher(hostBase, 5*time.Second, zerolog.Nop())
	httpmock.ActivateNonDefault(fetcher.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return fetcher
}

func TestImageFetcher_RelativePathResolvedAgainstHost(t *testing.T) {
	fetcher := newTestFetcher(t, "http://legacy.example")
	httpmock.RegisterResponder("GET", "http://legacy.example/pic/x.jpg",
		httpmock.NewBytesResponder(200, []byte("jpegbytes")))

	upload, err := fetcher.Fetch(context.Background(), "/pic/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "x.jpg", upload.Name)
	assert.Equal(t, []byte("jpegbytes"), upload.Data)
}

func TestImageFetcher_AbsoluteURLBypassesHost(t *testing.T) {
	fetcher := newTestFetcher(t, "http://legacy.example")
	httpmock.RegisterResponder("GET", "http://other.example/a.jpg",
		httpmock.NewBytesResponder(200, []byte("data")))

	upload, err := fetcher.Fetch(context.Background(), "http://other.example/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", upload.Name)
}

func TestImageFetcher_SpacesPercentEncoded(t *testing.T) {
	fetcher := newTestFetcher(t, "http://legacy.example")
	httpmock.RegisterResponder("GET", "http://legacy.example/pic/my%20pic.jpg",
		httpmock.NewBytesResponder(200, []byte("data")))

	upload, err := fetcher.Fetch(context.Background(), "/pic/my pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, "my pic.jpg", upload.Name)
}

func TestImageFetcher_TraversalSegmentsStripped(t *testing.T) {
	fetcher := newTestFetcher(t, "http://legacy.example")
	httpmock.RegisterResponder("GET", "http://legacy.example/pic/x.jpg",
		httpmock.NewBytesResponder(200, []byte("data")))

	_, err := fetcher.Fetch(context.Background(), "/pic/../pic/x.jpg")
	require.NoError(t, err)
}

func TestImageFetcher_NotFound(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
	}{
		{"http 404", httpmock.NewStringResponder(404, "not here")},
		{"empty body", httpmock.NewBytesResponder(200, nil)},
		{"network error", httpmock.NewErrorResponder(assert.AnError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newTestFetcher(t, "http://legacy.example")
			httpmock.RegisterResponder("GET", "http://legacy.example/pic/x.jpg", tt.responder)

			_, err := fetcher.Fetch(context.Background(), "/pic/x.jpg")
			assert.ErrorIs(t, err, ErrImageNotFound)
		})
	}
}

func TestImageFetcher_EmptyReference(t *testing.T) {
	fetcher := newTestFetcher(t, "http://legacy.example")

	_, err := fetcher.Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestImageFetcher_LocalFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.jpg")
	require.NoError(t, os.WriteFile(path, []byte("filedata"), 0o644))

	fetcher := NewImageFetcher("", 5*time.Second, zerolog.Nop())

	upload, err := fetcher.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "local.jpg", upload.Name)
	assert.Equal(t, []byte("filedata"), upload.Data)

	_, err = fetcher.Fetch(context.Background(), filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, ErrImageNotFound)
}
