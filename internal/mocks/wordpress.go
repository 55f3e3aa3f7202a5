package mocks

import (
	"context"

	"github.com/wp-content-migrator/internal/wordpress"
)

// MockRemoteClient is an in-memory implementation of the engine's
// RemoteClient interface. Created entities get sequential IDs starting at
// 100 so tests can tell them apart from pre-seeded ones.
type MockRemoteClient struct {
	ExistingUsers      []wordpress.User
	ExistingCategories []wordpress.Term
	ExistingTags       []wordpress.Term

	CreatePostError     error
	CreateMediaError    error
	CreateCategoryError error
	CreateTagError      error
	CreateUserError     error
	ListError           error

	CreatedPosts      []*wordpress.PostPayload
	CreatedMedia      []*wordpress.Upload
	CreatedCategories []*wordpress.TermPayload
	CreatedTags       []*wordpress.TermPayload
	CreatedUsers      []*wordpress.UserPayload

	nextID int
}

func NewMockRemoteClient() *MockRemoteClient {
	return &MockRemoteClient{nextID: 100}
}

func (m *MockRemoteClient) allocID() int {
	m.nextID++
	return m.nextID
}

func (m *MockRemoteClient) CreatePost(ctx context.Context, payload *wordpress.PostPayload) (*wordpress.Post, error) {
	if m.CreatePostError != nil {
		return nil, m.CreatePostError
	}
	m.CreatedPosts = append(m.CreatedPosts, payload)
	return &wordpress.Post{ID: m.allocID(), Status: payload.Status}, nil
}

func (m *MockRemoteClient) CreateMedia(ctx context.Context, upload *wordpress.Upload) (*wordpress.Media, error) {
	if m.CreateMediaError != nil {
		return nil, m.CreateMediaError
	}
	m.CreatedMedia = append(m.CreatedMedia, upload)
	return &wordpress.Media{
		ID:        m.allocID(),
		SourceURL: "https://wp.example/uploads/" + upload.Name,
	}, nil
}

func (m *MockRemoteClient) CreateCategory(ctx context.Context, payload *wordpress.TermPayload) (*wordpress.Term, error) {
	if m.CreateCategoryError != nil {
		return nil, m.CreateCategoryError
	}
	m.CreatedCategories = append(m.CreatedCategories, payload)
	return &wordpress.Term{ID: m.allocID(), Name: payload.Name, Slug: payload.Slug}, nil
}

func (m *MockRemoteClient) CreateTag(ctx context.Context, payload *wordpress.TermPayload) (*wordpress.Term, error) {
	if m.CreateTagError != nil {
		return nil, m.CreateTagError
	}
	m.CreatedTags = append(m.CreatedTags, payload)
	return &wordpress.Term{ID: m.allocID(), Name: payload.Name, Slug: payload.Slug}, nil
}

func (m *MockRemoteClient) CreateUser(ctx context.Context, payload *wordpress.UserPayload) (*wordpress.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}
	m.CreatedUsers = append(m.CreatedUsers, payload)
	return &wordpress.User{ID: m.allocID(), Name: payload.Username, Slug: payload.Slug}, nil
}

func (m *MockRemoteClient) ListCategories(ctx context.Context) ([]wordpress.Term, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.ExistingCategories, nil
}

func (m *MockRemoteClient) ListTags(ctx context.Context) ([]wordpress.Term, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.ExistingTags, nil
}

func (m *MockRemoteClient) ListUsers(ctx context.Context) ([]wordpress.User, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.ExistingUsers, nil
}
