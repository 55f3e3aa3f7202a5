package migration

import (
	"context"

	"github.com/wp-content-migrator/internal/wordpress"
)

// RemoteClient is the subset of the WordPress API the engine depends on.
// *wordpress.Client satisfies it; tests substitute mocks.
type RemoteClient interface {
	CreatePost(ctx context.Context, payload *wordpress.PostPayload) (*wordpress.Post, error)
	CreateMedia(ctx context.Context, upload *wordpress.Upload) (*wordpress.Media, error)
	CreateCategory(ctx context.Context, payload *wordpress.TermPayload) (*wordpress.Term, error)
	CreateTag(ctx context.Context, payload *wordpress.TermPayload) (*wordpress.Term, error)
	CreateUser(ctx context.Context, payload *wordpress.UserPayload) (*wordpress.User, error)
	ListCategories(ctx context.Context) ([]wordpress.Term, error)
	ListTags(ctx context.Context) ([]wordpress.Term, error)
	ListUsers(ctx context.Context) ([]wordpress.User, error)
}
