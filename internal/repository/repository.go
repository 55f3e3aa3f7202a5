package repository

import (
	"context"
	"errors"

	"github.com/wp-content-migrator/internal/database"
	"github.com/wp-content-migrator/internal/models"
)

// ErrNotFound is returned when a referenced legacy row does not exist
var ErrNotFound = errors.New("not found")

// PostRepository defines read/update access to the post migration table
type PostRepository interface {
	StreamPending(ctx context.Context, callback func(*models.LegacyPost) error) error
	UpdateStatus(ctx context.Context, id int64, status models.MigrationStatus) error
	CountPending(ctx context.Context) (int, error)
}

// MediaRepository defines read/update access to the media migration table
type MediaRepository interface {
	StreamPending(ctx context.Context, callback func(*models.LegacyMedia) error) error
	UpdateStatus(ctx context.Context, id int64, status models.MigrationStatus) error
	CountPending(ctx context.Context) (int, error)
}

// PictureRepository resolves legacy picture IDs referenced from post bodies
type PictureRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Picture, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Post    PostRepository
	Media   MediaRepository
	Picture PictureRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Post:    NewPostRepo(db),
		Media:   NewMediaRepo(db),
		Picture: NewPictureRepo(db),
	}
}
