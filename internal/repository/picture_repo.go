package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wp-content-migrator/internal/database"
	"github.com/wp-content-migrator/internal/models"
)

// pictureRepo is the concrete implementation of PictureRepository
type pictureRepo struct {
	db *database.DB
}

// NewPictureRepo creates a new picture repository
func NewPictureRepo(db *database.DB) PictureRepository {
	return &pictureRepo{db: db}
}

// GetByID resolves a legacy picture ID to its storage path and author
func (r *pictureRepo) GetByID(ctx context.Context, id int64) (*models.Picture, error) {
	var picture models.Picture
	var author sql.NullString

	err := r.db.QueryRowContext(ctx,
		"SELECT CONCAT(folder, img), author FROM pictures WHERE id = ?", id).
		Scan(&picture.Path, &author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	picture.Author = author.String
	return &picture, nil
}
