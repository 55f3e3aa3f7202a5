package repository

import (
	"context"
	"database/sql"

	"github.com/wp-content-migrator/internal/database"
	"github.com/wp-content-migrator/internal/models"
)

// mediaRepo is the concrete implementation of MediaRepository
type mediaRepo struct {
	db *database.DB
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(db *database.DB) MediaRepository {
	return &mediaRepo{db: db}
}

// StreamPending walks all not-yet-migrated media rows
func (r *mediaRepo) StreamPending(ctx context.Context, callback func(*models.LegacyMedia) error) error {
	query := `
		SELECT id, picture, picture_author, picture_tags
		FROM migrations_media
		WHERE status IS NULL OR status != 'done'
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var media models.LegacyMedia
		var picture, pictureAuthor, pictureTags sql.NullString

		if err := rows.Scan(&media.ID, &picture, &pictureAuthor, &pictureTags); err != nil {
			return err
		}

		media.Picture = picture.String
		media.PictureAuthor = pictureAuthor.String
		media.PictureTags = pictureTags.String

		if err := callback(&media); err != nil {
			return err
		}
	}

	return rows.Err()
}

// UpdateStatus persists the migration outcome for one media row
func (r *mediaRepo) UpdateStatus(ctx context.Context, id int64, status models.MigrationStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE migrations_media SET status = ? WHERE id = ?", string(status), id)
	return err
}

// CountPending returns the number of media rows still awaiting migration
func (r *mediaRepo) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM migrations_media WHERE status IS NULL OR status != 'done'").Scan(&count)
	return count, err
}
