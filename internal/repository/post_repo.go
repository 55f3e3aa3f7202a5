package repository

import (
	"context"
	"database/sql"

	"github.com/wp-content-migrator/internal/database"
	"github.com/wp-content-migrator/internal/models"
)

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

// StreamPending walks all not-yet-migrated posts in legacy ID order. Rows
// marked failed are included, so a rerun retries them; only done is terminal.
func (r *postRepo) StreamPending(ctx context.Context, callback func(*models.LegacyPost) error) error {
	query := `
		SELECT id, title_rus, slug, subtitle_rus, content_rus, published, created, modified,
		       news_photo, news_photos_author, picture, picture_author, picture_tags,
		       categories, authors
		FROM migrations_posts
		WHERE status IS NULL OR status != 'done'
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var post models.LegacyPost
		var published int
		var subtitle, content, created, modified sql.NullString
		var newsPhoto, newsPhotoAuthor, picture, pictureAuthor, pictureTags sql.NullString
		var categories, authors sql.NullString

		err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &subtitle, &content, &published,
			&created, &modified, &newsPhoto, &newsPhotoAuthor, &picture,
			&pictureAuthor, &pictureTags, &categories, &authors,
		)
		if err != nil {
			return err
		}

		post.Published = published != 0
		post.Subtitle = subtitle.String
		post.Content = content.String
		post.Created = created.String
		post.Modified = modified.String
		post.NewsPhoto = newsPhoto.String
		post.NewsPhotoAuthor = newsPhotoAuthor.String
		post.Picture = picture.String
		post.PictureAuthor = pictureAuthor.String
		post.PictureTags = pictureTags.String
		post.Categories = categories.String
		post.Authors = authors.String

		if err := callback(&post); err != nil {
			return err
		}
	}

	return rows.Err()
}

// UpdateStatus persists the migration outcome for one post
func (r *postRepo) UpdateStatus(ctx context.Context, id int64, status models.MigrationStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE migrations_posts SET status = ? WHERE id = ?", string(status), id)
	return err
}

// CountPending returns the number of posts still awaiting migration
func (r *postRepo) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM migrations_posts WHERE status IS NULL OR status != 'done'").Scan(&count)
	return count, err
}
