package models

// LegacyPost is an immutable snapshot of one row of the migration source
// table for news posts. Dates are kept as raw strings because they pass
// through to the destination payload verbatim.
type LegacyPost struct {
	ID              int64  `db:"id"`
	Title           string `db:"title_rus"`
	Slug            string `db:"slug"`
	Subtitle        string `db:"subtitle_rus"`
	Content         string `db:"content_rus"`
	Published       bool   `db:"published"`
	Created         string `db:"created"`
	Modified        string `db:"modified"`
	NewsPhoto       string `db:"news_photo"`
	NewsPhotoAuthor string `db:"news_photos_author"`
	Picture         string `db:"picture"`
	PictureAuthor   string `db:"picture_author"`
	PictureTags     string `db:"picture_tags"`
	Categories      string `db:"categories"` // comma-separated names
	Authors         string `db:"authors"`    // comma-separated, first = author, rest used as tags
}

// LegacyMedia is one row of the migration source table for standalone images.
type LegacyMedia struct {
	ID            int64  `db:"id"`
	Picture       string `db:"picture"`
	PictureAuthor string `db:"picture_author"`
	PictureTags   string `db:"picture_tags"`
}

// Picture is a row of the legacy pictures table, referenced from post bodies
// by numeric ID through the gallery tag syntax.
type Picture struct {
	Path   string `db:"path"`
	Author string `db:"author"`
}
