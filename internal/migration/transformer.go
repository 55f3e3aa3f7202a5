package migration

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/wp-content-migrator/internal/models"
	"github.com/wp-content-migrator/internal/wordpress"
)

// Transformer assembles the destination payload for one legacy record,
// orchestrating the resolver for references and the rewriter for body
// content. Narrow failures (one image, one term name, the featured image)
// degrade the payload and are logged; only failures that make the record
// unusable propagate.
type Transformer struct {
	client   RemoteClient
	resolver *Resolver
	rewriter *Rewriter
	fetcher  *ImageFetcher
	log      zerolog.Logger
}

// NewTransformer creates a transformer
func NewTransformer(client RemoteClient, resolver *Resolver, rewriter *Rewriter, fetcher *ImageFetcher, log zerolog.Logger) *Transformer {
	return &Transformer{
		client:   client,
		resolver: resolver,
		rewriter: rewriter,
		fetcher:  fetcher,
		log:      log.With().Str("component", "transformer").Logger(),
	}
}

// TransformPost builds the complete post payload for one legacy post row
func (t *Transformer) TransformPost(ctx context.Context, post *models.LegacyPost) (*wordpress.PostPayload, error) {
	t.log.Info().Int64("post_id", post.ID).Msg("Assembling post")

	content, err := t.rewriter.RewriteBody(ctx, post)
	if err != nil {
		return nil, err
	}

	status := "draft"
	if post.Published {
		status = "publish"
	}

	source, caption := post.Picture, post.PictureAuthor
	if post.NewsPhoto != "" {
		source = post.NewsPhoto
	}
	if post.NewsPhotoAuthor != "" {
		caption = post.NewsPhotoAuthor
	}

	payload := &wordpress.PostPayload{
		Date:     post.Created,
		DateGMT:  post.Created,
		Modified: post.Modified,
		// The legacy feed always carried created in modified_gmt
		ModifiedGMT:   post.Created,
		Slug:          post.Slug,
		Title:         post.Title,
		Excerpt:       post.Subtitle,
		Content:       content,
		Status:        status,
		FeaturedMedia: t.featuredMedia(ctx, post.ID, source, caption, post.PictureTags),
		Categories:    t.resolver.ResolveCategories(ctx, post.Categories),
		Tags:          t.resolver.ResolveTags(ctx, post.Authors),
		Author:        t.resolver.ResolveAuthor(ctx, post.Authors),
	}

	if len(payload.Categories) > 0 {
		t.log.Info().Int64("post_id", post.ID).Ints("categories", payload.Categories).Msg("Attached to categories")
	} else {
		t.log.Info().Int64("post_id", post.ID).Msg("No category attached")
	}

	return payload, nil
}

// TransformMedia uploads the image behind one standalone media row and
// returns the new attachment ID. A missing image yields 0 without error (the
// row is exhausted, nothing to migrate); an upload failure is the record's
// failure, since the image is all a media row carries.
func (t *Transformer) TransformMedia(ctx context.Context, media *models.LegacyMedia) (int, error) {
	t.log.Info().Int64("media_id", media.ID).Msg("Assembling media")

	upload, err := t.fetcher.Fetch(ctx, media.Picture)
	if errors.Is(err, ErrImageNotFound) {
		t.log.Warn().Int64("media_id", media.ID).Str("picture", media.Picture).Msg("Media image not found")
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	upload.Caption = media.PictureAuthor
	upload.Description = media.PictureTags

	result, err := t.client.CreateMedia(ctx, upload)
	if err != nil {
		return 0, err
	}

	return result.ID, nil
}

// featuredMedia extracts and uploads the featured image for a post. Every
// failure path degrades to "no featured image": 0, logged, never fatal.
func (t *Transformer) featuredMedia(ctx context.Context, postID int64, source, caption, description string) int {
	if source == "" {
		t.log.Info().Int64("post_id", postID).Msg("Featured image not found")
		return 0
	}

	upload, err := t.fetcher.Fetch(ctx, source)
	if err != nil {
		t.log.Warn().Int64("post_id", postID).Str("source", source).Err(err).Msg("Featured image not found")
		return 0
	}

	upload.Caption = caption
	upload.Description = description

	media, err := t.client.CreateMedia(ctx, upload)
	if err != nil {
		t.log.Warn().Int64("post_id", postID).Str("name", upload.Name).Err(err).Msg("Featured image upload failed")
		return 0
	}

	t.log.Info().Int64("post_id", postID).Str("name", upload.Name).Msg("Featured image uploaded")
	return media.ID
}
