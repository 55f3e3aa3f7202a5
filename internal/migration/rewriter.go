package migration

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wp-content-migrator/internal/models"
	"github.com/wp-content-migrator/internal/repository"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// galleryTagPattern matches the legacy in-body gallery placeholder, which
// references a picture row by numeric ID: [NMGALLERY]123...
var galleryTagPattern = regexp.MustCompile(`\[NMGALLERY\](\d+)`)

// Rewriter parses legacy post bodies, uploads every referenced image to the
// destination and rewrites the body to point at the new URLs. Legacy content
// is not well-formed HTML; the parser repairs broken markup instead of
// rejecting it, and a failed image is a per-image soft failure that leaves
// the element untouched.
type Rewriter struct {
	fetcher  *ImageFetcher
	client   RemoteClient
	pictures repository.PictureRepository
	log      zerolog.Logger
}

// NewRewriter creates a rewriter
func NewRewriter(fetcher *ImageFetcher, client RemoteClient, pictures repository.PictureRepository, log zerolog.Logger) *Rewriter {
	return &Rewriter{
		fetcher:  fetcher,
		client:   client,
		pictures: pictures,
		log:      log.With().Str("component", "rewriter").Logger(),
	}
}

// RewriteBody returns the post body with every migratable image reference
// rewritten to its new remote URL. It fails only when the body cannot be
// parsed at all.
func (w *Rewriter) RewriteBody(ctx context.Context, post *models.LegacyPost) (string, error) {
	doc, err := html.Parse(strings.NewReader(post.Content))
	if err != nil {
		return "", fmt.Errorf("failed to parse post body: %w", err)
	}

	images, galleries := collectElements(doc)

	for _, img := range images {
		w.rewriteImage(ctx, post, img)
	}

	if len(galleries) > 0 {
		// The first gallery container is a legacy layout artifact and is
		// dropped outright, matching how already-migrated content looks.
		removeNode(galleries[0])
		galleries = galleries[1:]
	}
	for _, gallery := range galleries {
		w.rewriteGallery(ctx, post, gallery)
	}

	return renderBody(doc)
}

// rewriteImage uploads the image behind a plain <img> element and points its
// src at the returned remote URL
func (w *Rewriter) rewriteImage(ctx context.Context, post *models.LegacyPost, img *html.Node) {
	src := attrValue(img, "src")
	if src == "" {
		return
	}

	upload, err := w.fetcher.Fetch(ctx, src)
	if err != nil {
		w.log.Warn().Int64("post_id", post.ID).Str("src", src).Err(err).Msg("Inline image skipped")
		return
	}
	upload.Description = post.PictureTags

	media, err := w.client.CreateMedia(ctx, upload)
	if err != nil {
		w.log.Warn().Int64("post_id", post.ID).Str("src", src).Err(err).Msg("Inline image upload failed")
		return
	}

	setAttrValue(img, "src", media.SourceURL)
	w.log.Info().Int64("post_id", post.ID).Str("name", upload.Name).Msg("Inline image uploaded")
}

// rewriteGallery resolves a gallery placeholder to its picture row, uploads
// the picture and replaces the container content with a plain <img>
func (w *Rewriter) rewriteGallery(ctx context.Context, post *models.LegacyPost, gallery *html.Node) {
	match := galleryTagPattern.FindStringSubmatch(textContent(gallery))
	if match == nil {
		return
	}
	id, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return
	}

	picture, err := w.pictures.GetByID(ctx, id)
	if err != nil {
		w.log.Warn().Int64("post_id", post.ID).Int64("picture_id", id).Err(err).Msg("Gallery picture lookup failed")
		return
	}

	upload, err := w.fetcher.Fetch(ctx, picture.Path)
	if err != nil {
		w.log.Warn().Int64("post_id", post.ID).Int64("picture_id", id).Err(err).Msg("Gallery image skipped")
		return
	}
	upload.Description = post.PictureTags

	media, err := w.client.CreateMedia(ctx, upload)
	if err != nil {
		w.log.Warn().Int64("post_id", post.ID).Int64("picture_id", id).Err(err).Msg("Gallery image upload failed")
		return
	}

	// Replace the placeholder text with an image element
	for gallery.FirstChild != nil {
		gallery.RemoveChild(gallery.FirstChild)
	}
	gallery.AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "img",
		DataAtom: atom.Img,
		Attr:     []html.Attribute{{Key: "src", Val: media.SourceURL}},
	})

	w.log.Info().Int64("post_id", post.ID).Str("name", upload.Name).Msg("Gallery image uploaded")
}

// collectElements gathers <img> and gallery container (<object>) elements in
// document order
func collectElements(doc *html.Node) (images, galleries []*html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Img:
				images = append(images, n)
			case atom.Object:
				galleries = append(galleries, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return images, galleries
}

// renderBody renders the children of <body>, so callers get back content
// fragments rather than a full document
func renderBody(doc *html.Node) (string, error) {
	body := findElement(doc, atom.Body)
	if body == nil {
		return "", fmt.Errorf("failed to parse post body: no body element")
	}

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("failed to render post body: %w", err)
		}
	}
	return sb.String(), nil
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttrValue(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
