package migration

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wp-content-migrator/internal/wordpress"
)

// ErrImageNotFound marks an image reference that yielded no bytes. Callers
// treat it as a soft failure: the image is skipped, the record continues.
var ErrImageNotFound = errors.New("image not found")

// ImageFetcher retrieves legacy image binaries referenced by path or URL
type ImageFetcher struct {
	hostBase   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewImageFetcher creates a fetcher. Relative references are resolved against
// hostBase when it is set, or read from the local filesystem when it is not.
func NewImageFetcher(hostBase string, timeout time.Duration, log zerolog.Logger) *ImageFetcher {
	return &ImageFetcher{
		hostBase:   hostBase,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With().Str("component", "images").Logger(),
	}
}

// Fetch loads the bytes behind a legacy image reference. The file name is the
// last path segment, path-traversal segments are stripped, and spaces are
// percent-encoded before the HTTP fetch. Any failure to produce bytes is
// reported as ErrImageNotFound.
func (f *ImageFetcher) Fetch(ctx context.Context, ref string) (*wordpress.Upload, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, ErrImageNotFound
	}

	cleaned := strings.ReplaceAll(ref, "../", "")
	name := path.Base(cleaned)

	target := cleaned
	if !isAbsoluteURL(target) {
		if f.hostBase == "" {
			return f.readFile(target, name)
		}
		target = f.hostBase + target
	}

	if !isAbsoluteURL(target) {
		return f.readFile(target, name)
	}

	target = strings.ReplaceAll(target, " ", "%20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		f.log.Debug().Str("url", target).Err(err).Msg("Bad image URL")
		return nil, ErrImageNotFound
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.Debug().Str("url", target).Err(err).Msg("Image fetch failed")
		return nil, ErrImageNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Debug().Str("url", target).Int("status", resp.StatusCode).Msg("Image fetch failed")
		return nil, ErrImageNotFound
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return nil, ErrImageNotFound
	}

	return &wordpress.Upload{Name: name, Data: data}, nil
}

func (f *ImageFetcher) readFile(p, name string) (*wordpress.Upload, error) {
	data, err := os.ReadFile(p)
	if err != nil || len(data) == 0 {
		f.log.Debug().Str("path", p).Err(err).Msg("Image read failed")
		return nil, ErrImageNotFound
	}
	return &wordpress.Upload{Name: name, Data: data}, nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(strings.ReplaceAll(s, " ", "%20"))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
