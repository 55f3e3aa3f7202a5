package migration

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wp-content-migrator/internal/wordpress"
)

// defaultAuthor is the account posts fall back to when the legacy row names
// no author at all.
const defaultAuthor = "newsmaker"

// Resolver maps legacy free-text references (category names, tag names,
// author names) to remote entity IDs, creating missing remote entities on
// demand. The three registries are the only cross-record mutable state of a
// run.
type Resolver struct {
	client     RemoteClient
	categories *Registry
	tags       *Registry
	authors    *Registry
	userDomain string
	log        zerolog.Logger
}

// NewResolver creates a resolver with empty registries
func NewResolver(client RemoteClient, userDomain string, log zerolog.Logger) *Resolver {
	return &Resolver{
		client:     client,
		categories: NewRegistry(),
		tags:       NewRegistry(),
		authors:    NewRegistry(),
		userDomain: userDomain,
		log:        log.With().Str("component", "resolver").Logger(),
	}
}

// Warm seeds the registries from a full remote listing. Called once before
// any record is processed; a failure here aborts the run, since an unseeded
// registry would recreate every existing entity.
func (r *Resolver) Warm(ctx context.Context) error {
	users, err := r.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		r.authors.Insert(u.Slug, RemoteRef{ID: u.ID})
	}

	categories, err := r.client.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		r.categories.Insert(c.Name, RemoteRef{ID: c.ID})
	}

	tags, err := r.client.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	for _, t := range tags {
		r.tags.Insert(t.Name, RemoteRef{ID: t.ID})
	}

	r.log.Info().
		Int("users", r.authors.Len()).
		Int("categories", r.categories.Len()).
		Int("tags", r.tags.Len()).
		Msg("Registries seeded from remote")

	return nil
}

// ResolveCategories maps a comma-separated category list to remote IDs,
// creating categories that do not exist yet. A name that fails to resolve is
// skipped, never aborting the record.
func (r *Resolver) ResolveCategories(ctx context.Context, rawCsv string) []int {
	return r.resolveTerms(ctx, splitCSV(rawCsv), r.categories, r.client.CreateCategory)
}

// ResolveTags maps the legacy authors column to tag IDs. The first element is
// the actual author; the remainder were historically entered as tags, and the
// migration preserves that reading.
func (r *Resolver) ResolveTags(ctx context.Context, authorsCsv string) []int {
	names := splitCSV(authorsCsv)
	if len(names) <= 1 {
		return nil
	}
	return r.resolveTerms(ctx, names[1:], r.tags, r.client.CreateTag)
}

func (r *Resolver) resolveTerms(
	ctx context.Context,
	names []string,
	registry *Registry,
	create func(context.Context, *wordpress.TermPayload) (*wordpress.Term, error),
) []int {
	var ids []int
	for _, name := range names {
		name := name
		ref, err := registry.Resolve(name, func() (RemoteRef, error) {
			term, err := create(ctx, &wordpress.TermPayload{Name: name, Slug: Slugify(name)})
			if err != nil {
				return RemoteRef{}, err
			}
			return RemoteRef{ID: term.ID}, nil
		})
		if err != nil {
			r.log.Warn().Str("name", name).Err(err).Msg("Failed to resolve term, skipping")
			continue
		}
		ids = append(ids, ref.ID)
	}
	return ids
}

// ResolveAuthor maps the first element of the legacy authors column to a user
// ID, creating the account when missing. Returns 0 (no author) when creation
// fails; a missing author never fails the record.
func (r *Resolver) ResolveAuthor(ctx context.Context, authorsCsv string) int {
	var first string
	if names := splitCSV(authorsCsv); len(names) > 0 {
		first = names[0]
	}

	slug := defaultAuthor
	if first != "" {
		slug = Slugify(first)
	}

	ref, err := r.authors.Resolve(slug, func() (RemoteRef, error) {
		password, err := randomPassword()
		if err != nil {
			return RemoteRef{}, err
		}
		user, err := r.client.CreateUser(ctx, &wordpress.UserPayload{
			Username: slug,
			Email:    slug + "@" + r.userDomain,
			Slug:     slug,
			Password: password,
			Roles:    []string{"administrator"},
		})
		if err != nil {
			return RemoteRef{}, err
		}
		return RemoteRef{ID: user.ID}, nil
	})
	if err != nil {
		r.log.Warn().Str("author", slug).Err(err).Msg("Failed to resolve author, post gets none")
		return 0
	}

	return ref.ID
}

// randomPassword generates a throwaway credential for synthesized accounts.
// The password is never surfaced; operators reset accounts that need a real
// login.
func randomPassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
