package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wp-content-migrator/internal/config"
	"github.com/wp-content-migrator/internal/models"
	"github.com/wp-content-migrator/internal/repository"
)

// Summary reports the outcome of one migration pass over a table
type Summary struct {
	RunID     string
	Processed int
	Done      int
	Failed    int
	Elapsed   time.Duration
}

// Runner drives a single pass: stream pending rows, transform each, create
// the top-level remote entity, and persist the per-record outcome. Records
// are handled strictly one at a time; a record's status is written exactly
// once, after its outcome is fully determined.
type Runner struct {
	repos       *repository.Repositories
	client      RemoteClient
	resolver    *Resolver
	transformer *Transformer
	log         zerolog.Logger
}

// NewRunner wires a runner from already-built collaborators
func NewRunner(repos *repository.Repositories, client RemoteClient, resolver *Resolver, transformer *Transformer, log zerolog.Logger) *Runner {
	return &Runner{
		repos:       repos,
		client:      client,
		resolver:    resolver,
		transformer: transformer,
		log:         log.With().Str("component", "runner").Logger(),
	}
}

// NewEngine assembles the full migration engine from configuration
func NewEngine(repos *repository.Repositories, client RemoteClient, cfg *config.Config, log zerolog.Logger) *Runner {
	fetcher := NewImageFetcher(cfg.Legacy.HostBase, cfg.WordPress.Timeout, log)
	resolver := NewResolver(client, cfg.Legacy.UserDomain, log)
	rewriter := NewRewriter(fetcher, client, repos.Picture, log)
	transformer := NewTransformer(client, resolver, rewriter, fetcher, log)
	return NewRunner(repos, client, resolver, transformer, log)
}

// RunPosts migrates all pending posts in legacy ID order
func (r *Runner) RunPosts(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.New().String()}

	if err := r.resolver.Warm(ctx); err != nil {
		return nil, err
	}

	pending, err := r.repos.Post.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending posts: %w", err)
	}
	r.log.Info().Str("run_id", summary.RunID).Int("pending", pending).Msg("Post migration started")

	err = r.repos.Post.StreamPending(ctx, func(post *models.LegacyPost) error {
		summary.Processed++

		payload, err := r.transformer.TransformPost(ctx, post)
		if err == nil {
			var remoteID int
			if created, createErr := r.client.CreatePost(ctx, payload); createErr != nil {
				err = createErr
			} else {
				remoteID = created.ID
			}
			if err == nil {
				r.log.Info().Int64("post_id", post.ID).Int("remote_id", remoteID).Msg("Post uploaded")
			}
		}

		status := models.StatusDone
		if err != nil {
			status = models.StatusFailed
			summary.Failed++
			r.log.Error().Int64("post_id", post.ID).Err(err).Msg("Post was not uploaded")
		} else {
			summary.Done++
		}

		if err := r.repos.Post.UpdateStatus(ctx, post.ID, status); err != nil {
			return fmt.Errorf("failed to update status for post %d: %w", post.ID, err)
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	summary.Elapsed = time.Since(start)
	r.logSummary("Post migration finished", summary)
	return summary, nil
}

// RunMedia migrates all pending standalone media rows
func (r *Runner) RunMedia(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.New().String()}

	pending, err := r.repos.Media.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending media: %w", err)
	}
	r.log.Info().Str("run_id", summary.RunID).Int("pending", pending).Msg("Media migration started")

	err = r.repos.Media.StreamPending(ctx, func(media *models.LegacyMedia) error {
		summary.Processed++

		remoteID, err := r.transformer.TransformMedia(ctx, media)

		status := models.StatusDone
		if err != nil {
			status = models.StatusFailed
			summary.Failed++
			r.log.Error().Int64("media_id", media.ID).Err(err).Msg("Media was not uploaded")
		} else {
			summary.Done++
			r.log.Info().Int64("media_id", media.ID).Int("remote_id", remoteID).Msg("Media uploaded")
		}

		if err := r.repos.Media.UpdateStatus(ctx, media.ID, status); err != nil {
			return fmt.Errorf("failed to update status for media %d: %w", media.ID, err)
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	summary.Elapsed = time.Since(start)
	r.logSummary("Media migration finished", summary)
	return summary, nil
}

func (r *Runner) logSummary(msg string, s *Summary) {
	r.log.Info().
		Str("run_id", s.RunID).
		Int("processed", s.Processed).
		Int("done", s.Done).
		Int("failed", s.Failed).
		Dur("elapsed", s.Elapsed).
		Msg(msg)
}
