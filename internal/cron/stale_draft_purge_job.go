package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dmaher/scrapbill-backend/pkg/logger"
)

const defaultStaleDraftMaxAge = 14 * 24 * time.Hour

type staleDraftStore interface {
	DeleteStaleDrafts(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

// StaleDraftPurgeJobParams configure the draft purge job.
type StaleDraftPurgeJobParams struct {
	Logger   *logger.Logger
	Invoices staleDraftStore
	Dockets  staleDraftStore
	MaxAge   time.Duration
}

// NewStaleDraftPurgeJob builds the job that removes abandoned draft
// documents. Both stores are swept; a failure in one does not stop the
// other.
func NewStaleDraftPurgeJob(params StaleDraftPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Invoices == nil {
		return nil, fmt.Errorf("invoice store required")
	}
	if params.Dockets == nil {
		return nil, fmt.Errorf("docket store required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultStaleDraftMaxAge
	}
	return &staleDraftPurgeJob{
		logg:     params.Logger,
		invoices: params.Invoices,
		dockets:  params.Dockets,
		maxAge:   maxAge,
		now:      time.Now,
	}, nil
}

type staleDraftPurgeJob struct {
	logg     *logger.Logger
	invoices staleDraftStore
	dockets  staleDraftStore
	maxAge   time.Duration
	now      func() time.Time
}

func (j *staleDraftPurgeJob) Name() string { return "stale-draft-purge" }

func (j *staleDraftPurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.maxAge)

	var errs error
	invoiceIDs, err := j.invoices.DeleteStaleDrafts(ctx, cutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purge invoice drafts: %w", err))
	}
	docketIDs, err := j.dockets.DeleteStaleDrafts(ctx, cutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("purge docket drafts: %w", err))
	}
	if errs != nil {
		return errs
	}

	fields := map[string]any{
		"cutoff":   cutoff.Format(time.RFC3339),
		"invoices": len(invoiceIDs),
		"dockets":  len(docketIDs),
	}
	j.logg.Info(j.logg.WithFields(ctx, fields), "purged stale drafts")
	return nil
}
