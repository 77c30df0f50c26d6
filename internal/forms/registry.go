package forms

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmaher/scrapbill-backend/internal/calc"
	"github.com/dmaher/scrapbill-backend/internal/recalc"
	"github.com/dmaher/scrapbill-backend/pkg/enums"
	pkgerrors "github.com/dmaher/scrapbill-backend/pkg/errors"
	"github.com/dmaher/scrapbill-backend/pkg/logger"
	"github.com/dmaher/scrapbill-backend/pkg/metrics"
)

// Session is the public view of one live form session.
type Session struct {
	ID         uuid.UUID      `json:"id"`
	Kind       enums.FormKind `json:"kind"`
	LastActive time.Time      `json:"lastActive"`
}

type liveSession struct {
	id         uuid.UUID
	kind       enums.FormKind
	lastActive time.Time

	invoice *recalc.InvoiceRecalculator
	docket  *recalc.DocketRecalculator
}

func (s *liveSession) close() {
	if s.invoice != nil {
		s.invoice.Close()
	}
	if s.docket != nil {
		s.docket.Close()
	}
}

// Registry owns every open form session. Sessions are in-memory only, one
// writer each, and swept after sitting idle past the TTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*liveSession

	quiet   time.Duration
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.RecalcMetrics

	now func() time.Time
}

// RegistryParams collects the registry dependencies.
type RegistryParams struct {
	QuietPeriod time.Duration
	SessionTTL  time.Duration
	Logger      *logger.Logger
	Metrics     *metrics.RecalcMetrics
}

// NewRegistry builds the session registry.
func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	if params.QuietPeriod <= 0 {
		params.QuietPeriod = recalc.DefaultQuietPeriod
	}
	if params.SessionTTL <= 0 {
		params.SessionTTL = 30 * time.Minute
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*liveSession),
		quiet:    params.QuietPeriod,
		ttl:      params.SessionTTL,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      time.Now,
	}, nil
}

// Open creates a session for a new editing form of the given kind.
func (r *Registry) Open(kind enums.FormKind) (Session, error) {
	if !kind.IsValid() {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown form kind")
	}

	s := &liveSession{
		id:         uuid.New(),
		kind:       kind,
		lastActive: r.now(),
	}
	switch kind {
	case enums.FormKindInvoice:
		s.invoice = recalc.NewInvoiceRecalculator(r.quiet, nil, r.metrics)
	case enums.FormKindDocket:
		s.docket = recalc.NewDocketRecalculator(r.quiet, nil, r.metrics)
	}

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()

	return Session{ID: s.id, Kind: s.kind, LastActive: s.lastActive}, nil
}

// UpdateInvoice pushes the latest invoice form state into the session and
// returns the instantly recomputed rows.
func (r *Registry) UpdateInvoice(id uuid.UUID, in calc.InvoiceInput) ([]calc.InvoiceRow, error) {
	s, err := r.touch(id, enums.FormKindInvoice)
	if err != nil {
		return nil, err
	}
	return s.invoice.Update(in), nil
}

// UpdateDocket pushes the latest docket form state into the session and
// returns the instantly recomputed rows.
func (r *Registry) UpdateDocket(id uuid.UUID, in calc.DocketInput) ([]calc.DocketRow, error) {
	s, err := r.touch(id, enums.FormKindDocket)
	if err != nil {
		return nil, err
	}
	return s.docket.Update(in), nil
}

// InvoiceTotals returns the last published aggregates for an invoice
// session. The bool is false while a first debounced pass is still pending.
func (r *Registry) InvoiceTotals(id uuid.UUID) (calc.InvoiceResult, bool, error) {
	s, err := r.touch(id, enums.FormKindInvoice)
	if err != nil {
		return calc.InvoiceResult{}, false, err
	}
	res, ok := s.invoice.Aggregates()
	return res, ok, nil
}

// DocketTotals returns the last published aggregates for a docket session.
func (r *Registry) DocketTotals(id uuid.UUID) (calc.DocketResult, bool, error) {
	s, err := r.touch(id, enums.FormKindDocket)
	if err != nil {
		return calc.DocketResult{}, false, err
	}
	res, ok := s.docket.Aggregates()
	return res, ok, nil
}

// Get returns the session metadata.
func (r *Registry) Get(id uuid.UUID) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return Session{}, pkgerrors.New(pkgerrors.CodeNotFound, "form session not found")
	}
	return Session{ID: s.id, Kind: s.kind, LastActive: s.lastActive}, nil
}

// Close tears down a session and its pending timers.
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "form session not found")
	}
	s.close()
	return nil
}

// Sweep removes sessions idle past the TTL and returns how many it closed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*liveSession
	for id, s := range r.sessions {
		if s.lastActive.Before(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.close()
	}
	return len(stale)
}

// RunJanitor sweeps idle sessions on the given interval until the context
// is cancelled, then closes everything that remains.
func (r *Registry) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logg.Info(r.logg.WithFields(ctx, map[string]any{"swept": n}), "swept idle form sessions")
			}
		}
	}
}

// CloseAll tears down every open session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*liveSession, 0, len(r.sessions))
	for id, s := range r.sessions {
		sessions = append(sessions, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

// Len reports how many sessions are open.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) touch(id uuid.UUID, kind enums.FormKind) (*liveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "form session not found")
	}
	if s.kind != kind {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "form session holds a different document kind")
	}
	s.lastActive = r.now()
	return s, nil
}
