package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hearing-server/api/casestore"
	"hearing-server/models/hearing"
)

const DEFAULT_REFRESH_SCHEDULE = "@every 5m"
const DEFAULT_REFRESH_TIMEOUT = 30 * time.Second

// ErrAlreadyStarted is returned by Start on a running refresher.
var ErrAlreadyStarted = errors.New("refresher already started")

// SnapshotWriter persists the result of a refresh run.
type SnapshotWriter interface {
	SaveSnapshot(s *hearing.Snapshot) error
}

// HearingsRefresherService periodically polls the case store and replaces the
// cached snapshot. Time classification is left to query time.
type HearingsRefresherService struct {
	store     SnapshotWriter
	caseStore casestore.CaseStoreAPI
	logger    *zap.Logger
	schedule  string
	timeout   time.Duration
	now       func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewHearingsRefresherService constructs a refresher. Empty schedule and zero
// timeout use the defaults.
func NewHearingsRefresherService(
	store SnapshotWriter,
	caseStore casestore.CaseStoreAPI,
	schedule string,
	timeout time.Duration,
	logger *zap.Logger,
) *HearingsRefresherService {
	if schedule == "" {
		schedule = DEFAULT_REFRESH_SCHEDULE
	}
	if timeout <= 0 {
		timeout = DEFAULT_REFRESH_TIMEOUT
	}
	return &HearingsRefresherService{
		store:     store,
		caseStore: caseStore,
		logger:    logger.Named("HearingsRefresherService"),
		schedule:  schedule,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Start runs one refresh immediately and then schedules the periodic job.
// A failing first run is logged and does not prevent scheduling.
func (hr *HearingsRefresherService) Start(ctx context.Context) error {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	if hr.running {
		return ErrAlreadyStarted
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(hr.schedule, func() { hr.runJob(ctx) }); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", hr.schedule, err)
	}

	hr.runJob(ctx)

	c.Start()
	hr.cron = c
	hr.running = true
	hr.logger.Info("Scheduled periodic hearings refresh", zap.String("schedule", hr.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (hr *HearingsRefresherService) Stop() {
	hr.mu.Lock()
	c := hr.cron
	hr.cron = nil
	hr.running = false
	hr.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	hr.logger.Info("Stopped hearings refresher")
}

func (hr *HearingsRefresherService) runJob(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	hr.logger.Debug("Running periodic hearings refresher job")
	if _, err := hr.RefreshHearings(ctx); err != nil {
		hr.logger.Error("RefreshHearings returned error, keeping previous snapshot", zap.Error(err))
	}
}

// RefreshHearings fetches, validates and stores one snapshot.
func (hr *HearingsRefresherService) RefreshHearings(ctx context.Context) (*hearing.Snapshot, error) {
	runCtx, cancel := context.WithTimeout(ctx, hr.timeout)
	defer cancel()

	rows, err := hr.caseStore.ListCases(runCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case rows: %w", err)
	}

	result := IngestCaseRows(rows, hr.logger)
	snapshot := &hearing.Snapshot{
		ID:          uuid.NewString(),
		FetchedAt:   hr.now().UTC(),
		Records:     result.Records,
		Quarantined: result.Quarantined,
	}

	if err := hr.store.SaveSnapshot(snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot %s: %w", snapshot.ID, err)
	}

	hr.logger.Info("Hearings snapshot refreshed",
		zap.String("snapshot_id", snapshot.ID),
		zap.Int("rows", len(rows)),
		zap.Int("records", len(snapshot.Records)),
		zap.Int("quarantined", len(snapshot.Quarantined)),
	)
	return snapshot, nil
}
