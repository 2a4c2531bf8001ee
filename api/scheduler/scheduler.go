package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/stores"
)

// Scheduler handles periodic background jobs: flushing the dealer registry
// to disk and logging a daily summary of the invoice queue.
type Scheduler struct {
	cron     *cron.Cron
	Registry *stores.Registry
	Store    stores.Store
}

// New creates a new scheduler instance
func New(registry *stores.Registry, store stores.Store) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		Registry: registry,
		Store:    store,
	}
}

// Start begins the scheduler with all registered jobs. The autosave
// schedule comes from config (AUTOSAVE_CRON).
func (s *Scheduler) Start(autosaveSpec string) {
	_, err := s.cron.AddFunc(autosaveSpec, s.autosave)
	if err != nil {
		zap.S().Errorw("failed to register autosave job", "error", err)
	}

	// Log the staged queue every morning so a missed billing run is visible.
	_, err = s.cron.AddFunc("0 7 * * *", s.logQueueSummary)
	if err != nil {
		zap.S().Errorw("failed to register queue summary job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("dealer-engine scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("dealer-engine scheduler stopped")
}

func (s *Scheduler) autosave() {
	if err := s.Store.SaveDealers(s.Registry); err != nil {
		zap.S().Errorw("failed to autosave dealer configs", "error", err)
		return
	}
	zap.S().Debug("dealer configs autosaved")
}

func (s *Scheduler) logQueueSummary() {
	staged := s.Registry.StagedDealers()
	totalDue, err := s.Registry.QueuedTotalDue()
	if err != nil {
		zap.S().Errorw("failed to compute queued total due", "error", err)
		return
	}
	zap.S().Infow("invoice queue summary",
		"stagedDealers", len(staged),
		"vehicles", s.Registry.QueuedVehicleCount(),
		"totalDue", totalDue,
	)
}
