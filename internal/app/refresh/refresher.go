package refresh

import (
	"context"
	"fmt"
	"time"

	"isiboard/internal/app/resource"
	"isiboard/internal/app/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Refresher keeps the shared dashboard resources warm between admin visits.
// Manual refetches stay available regardless; this only spares the first
// visitor the cold upstream round trips.
type Refresher struct {
	resources *service.Resources
	cron      *cron.Cron
	interval  string
	logger    zerolog.Logger
}

func New(resources *service.Resources, interval string, logger zerolog.Logger) *Refresher {
	return &Refresher{
		resources: resources,
		cron:      cron.New(),
		interval:  interval,
		logger:    logger.With().Str("component", "refresh").Logger(),
	}
}

// Start schedules the periodic refresh. An interval of "off" disables it.
func (r *Refresher) Start() error {
	if r.interval == "" || r.interval == "off" {
		r.logger.Info().Msg("background refresh disabled")
		return nil
	}
	if _, err := r.cron.AddFunc("@every "+r.interval, r.runOnce); err != nil {
		return fmt.Errorf("refresh.Start: bad interval %q: %w", r.interval, err)
	}
	r.cron.Start()
	r.logger.Info().Str("interval", r.interval).Msg("background refresh started")
	return nil
}

func (r *Refresher) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	start := time.Now()

	// Failures are already recorded on the resources themselves; the stale
	// snapshots keep serving.
	r.resources.Stats.Refresh(ctx)
	resource.RefreshPair(ctx, r.resources.Challenges, r.resources.Quizzes)
	resource.RefreshPair(ctx, r.resources.ChallengeBoard, r.resources.QuizBoard)

	r.logger.Debug().Dur("took", time.Since(start)).Msg("dashboard resources refreshed")
}

// Stop waits for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info().Msg("background refresh stopped")
}
