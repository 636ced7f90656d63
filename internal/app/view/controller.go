package view

import (
	"context"
	"fmt"
	"time"

	"isiboard/internal/common"
	"isiboard/internal/metrics"

	"github.com/rs/zerolog"
)

// Controller owns view transitions: every switch is validated against the
// closed view set before it is persisted. Concurrent switches by the same
// admin resolve last-write-wins at the store, like any other snapshot here.
type Controller struct {
	store   Store
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewController(store Store, logger zerolog.Logger, m *metrics.Metrics) *Controller {
	return &Controller{
		store:   store,
		logger:  logger.With().Str("component", "view").Logger(),
		metrics: m,
	}
}

func (c *Controller) Current(ctx context.Context, adminID string) (State, error) {
	return c.store.Get(ctx, adminID)
}

// Switch moves the admin to v with its navigation payload and persists the
// result. Views addressed to a single entity reject an empty payload.
func (c *Controller) Switch(ctx context.Context, adminID string, v View, nav Nav) (State, error) {
	if _, err := Parse(string(v)); err != nil {
		return State{}, err
	}
	if v.NeedsChallengeID() && nav.ChallengeID == "" {
		return State{}, fmt.Errorf("%w: view %q requires challenge_id", common.ErrValidation, v)
	}
	if v.NeedsQuizID() && nav.QuizID == "" {
		return State{}, fmt.Errorf("%w: view %q requires quiz_id", common.ErrValidation, v)
	}
	if v.NeedsStudentID() && nav.StudentID == "" {
		return State{}, fmt.Errorf("%w: view %q requires student_id", common.ErrValidation, v)
	}

	state, err := c.store.Get(ctx, adminID)
	if err != nil {
		return State{}, err
	}
	state.CurrentView = v
	state.Nav = nav
	state.LastRoute = routeFor(v, nav)
	state.UpdatedAt = time.Now()
	if err := c.store.Save(ctx, adminID, state); err != nil {
		return State{}, err
	}

	if c.metrics != nil {
		c.metrics.IncViewSwitch(string(v))
	}
	c.logger.Debug().Str("admin_id", adminID).Str("view", string(v)).Msg("view switched")
	return state, nil
}

// Update applies fn to the admin's state and persists it. Used by the editor
// to keep its draft inside the same persisted state object.
func (c *Controller) Update(ctx context.Context, adminID string, fn func(*State) error) (State, error) {
	state, err := c.store.Get(ctx, adminID)
	if err != nil {
		return State{}, err
	}
	if err := fn(&state); err != nil {
		return State{}, err
	}
	state.UpdatedAt = time.Now()
	if err := c.store.Save(ctx, adminID, state); err != nil {
		return State{}, err
	}
	return state, nil
}
