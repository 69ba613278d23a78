package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/briangreenhill/fitcoach/internal/plan"
	"github.com/briangreenhill/fitcoach/internal/store"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
)

// Enqueuer is the part of *asynq.Client the archiver uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Archiver queues finished plans for the worker to store.
type Archiver struct {
	q   Enqueuer
	now func() time.Time
}

func NewArchiver(q Enqueuer) *Archiver {
	return &Archiver{q: q, now: time.Now}
}

// Archive enqueues one plan. The plan id doubles as the task id, so a repeat
// for the same plan is dropped by the queue.
func (a *Archiver) Archive(ctx context.Context, planID uuid.UUID, p plan.Profile, s plan.Sections) error {
	payload, err := json.Marshal(ArchivePlanPayload{
		PlanID:     planID.String(),
		Name:       p.Name,
		Goal:       p.Goal,
		Workout:    s.Workout,
		Diet:       s.Diet,
		Tips:       s.Tips,
		Motivation: s.Motivation,
		CreatedAt:  a.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal archive payload: %w", err)
	}

	task := asynq.NewTask(TaskArchivePlan, payload)
	_, err = a.q.EnqueueContext(ctx, task,
		asynq.Queue(QueueArchive),
		asynq.TaskID(planID.String()),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TaskArchivePlan, err)
	}
	return nil
}

// PlanSaver is the part of *store.Queries the handler uses.
type PlanSaver interface {
	CreatePlan(ctx context.Context, arg store.CreatePlanParams) error
}

// NewArchiveHandler returns the worker handler for TaskArchivePlan. Payloads
// that can never succeed skip the retry queue.
func NewArchiveHandler(saver PlanSaver, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p ArchivePlanPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("bad archive payload")
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		id, err := uuid.Parse(p.PlanID)
		if err != nil {
			return fmt.Errorf("plan id %q: %v: %w", p.PlanID, err, asynq.SkipRetry)
		}
		if p.Workout == "" {
			return fmt.Errorf("plan %s has no workout: %w", id, asynq.SkipRetry)
		}

		start := time.Now()
		err = saver.CreatePlan(ctx, store.CreatePlanParams{
			ID:         id,
			Name:       p.Name,
			Goal:       pgtype.Text{String: p.Goal, Valid: p.Goal != ""},
			Workout:    p.Workout,
			Diet:       p.Diet,
			Tips:       p.Tips,
			Motivation: p.Motivation,
			CreatedAt:  p.CreatedAt,
		})
		if err != nil {
			log.Warn().Err(err).Str("plan_id", p.PlanID).Msg("archive failed")
			return fmt.Errorf("create plan: %w", err)
		}
		log.Info().Str("plan_id", p.PlanID).Dur("duration", time.Since(start)).Msg("plan archived")
		return nil
	}
}
