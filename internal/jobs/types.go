package jobs

import "time"

const (
	TaskArchivePlan = "plan:archive"

	QueueArchive = "archive"
)

type ArchivePlanPayload struct {
	PlanID     string    `json:"plan_id"`
	Name       string    `json:"name"`
	Goal       string    `json:"goal,omitempty"`
	Workout    string    `json:"workout"`
	Diet       string    `json:"diet,omitempty"`
	Tips       string    `json:"tips,omitempty"`
	Motivation string    `json:"motivation,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
