package usecase

import (
	"context"
	"time"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// ModerationInput identifies one moderation call.
type ModerationInput struct {
	Action   entity.ActionType
	TargetID uuid.UUID
	Notes    string
}

// AdminActionOutput is the client projection of one audit record.
type AdminActionOutput struct {
	ID          uuid.UUID `json:"id"`
	AdminID     uuid.UUID `json:"adminId"`
	Action      string    `json:"action"`
	TargetTable string    `json:"targetTable"`
	TargetID    uuid.UUID `json:"targetId"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ModerationUsecase applies the moderation verbs. Every call writes the
// target's new state and appends an audit record in one database
// transaction; repeating a verb re-appends a fresh record.
type ModerationUsecase interface {
	Apply(ctx context.Context, adminID uuid.UUID, input ModerationInput) (*AdminActionOutput, error)
	ListActions(ctx context.Context) ([]*AdminActionOutput, error)
	ListActionsForTarget(ctx context.Context, targetTable string, targetID uuid.UUID) ([]*AdminActionOutput, error)
}
