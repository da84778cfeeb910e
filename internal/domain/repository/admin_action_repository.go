package repository

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminActionRepository is the append-only moderation audit log. There
// is no update or delete; history is never rewritten.
type AdminActionRepository interface {
	Create(ctx context.Context, action *entity.AdminAction) error
	FindAll(ctx context.Context) ([]*entity.AdminAction, error)
	FindByTarget(ctx context.Context, targetTable string, targetID uuid.UUID) ([]*entity.AdminAction, error)
}
