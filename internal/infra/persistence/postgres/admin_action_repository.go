package postgres

import (
	"context"

	"bazar/internal/domain/entity"
	"bazar/internal/domain/repository"
	"bazar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// adminActionRepository implements the append-only audit log using GORM.
type adminActionRepository struct {
	db *gorm.DB
}

// NewAdminActionRepository is the constructor for adminActionRepository.
func NewAdminActionRepository(db *gorm.DB) repository.AdminActionRepository {
	return &adminActionRepository{db: db}
}

func (repo *adminActionRepository) Create(ctx context.Context, action *entity.AdminAction) error {
	actionM := toAdminActionModel(action)
	if err := repo.db.WithContext(ctx).Create(actionM).Error; err != nil {
		return errors.Wrap(err, "failed to create admin action")
	}

	action.ID = actionM.ID
	action.CreatedAt = actionM.CreatedAt

	return nil
}

func (repo *adminActionRepository) FindAll(ctx context.Context) ([]*entity.AdminAction, error) {
	return repo.findMany(repo.db.WithContext(ctx))
}

func (repo *adminActionRepository) FindByTarget(ctx context.Context, targetTable string, targetID uuid.UUID) ([]*entity.AdminAction, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("target_table = ? AND target_id = ?", targetTable, targetID))
}

func (repo *adminActionRepository) findMany(query *gorm.DB) ([]*entity.AdminAction, error) {
	var models []model.AdminActionModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list admin actions")
	}

	actions := make([]*entity.AdminAction, 0, len(models))
	for i := range models {
		actions = append(actions, toAdminActionDomain(&models[i]))
	}

	return actions, nil
}

func toAdminActionDomain(m *model.AdminActionModel) *entity.AdminAction {
	return &entity.AdminAction{
		ID:          m.ID,
		AdminID:     m.AdminID,
		Action:      entity.ActionType(m.Action),
		TargetTable: m.TargetTable,
		TargetID:    m.TargetID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}

func toAdminActionModel(a *entity.AdminAction) *model.AdminActionModel {
	return &model.AdminActionModel{
		ID:          a.ID,
		AdminID:     a.AdminID,
		Action:      string(a.Action),
		TargetTable: a.TargetTable,
		TargetID:    a.TargetID,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
	}
}
