package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// moderationService implements the ModerationUsecase interface. Each
// verb writes the target's new state and appends an audit record in one
// database transaction.
type moderationService struct {
	txManager  repository.TransactionManager
	actionRepo repository.AdminActionRepository
	logger     *slog.Logger
}

// ModerationServiceParams holds dependencies for moderationService, injected by Fx.
type ModerationServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ActionRepo repository.AdminActionRepository
	Logger     *slog.Logger
}

// NewModerationService is the constructor for moderationService.
func NewModerationService(params ModerationServiceParams) usecase.ModerationUsecase {
	return &moderationService{
		txManager:  params.TxManager,
		actionRepo: params.ActionRepo,
		logger:     params.Logger,
	}
}

func (srv *moderationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Apply runs one moderation verb against its target and appends the
// audit record. Repeating a verb re-appends a fresh record.
func (srv *moderationService) Apply(ctx context.Context, adminID uuid.UUID, input usecase.ModerationInput) (*usecase.AdminActionOutput, error) {
	if !input.Action.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown moderation action")
	}

	notes := input.Notes
	if notes == "" {
		notes = input.Action.DefaultNotes()
	}

	action := &entity.AdminAction{
		AdminID:     adminID,
		Action:      input.Action,
		TargetTable: input.Action.TargetTable(),
		TargetID:    input.TargetID,
		Notes:       notes,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.applyToTarget(ctx, repoFactory, input.Action, input.TargetID); err != nil {
			return err
		}

		if err := repoFactory.NewAdminActionRepository().Create(ctx, action); err != nil {
			return errors.Wrap(err, "failed to append admin action")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute moderation transaction")
	}

	srv.log(ctx).Info("Moderation applied",
		slog.Any("adminID", adminID),
		slog.String("action", string(input.Action)),
		slog.Any("targetID", input.TargetID))

	return toAdminActionOutput(action), nil
}

// applyToTarget loads the verb's target and writes its new state.
func (srv *moderationService) applyToTarget(ctx context.Context, repoFactory repository.RepositoryFactory, action entity.ActionType, targetID uuid.UUID) error {
	switch action {
	case entity.ActionVerifyStore, entity.ActionRejectStore, entity.ActionSuspendStore, entity.ActionBlockStore:
		repo := repoFactory.NewStoreRepository()
		store, err := repo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find store")
		}

		switch action {
		case entity.ActionVerifyStore:
			store.Status = entity.StatusLive
		case entity.ActionRejectStore:
			store.Status = entity.StatusRejected
		case entity.ActionSuspendStore:
			store.IsSuspended = true
		case entity.ActionBlockStore:
			store.IsBlocked = true
		}

		return errors.Wrap(repo.Update(ctx, store), "failed to update store")

	case entity.ActionVerifyFactory, entity.ActionRejectFactory, entity.ActionSuspendFactory, entity.ActionBlockFactory:
		repo := repoFactory.NewFactoryRepository()
		factory, err := repo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrFactoryNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find factory")
		}

		switch action {
		case entity.ActionVerifyFactory:
			factory.Status = entity.StatusApproved
		case entity.ActionRejectFactory:
			factory.Status = entity.StatusRejected
		case entity.ActionSuspendFactory:
			factory.IsSuspended = true
		case entity.ActionBlockFactory:
			factory.IsBlocked = true
		}

		return errors.Wrap(repo.Update(ctx, factory), "failed to update factory")

	case entity.ActionVerifyStoreProduct, entity.ActionRejectStoreProduct:
		repo := repoFactory.NewStoreProductRepository()
		product, err := repo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find store product")
		}

		if action == entity.ActionVerifyStoreProduct {
			product.Status = entity.StatusLive
		} else {
			product.Status = entity.StatusRejected
		}

		return errors.Wrap(repo.Update(ctx, product), "failed to update store product")

	case entity.ActionVerifyFactoryProduct, entity.ActionRejectFactoryProduct:
		repo := repoFactory.NewFactoryProductRepository()
		product, err := repo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find factory product")
		}

		if action == entity.ActionVerifyFactoryProduct {
			product.Status = entity.StatusApproved
		} else {
			product.Status = entity.StatusRejected
		}

		return errors.Wrap(repo.Update(ctx, product), "failed to update factory product")

	default:
		return domainerrors.ErrValidationFailed.WithDetails("unknown moderation action")
	}
}

// ListActions returns the full audit trail, newest first.
func (srv *moderationService) ListActions(ctx context.Context) ([]*usecase.AdminActionOutput, error) {
	actions, err := srv.actionRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admin actions")
	}

	return toAdminActionOutputs(actions), nil
}

// ListActionsForTarget returns the audit trail of one target.
func (srv *moderationService) ListActionsForTarget(ctx context.Context, targetTable string, targetID uuid.UUID) ([]*usecase.AdminActionOutput, error) {
	actions, err := srv.actionRepo.FindByTarget(ctx, targetTable, targetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admin actions")
	}

	return toAdminActionOutputs(actions), nil
}

func toAdminActionOutput(a *entity.AdminAction) *usecase.AdminActionOutput {
	return &usecase.AdminActionOutput{
		ID:          a.ID,
		AdminID:     a.AdminID,
		Action:      string(a.Action),
		TargetTable: a.TargetTable,
		TargetID:    a.TargetID,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
	}
}

func toAdminActionOutputs(actions []*entity.AdminAction) []*usecase.AdminActionOutput {
	outputs := make([]*usecase.AdminActionOutput, 0, len(actions))
	for _, action := range actions {
		outputs = append(outputs, toAdminActionOutput(action))
	}

	return outputs
}
