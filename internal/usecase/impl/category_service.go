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

// categoryService implements the CategoryUsecase interface for the
// global, admin-curated categories.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for categoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) Create(ctx context.Context, input usecase.CategoryInput) (*usecase.CategoryOutput, error) {
	if !input.Kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category kind")
	}

	category := &entity.Category{
		Name: input.Name,
		Kind: input.Kind,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID), slog.String("kind", string(category.Kind)))

	return toCategoryOutput(category), nil
}

func (srv *categoryService) GetAll(ctx context.Context, kind entity.OwnerKind) ([]*usecase.CategoryOutput, error) {
	if kind != "" && !kind.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category kind")
	}

	categories, err := srv.categoryRepo.FindAll(ctx, kind)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	outputs := make([]*usecase.CategoryOutput, 0, len(categories))
	for _, category := range categories {
		outputs = append(outputs, toCategoryOutput(category))
	}

	return outputs, nil
}

func (srv *categoryService) Update(ctx context.Context, id uuid.UUID, input usecase.CategoryInput) (*usecase.CategoryOutput, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Kind != "" {
		if !input.Kind.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category kind")
		}
		category.Kind = input.Kind
	}

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return toCategoryOutput(category), nil
}

func (srv *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := srv.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrNotFound
		}

		return errors.Wrap(err, "failed to find category")
	}

	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

func toCategoryOutput(c *entity.Category) *usecase.CategoryOutput {
	return &usecase.CategoryOutput{
		ID:   c.ID,
		Name: c.Name,
		Kind: string(c.Kind),
	}
}
