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

// paymentTransactionRepository implements the domain.PaymentTransactionRepository interface using GORM.
type paymentTransactionRepository struct {
	db *gorm.DB
}

// NewPaymentTransactionRepository is the constructor for paymentTransactionRepository.
func NewPaymentTransactionRepository(db *gorm.DB) repository.PaymentTransactionRepository {
	return &paymentTransactionRepository{db: db}
}

func (repo *paymentTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txM model.TransactionModel
	if err := repo.db.WithContext(ctx).First(&txM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to find transaction")
	}

	return toTransactionDomain(&txM), nil
}

func (repo *paymentTransactionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.Transaction, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("order_id = ?", orderID))
}

func (repo *paymentTransactionRepository) FindByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) ([]*entity.Transaction, error) {
	return repo.findMany(repo.db.WithContext(ctx).Where("scope = ? AND scope_id = ?", string(scope), scopeID))
}

func (repo *paymentTransactionRepository) findMany(query *gorm.DB) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	txs := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		txs = append(txs, toTransactionDomain(&models[i]))
	}

	return txs, nil
}

func (repo *paymentTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txM := toTransactionModel(tx)
	if err := repo.db.WithContext(ctx).Create(txM).Error; err != nil {
		return errors.Wrap(err, "failed to create transaction")
	}

	tx.ID = txM.ID
	tx.CreatedAt = txM.CreatedAt

	return nil
}

func (repo *paymentTransactionRepository) DeleteByScope(ctx context.Context, scope entity.OrderScope, scopeID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.TransactionModel{}, "scope = ? AND scope_id = ?", string(scope), scopeID).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete transactions")
	}

	return nil
}

func toTransactionDomain(m *model.TransactionModel) *entity.Transaction {
	return &entity.Transaction{
		ID:      m.ID,
		Scope:   entity.OrderScope(m.Scope),
		ScopeID: m.ScopeID,
		OrderID: m.OrderID,
		UserID:  m.UserID,
		Status:  entity.TransactionStatus(m.Status),
		Amount:  m.Amount,

		CardHolder: m.CardHolder,
		CardNumber: m.CardNumber,
		CardExpiry: m.CardExpiry,
		CardCVC:    m.CardCVC,

		CreatedAt: m.CreatedAt,
	}
}

func toTransactionModel(t *entity.Transaction) *model.TransactionModel {
	return &model.TransactionModel{
		ID:      t.ID,
		Scope:   string(t.Scope),
		ScopeID: t.ScopeID,
		OrderID: t.OrderID,
		UserID:  t.UserID,
		Status:  string(t.Status),
		Amount:  t.Amount,

		CardHolder: t.CardHolder,
		CardNumber: t.CardNumber,
		CardExpiry: t.CardExpiry,
		CardCVC:    t.CardCVC,

		CreatedAt: t.CreatedAt,
	}
}
