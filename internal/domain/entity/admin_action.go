package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActionType names a moderation verb. Verify/Reject/Suspend/Block apply
// to stores and factories, Verify/Reject to their products.
type ActionType string

const (
	ActionVerifyStore  ActionType = "verify-store"
	ActionRejectStore  ActionType = "reject-store"
	ActionSuspendStore ActionType = "suspend-store"
	ActionBlockStore   ActionType = "block-store"

	ActionVerifyFactory  ActionType = "verify-factory"
	ActionRejectFactory  ActionType = "reject-factory"
	ActionSuspendFactory ActionType = "suspend-factory"
	ActionBlockFactory   ActionType = "block-factory"

	ActionVerifyStoreProduct ActionType = "verify-store-product"
	ActionRejectStoreProduct ActionType = "reject-store-product"

	ActionVerifyFactoryProduct ActionType = "verify-factory-product"
	ActionRejectFactoryProduct ActionType = "reject-factory-product"
)

// IsValid checks if the ActionType is a valid value.
func (a ActionType) IsValid() bool {
	switch a {
	case ActionVerifyStore, ActionRejectStore, ActionSuspendStore, ActionBlockStore,
		ActionVerifyFactory, ActionRejectFactory, ActionSuspendFactory, ActionBlockFactory,
		ActionVerifyStoreProduct, ActionRejectStoreProduct,
		ActionVerifyFactoryProduct, ActionRejectFactoryProduct:
		return true
	default:
		return false
	}
}

// TargetTable returns the logical table the verb operates on.
func (a ActionType) TargetTable() string {
	switch a {
	case ActionVerifyStore, ActionRejectStore, ActionSuspendStore, ActionBlockStore:
		return "stores"
	case ActionVerifyFactory, ActionRejectFactory, ActionSuspendFactory, ActionBlockFactory:
		return "factories"
	case ActionVerifyStoreProduct, ActionRejectStoreProduct:
		return "store_products"
	case ActionVerifyFactoryProduct, ActionRejectFactoryProduct:
		return "factory_products"
	default:
		return ""
	}
}

// DefaultNotes returns the audit note recorded when the moderator
// supplies none.
func (a ActionType) DefaultNotes() string {
	switch a {
	case ActionVerifyStore:
		return "Store verified"
	case ActionRejectStore:
		return "Store rejected"
	case ActionSuspendStore:
		return "Store suspended"
	case ActionBlockStore:
		return "Store blocked"
	case ActionVerifyFactory:
		return "Factory verified"
	case ActionRejectFactory:
		return "Factory rejected"
	case ActionSuspendFactory:
		return "Factory suspended"
	case ActionBlockFactory:
		return "Factory blocked"
	case ActionVerifyStoreProduct:
		return "Store product verified"
	case ActionRejectStoreProduct:
		return "Store product rejected"
	case ActionVerifyFactoryProduct:
		return "Factory product verified"
	case ActionRejectFactoryProduct:
		return "Factory product rejected"
	default:
		return ""
	}
}

// AdminAction is one append-only audit record. Every moderation call
// appends a fresh row even when the target already holds the state.
type AdminAction struct {
	ID          uuid.UUID
	AdminID     uuid.UUID
	Action      ActionType
	TargetTable string
	TargetID    uuid.UUID
	Notes       string

	CreatedAt time.Time
}
