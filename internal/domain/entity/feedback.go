package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackTarget discriminates which entity kind feedback is attached to.
type FeedbackTarget string

const (
	// FeedbackStore attaches feedback to a Store.
	FeedbackStore FeedbackTarget = "store"
	// FeedbackFactory attaches feedback to a Factory.
	FeedbackFactory FeedbackTarget = "factory"
	// FeedbackStoreProduct attaches feedback to a StoreProduct.
	FeedbackStoreProduct FeedbackTarget = "store-product"
	// FeedbackFactoryProduct attaches feedback to a FactoryProduct.
	FeedbackFactoryProduct FeedbackTarget = "factory-product"
)

// IsValid checks if the FeedbackTarget is a valid value.
func (t FeedbackTarget) IsValid() bool {
	switch t {
	case FeedbackStore, FeedbackFactory, FeedbackStoreProduct, FeedbackFactoryProduct:
		return true
	default:
		return false
	}
}

// Feedback is free-form commentary on a store, factory, or one of their
// products, optionally with an image. Unlike reviews there is no
// uniqueness restriction. ScopeID is the owning store or factory.
type Feedback struct {
	ID         uuid.UUID
	AuthorID   uuid.UUID
	AuthorRole string
	Target     FeedbackTarget
	TargetID   uuid.UUID
	ScopeID    uuid.UUID
	Comment    string
	ImageKey   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
