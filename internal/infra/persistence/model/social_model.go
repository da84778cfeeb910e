package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index
// is the authority for the one-review-per-rater rule.
type ReviewModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	RaterID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_rater_product"`
	RaterRole   string    `gorm:"type:varchar(32);not null"`
	ProductKind string    `gorm:"type:varchar(24);not null;uniqueIndex:idx_reviews_rater_product"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_rater_product"`
	ScopeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating      int       `gorm:"not null"`
	Comment     string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// BeforeCreate assigns the UUID primary key.
func (m *ReviewModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// FeedbackModel mirrors the 'feedbacks' table.
type FeedbackModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorRole string    `gorm:"type:varchar(32);not null"`
	Target     string    `gorm:"type:varchar(24);not null;index:idx_feedbacks_target"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;index:idx_feedbacks_target"`
	ScopeID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Comment    string    `gorm:"type:text;not null"`
	ImageKey   string    `gorm:"type:varchar(512)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FeedbackModel) TableName() string {
	return "feedbacks"
}

// BeforeCreate assigns the UUID primary key.
func (m *FeedbackModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
