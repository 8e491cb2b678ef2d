package activity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexbasket/backend/internal/domain/shared"
)

// Type labels the kind of event an activity entry records
type Type string

const (
	TypeProductAdded       Type = "product_added"
	TypeCategoryAdded      Type = "category_added"
	TypeSubCategoryAdded   Type = "subcategory_added"
	TypeUserRegistered     Type = "user_registered"
	TypeOrderPlaced        Type = "order_placed"
	TypeOrderStatusChanged Type = "order_status_changed"
	TypeStockUpdated       Type = "stock_updated"
	TypeWarehouseAdded     Type = "warehouse_added"
)

// IsValid checks if the type is a known activity type
func (t Type) IsValid() bool {
	switch t {
	case TypeProductAdded, TypeCategoryAdded, TypeSubCategoryAdded,
		TypeUserRegistered, TypeOrderPlaced, TypeOrderStatusChanged,
		TypeStockUpdated, TypeWarehouseAdded:
		return true
	}
	return false
}

// String returns the string representation of the type
func (t Type) String() string {
	return string(t)
}

// Activity is a single entry in the admin activity feed
type Activity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type      Type      `gorm:"type:varchar(40);not null;index"`
	Message   string    `gorm:"type:text;not null"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index"`
	SubjectID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

// New creates a new activity entry
func New(activityType Type, message string, actorID, subjectID *uuid.UUID) (*Activity, error) {
	if !activityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Unknown activity type")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Activity message cannot be empty")
	}

	return &Activity{
		ID:        uuid.New(),
		Type:      activityType,
		Message:   strings.TrimSpace(message),
		ActorID:   actorID,
		SubjectID: subjectID,
		CreatedAt: time.Now(),
	}, nil
}
