package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier provides catalog items; purchases reference one.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"uniqueIndex;not null"`
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
