package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement is the audit trail for every stock change.
// Quantity is signed: negative for sales, positive for purchases and
// void restores.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Type        string    `gorm:"not null"` // sale | purchase | adjustment | void_restore
	Quantity    int       `gorm:"not null"`
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReferenceID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time

	Medicine *Medicine `gorm:"foreignKey:MedicineID"`
}
