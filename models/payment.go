package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

type Payment struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderReference   string    `gorm:"uniqueIndex;not null" json:"order_reference"`
	Amount           int       `gorm:"not null" json:"amount"` // minor currency units
	Currency         string    `gorm:"type:varchar(10);not null" json:"currency"`
	Status           string    `gorm:"type:varchar(20);not null" json:"status"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
