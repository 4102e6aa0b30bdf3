package repository

import (
	"context"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementTx is the set of operations available inside a settlement
// transaction. Either all writes commit or none do.
type SettlementTx interface {
	// PaymentByReference returns (nil, nil) when no payment exists for the
	// reference.
	PaymentByReference(orderReference string) (*models.Payment, error)
	OrderByPaymentID(paymentID uuid.UUID) (*models.Order, error)
	// CartItemsForUpdate reads the user's cart lines under a row lock so a
	// concurrent cart mutation for the same user serializes behind the
	// settlement.
	CartItemsForUpdate(userID uuid.UUID) ([]models.CartItem, error)
	ProductsByIDs(ids []uuid.UUID) ([]models.Product, error)
	CreatePayment(payment *models.Payment) error
	CreateOrder(order *models.Order) error
	DeleteCartItems(userID uuid.UUID, productIDs []uuid.UUID) error
}

// SettlementStore scopes a function to a single database transaction.
type SettlementStore interface {
	InTransaction(ctx context.Context, fn func(tx SettlementTx) error) error
}

// GormSettlementStore implements SettlementStore on a GORM connection.
type GormSettlementStore struct {
	db *gorm.DB
}

// NewGormSettlementStore creates a new GormSettlementStore.
func NewGormSettlementStore(db *gorm.DB) SettlementStore {
	return &GormSettlementStore{db: db}
}

func (s *GormSettlementStore) InTransaction(ctx context.Context, fn func(tx SettlementTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSettlementTx{tx: tx})
	})
}

type gormSettlementTx struct {
	tx *gorm.DB
}

func (t *gormSettlementTx) PaymentByReference(orderReference string) (*models.Payment, error) {
	var payment models.Payment
	err := t.tx.Where("order_reference = ?", orderReference).First(&payment).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (t *gormSettlementTx) OrderByPaymentID(paymentID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := t.tx.
		Preload("OrderItems").
		Where("payment_id = ?", paymentID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (t *gormSettlementTx) CartItemsForUpdate(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := t.tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (t *gormSettlementTx) ProductsByIDs(ids []uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := t.tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (t *gormSettlementTx) CreatePayment(payment *models.Payment) error {
	return t.tx.Create(payment).Error
}

func (t *gormSettlementTx) CreateOrder(order *models.Order) error {
	return t.tx.Create(order).Error
}

func (t *gormSettlementTx) DeleteCartItems(userID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}
	return t.tx.
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&models.CartItem{}).Error
}
