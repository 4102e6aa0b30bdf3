package services

import (
	"context"
	"fmt"

	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/models"
	"github.com/PasanRamyanath/Seagrass-Srilanka-Backend-N/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ---- in-memory cart/product repositories ----

type mockCartRepo struct {
	items map[uuid.UUID][]models.CartItem
	err   error
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{items: make(map[uuid.UUID][]models.CartItem)}
}

func (m *mockCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]models.CartItem(nil), m.items[userID]...), nil
}

func (m *mockCartRepo) AddItem(_ context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	item := models.CartItem{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: quantity}
	m.items[userID] = append(m.items[userID], item)
	return &item, nil
}

func (m *mockCartRepo) SetQuantity(_ context.Context, userID, productID uuid.UUID, quantity int) error {
	for i, item := range m.items[userID] {
		if item.ProductID == productID {
			m.items[userID][i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCartRepo) RemoveItem(_ context.Context, userID, productID uuid.UUID) error {
	items := m.items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			m.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	delete(m.items, userID)
	return nil
}

type mockProductRepo struct {
	products map[uuid.UUID]models.Product
	err      error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uuid.UUID]models.Product)}
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) FindAll(_ context.Context, _, _ int) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// ---- in-memory settlement store with staged commits ----

// memState is the durable state behind a memStore. Transactions run against
// a deep copy; the copy replaces the state only when the function succeeds,
// mirroring the commit/rollback behavior of the real store.
type memState struct {
	payments map[string]*models.Payment      // by order reference
	orders   map[uuid.UUID]*models.Order     // by payment id
	carts    map[uuid.UUID][]models.CartItem // by user id
	products map[uuid.UUID]models.Product
}

func newMemState() *memState {
	return &memState{
		payments: make(map[string]*models.Payment),
		orders:   make(map[uuid.UUID]*models.Order),
		carts:    make(map[uuid.UUID][]models.CartItem),
		products: make(map[uuid.UUID]models.Product),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.payments {
		p := *v
		c.payments[k] = &p
	}
	for k, v := range s.orders {
		o := *v
		o.OrderItems = append([]models.OrderItem(nil), v.OrderItems...)
		c.orders[k] = &o
	}
	for k, v := range s.carts {
		c.carts[k] = append([]models.CartItem(nil), v...)
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

type memStore struct {
	state  *memState
	failOn string // method name that should fail inside the transaction
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

func (s *memStore) InTransaction(_ context.Context, fn func(tx repository.SettlementTx) error) error {
	staged := s.state.clone()
	if err := fn(&memTx{state: staged, failOn: s.failOn}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

type memTx struct {
	state  *memState
	failOn string
}

func (t *memTx) fail(method string) error {
	if t.failOn == method {
		return fmt.Errorf("forced %s failure", method)
	}
	return nil
}

func (t *memTx) PaymentByReference(ref string) (*models.Payment, error) {
	if err := t.fail("PaymentByReference"); err != nil {
		return nil, err
	}
	return t.state.payments[ref], nil
}

func (t *memTx) OrderByPaymentID(paymentID uuid.UUID) (*models.Order, error) {
	if order, ok := t.state.orders[paymentID]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (t *memTx) CartItemsForUpdate(userID uuid.UUID) ([]models.CartItem, error) {
	if err := t.fail("CartItemsForUpdate"); err != nil {
		return nil, err
	}
	return append([]models.CartItem(nil), t.state.carts[userID]...), nil
}

func (t *memTx) ProductsByIDs(ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := t.state.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *memTx) CreatePayment(payment *models.Payment) error {
	if err := t.fail("CreatePayment"); err != nil {
		return err
	}
	t.state.payments[payment.OrderReference] = payment
	return nil
}

func (t *memTx) CreateOrder(order *models.Order) error {
	if err := t.fail("CreateOrder"); err != nil {
		return err
	}
	t.state.orders[order.PaymentID] = order
	return nil
}

func (t *memTx) DeleteCartItems(userID uuid.UUID, productIDs []uuid.UUID) error {
	if err := t.fail("DeleteCartItems"); err != nil {
		return err
	}
	drop := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		drop[id] = true
	}
	var kept []models.CartItem
	for _, item := range t.state.carts[userID] {
		if !drop[item.ProductID] {
			kept = append(kept, item)
		}
	}
	t.state.carts[userID] = kept
	return nil
}
