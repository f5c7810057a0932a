package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rental-pricing-backend/internal/domain"
)

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListRentalOrderIDs(ctx context.Context) ([]int32, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockOrderRepo) UpdatePrintOptions(ctx context.Context, id int32, opts domain.PrintOptions) error {
	args := m.Called(ctx, id, opts)
	return args.Error(0)
}
func (m *MockOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockLineRepo struct {
	mock.Mock
}

func (m *MockLineRepo) Update(ctx context.Context, line *domain.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) SetImageKey(ctx context.Context, id int32, key string) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

type MockPricelistRepo struct {
	mock.Mock
}

func (m *MockPricelistRepo) BasePrice(ctx context.Context, productID int32, quantity float64, pricelistID int32) (float64, error) {
	args := m.Called(ctx, productID, quantity, pricelistID)
	return args.Get(0).(float64), args.Error(1)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) PostNote(ctx context.Context, orderID int32, body string) error {
	args := m.Called(ctx, orderID, body)
	return args.Error(0)
}
func (m *MockActivityRepo) ListByOrder(ctx context.Context, orderID int32) ([]domain.OrderMessage, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.OrderMessage), args.Error(1)
}
