package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/pricing"
	"rental-pricing-backend/internal/service"
)

type MockRentalOrderService struct {
	mock.Mock
}

func (m *MockRentalOrderService) GetOrder(ctx context.Context, orderID int32) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockRentalOrderService) UpdateLine(ctx context.Context, orderID, lineID int32, changes map[string]any, mode pricing.Mode) (*service.LineUpdate, error) {
	args := m.Called(ctx, orderID, lineID, changes, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LineUpdate), args.Error(1)
}
func (m *MockRentalOrderService) AddLine(ctx context.Context, orderID int32, values map[string]any, mode pricing.Mode) (*service.LineUpdate, error) {
	args := m.Called(ctx, orderID, values, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LineUpdate), args.Error(1)
}
func (m *MockRentalOrderService) UpdateOrder(ctx context.Context, orderID int32, changes map[string]any) (*domain.Order, error) {
	args := m.Called(ctx, orderID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockRentalOrderService) UpdateRentalPrices(ctx context.Context, orderID int32) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}
func (m *MockRentalOrderService) FindPriceDrift(ctx context.Context, tolerance float64) ([]pricing.Drift, error) {
	args := m.Called(ctx, tolerance)
	return args.Get(0).([]pricing.Drift), args.Error(1)
}

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) UpdatePrintOptions(ctx context.Context, orderID int32, changes map[string]any) (*domain.PrintOptions, error) {
	args := m.Called(ctx, orderID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrintOptions), args.Error(1)
}
func (m *MockDocumentService) BuildOrderDocument(ctx context.Context, orderID int32) (*domain.OrderDocument, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderDocument), args.Error(1)
}

type MockProductImageService struct {
	mock.Mock
}

func (m *MockProductImageService) UploadImage(ctx context.Context, productID int32, content io.Reader) (*domain.Product, error) {
	args := m.Called(ctx, productID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductImageService) OpenImage(ctx context.Context, productID int32) (io.ReadCloser, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
