package service

import (
	"context"
	"errors"
	"io"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/pricing"
)

var ErrInvalidEdit = errors.New("invalid edit")

// RentalPricesRecomputedNote is posted to the order feed after a global recompute.
const RentalPricesRecomputedNote = "Rental prices have been recomputed with the new period."

// LineUpdate is the outcome of an edit on a single order line.
type LineUpdate struct {
	Line       *domain.OrderLine `json:"line"`
	Changed    []domain.Field    `json:"changed"`
	Recomputed []domain.Field    `json:"recomputed"`
	Warnings   []string          `json:"warnings,omitempty"`
}

type RentalOrderService interface {
	GetOrder(ctx context.Context, orderID int32) (*domain.Order, error)
	UpdateLine(ctx context.Context, orderID, lineID int32, changes map[string]any, mode pricing.Mode) (*LineUpdate, error)
	AddLine(ctx context.Context, orderID int32, values map[string]any, mode pricing.Mode) (*LineUpdate, error)
	UpdateOrder(ctx context.Context, orderID int32, changes map[string]any) (*domain.Order, error)
	UpdateRentalPrices(ctx context.Context, orderID int32) (*domain.Order, error)
	FindPriceDrift(ctx context.Context, tolerance float64) ([]pricing.Drift, error)
}

type DocumentService interface {
	UpdatePrintOptions(ctx context.Context, orderID int32, changes map[string]any) (*domain.PrintOptions, error)
	BuildOrderDocument(ctx context.Context, orderID int32) (*domain.OrderDocument, error)
}

type ProductImageService interface {
	UploadImage(ctx context.Context, productID int32, content io.Reader) (*domain.Product, error)
	OpenImage(ctx context.Context, productID int32) (io.ReadCloser, error)
}
