package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/imaging"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/repository"
	"rental-pricing-backend/internal/storage"
)

var printOptionFields = domain.NewFieldSet("print_image", "image_sizes", "displayed_company_in_printed_document")

type documentService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	store       storage.StorageInterface
}

func NewDocumentService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, store storage.StorageInterface) DocumentService {
	return &documentService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		store:       store,
	}
}

func (s *documentService) UpdatePrintOptions(ctx context.Context, orderID int32, changes map[string]any) (*domain.PrintOptions, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	opts := order.PrintOptions
	if _, err := decode(changes, &opts, printOptionFields, nil); err != nil {
		return nil, err
	}
	if !opts.ImageSizes.Valid() {
		return nil, fmt.Errorf("%w: unknown image size %q", ErrInvalidEdit, opts.ImageSizes)
	}
	if !opts.DisplayedCompany.Valid() {
		return nil, fmt.Errorf("%w: unknown company %q", ErrInvalidEdit, opts.DisplayedCompany)
	}

	if err := s.orderRepo.UpdatePrintOptions(ctx, orderID, opts); err != nil {
		return nil, err
	}
	logger.Info("Print options updated", "orderID", orderID, "printImage", opts.PrintImage, "imageSizes", opts.ImageSizes, "company", opts.DisplayedCompany)
	return &opts, nil
}

func (s *documentService) BuildOrderDocument(ctx context.Context, orderID int32) (*domain.OrderDocument, error) {
	logger.EnterMethod("documentService.BuildOrderDocument", "orderID", orderID)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.ExitMethodWithError("documentService.BuildOrderDocument", err, "orderID", orderID)
		return nil, err
	}

	doc := &domain.OrderDocument{
		OrderID:     order.ID,
		OrderName:   order.Name,
		CompanyName: order.DisplayedCompany.DisplayName(),
		PrintImage:  order.PrintImage,
		ImageSize:   order.ImageSizes,
		Lines:       make([]domain.DocumentLine, 0, len(order.Lines)),
	}

	images := make(map[int32]string)
	total := decimal.Zero
	for _, line := range order.Lines {
		subtotal := decimal.NewFromFloat(line.PriceUnit).Mul(decimal.NewFromFloat(line.ProductUomQty))
		total = total.Add(subtotal)

		dl := domain.DocumentLine{
			LineID:      line.ID,
			Description: line.Name,
			Quantity:    line.ProductUomQty,
			PriceUnit:   line.PriceUnit,
			Subtotal:    subtotal.Round(2).InexactFloat64(),
		}
		if order.PrintImage && line.ProductID != nil {
			img, ok := images[*line.ProductID]
			if !ok {
				img = s.productImage(ctx, *line.ProductID, order.ImageSizes)
				images[*line.ProductID] = img
			}
			dl.Image = img
		}
		doc.Lines = append(doc.Lines, dl)
	}
	doc.Total = total.Round(2).InexactFloat64()

	logger.ExitMethod("documentService.BuildOrderDocument", "orderID", orderID, "lines", len(doc.Lines))
	return doc, nil
}

// productImage returns the resized product image, or "" when the product has
// none or it cannot be read. A missing image never blocks printing.
func (s *documentService) productImage(ctx context.Context, productID int32, size domain.ImageSize) string {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("Failed to load product for document", "productID", productID, "error", err)
		}
		return ""
	}
	if product.ImageKey == "" {
		return ""
	}

	rc, err := s.store.ReadFile(ctx, product.ImageKey)
	if err != nil {
		logger.Warn("Failed to read product image", "productID", productID, "key", product.ImageKey, "error", err)
		return ""
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		logger.Warn("Failed to read product image", "productID", productID, "key", product.ImageKey, "error", err)
		return ""
	}
	resized, err := imaging.Resize(data, size)
	if err != nil {
		logger.Warn("Failed to resize product image", "productID", productID, "error", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(resized)
}
