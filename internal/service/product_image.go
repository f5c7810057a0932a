package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/imaging"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/repository"
	"rental-pricing-backend/internal/storage"
)

type productImageService struct {
	productRepo repository.ProductRepository
	store       storage.StorageInterface
}

func NewProductImageService(productRepo repository.ProductRepository, store storage.StorageInterface) ProductImageService {
	return &productImageService{productRepo: productRepo, store: store}
}

// UploadImage stores a new product image and replaces the previous one.
func (s *productImageService) UploadImage(ctx context.Context, productID int32, content io.Reader) (*domain.Product, error) {
	logger.EnterMethod("productImageService.UploadImage", "productID", productID)

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.ExitMethodWithError("productImageService.UploadImage", err, "productID", productID)
		return nil, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	normalized, err := imaging.Normalize(data)
	if err != nil {
		logger.ExitMethodWithError("productImageService.UploadImage", err, "productID", productID)
		return nil, err
	}

	key := storage.NewProductImageKey(productID)
	if err := s.store.SaveFile(ctx, key, bytes.NewReader(normalized)); err != nil {
		logger.ExitMethodWithError("productImageService.UploadImage", err, "productID", productID)
		return nil, err
	}
	if err := s.productRepo.SetImageKey(ctx, productID, key); err != nil {
		_ = s.store.DeleteFile(ctx, key)
		logger.ExitMethodWithError("productImageService.UploadImage", err, "productID", productID)
		return nil, err
	}

	if previous := product.ImageKey; previous != "" {
		if err := s.store.DeleteFile(ctx, previous); err != nil {
			logger.Warn("Failed to delete previous product image", "productID", productID, "key", previous, "error", err)
		}
	}
	product.ImageKey = key

	logger.ExitMethod("productImageService.UploadImage", "productID", productID, "key", key)
	return product, nil
}

// OpenImage returns the stored image of a product.
func (s *productImageService) OpenImage(ctx context.Context, productID int32) (io.ReadCloser, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.ImageKey == "" {
		return nil, fmt.Errorf("image of product %d: %w", productID, repository.ErrNotFound)
	}
	return s.store.ReadFile(ctx, product.ImageKey)
}
