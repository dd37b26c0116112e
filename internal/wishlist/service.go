package wishlist

import (
	"context"

	"github.com/angelmondragon/luxehair/internal/catalog"
	"github.com/angelmondragon/luxehair/internal/idlist"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Storage storage.Storage
	Catalog *catalog.Store
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Service exposes the shopper's saved products.
type Service interface {
	Add(ctx context.Context, productID string) (bool, error)
	Remove(ctx context.Context, productID string) error
	Toggle(ctx context.Context, productID string) (bool, error)
	Contains(productID string) bool
	IDs() []string
	Products() []catalog.Product
}

type service struct {
	list    *idlist.List
	catalog *catalog.Store
}

// NewService builds a wishlist service over the persisted wishlist key.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	list, err := idlist.Load(ctx, idlist.Params{
		Storage: params.Storage,
		Key:     storage.KeyWishlist,
		Name:    "wishlist",
		Logger:  params.Logger,
		Metrics: params.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &service{list: list, catalog: params.Catalog}, nil
}

// Add appends the product; it reports false when it was already saved.
func (s *service) Add(ctx context.Context, productID string) (bool, error) {
	if productID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.catalog.FindByID(productID); err != nil {
		return false, err
	}
	return s.list.Update(ctx, "add", func(ids []string) ([]string, bool, error) {
		if idlist.IndexOf(ids, productID) >= 0 {
			return ids, false, nil
		}
		return append(ids, productID), true, nil
	})
}

// Remove drops the product regardless of prior state.
func (s *service) Remove(ctx context.Context, productID string) error {
	return s.list.Remove(ctx, productID)
}

// Toggle saves or unsaves the product and reports whether it is now saved.
func (s *service) Toggle(ctx context.Context, productID string) (bool, error) {
	if s.list.Contains(productID) {
		return false, s.Remove(ctx, productID)
	}
	if _, err := s.Add(ctx, productID); err != nil {
		return s.list.Contains(productID), err
	}
	return true, nil
}

func (s *service) Contains(productID string) bool {
	return s.list.Contains(productID)
}

func (s *service) IDs() []string {
	return s.list.IDs()
}

// Products resolves saved ids in order, skipping ids no longer in the catalog.
func (s *service) Products() []catalog.Product {
	return s.catalog.ProductsByID(s.list.IDs())
}
