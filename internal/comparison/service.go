package comparison

import (
	"context"
	"fmt"

	"github.com/angelmondragon/luxehair/internal/catalog"
	"github.com/angelmondragon/luxehair/internal/idlist"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
)

// MaxProducts is how many products can be compared side by side.
const MaxProducts = 3

// ServiceParams groups dependencies for the comparison service.
type ServiceParams struct {
	Storage storage.Storage
	Catalog *catalog.Store
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Service manages the products selected for comparison.
type Service interface {
	Add(ctx context.Context, productID string) (bool, error)
	Remove(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
	Contains(productID string) bool
	IDs() []string
	Products() []catalog.Product
}

type service struct {
	list    *idlist.List
	catalog *catalog.Store
}

func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	list, err := idlist.Load(ctx, idlist.Params{
		Storage: params.Storage,
		Key:     storage.KeyComparison,
		Name:    "comparison",
		Logger:  params.Logger,
		Metrics: params.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &service{list: list, catalog: params.Catalog}, nil
}

// Add selects the product. It reports false when already selected and fails
// with LIMIT_REACHED once MaxProducts are selected.
func (s *service) Add(ctx context.Context, productID string) (bool, error) {
	if _, err := s.catalog.FindByID(productID); err != nil {
		return false, err
	}
	return s.list.Update(ctx, "add", func(ids []string) ([]string, bool, error) {
		if idlist.IndexOf(ids, productID) >= 0 {
			return ids, false, nil
		}
		if len(ids) >= MaxProducts {
			return ids, false, pkgerrors.New(pkgerrors.CodeLimitReached, fmt.Sprintf("at most %d products can be compared", MaxProducts)).
				WithDetails(map[string]any{"max": MaxProducts})
		}
		return append(ids, productID), true, nil
	})
}

func (s *service) Remove(ctx context.Context, productID string) error {
	return s.list.Remove(ctx, productID)
}

func (s *service) Clear(ctx context.Context) error {
	return s.list.Clear(ctx)
}

func (s *service) Contains(productID string) bool {
	return s.list.Contains(productID)
}

func (s *service) IDs() []string {
	return s.list.IDs()
}

func (s *service) Products() []catalog.Product {
	return s.catalog.ProductsByID(s.list.IDs())
}
