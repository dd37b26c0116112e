package recentlyviewed

import (
	"context"

	"github.com/angelmondragon/luxehair/internal/catalog"
	"github.com/angelmondragon/luxehair/internal/idlist"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
)

// Capacity is how many product views are remembered.
const Capacity = 10

// ServiceParams groups dependencies for the history service.
type ServiceParams struct {
	Storage storage.Storage
	Catalog *catalog.Store
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// Service tracks the products a shopper looked at, most recent first.
type Service interface {
	Add(ctx context.Context, productID string) error
	IDs() []string
	Products(limit int) []catalog.Product
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
		Key:     storage.KeyRecentlyViewed,
		Name:    "recently_viewed",
		Logger:  params.Logger,
		Metrics: params.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &service{list: list, catalog: params.Catalog}, nil
}

// Add moves productID to the front, dropping the oldest entry past Capacity.
func (s *service) Add(ctx context.Context, productID string) error {
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	_, err := s.list.Update(ctx, "view", func(ids []string) ([]string, bool, error) {
		if len(ids) > 0 && ids[0] == productID {
			return ids, false, nil
		}
		next := make([]string, 0, len(ids)+1)
		next = append(next, productID)
		for _, id := range ids {
			if id != productID {
				next = append(next, id)
			}
		}
		if len(next) > Capacity {
			next = next[:Capacity]
		}
		return next, true, nil
	})
	return err
}

func (s *service) IDs() []string {
	return s.list.IDs()
}

// Products resolves up to limit of the most recent ids; limit <= 0 means
// catalog.DefaultRecentLimit. Ids no longer in the catalog are skipped after
// truncation.
func (s *service) Products(limit int) []catalog.Product {
	if limit <= 0 {
		limit = catalog.DefaultRecentLimit
	}
	ids := s.list.IDs()
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return s.catalog.ProductsByID(ids)
}
