package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/luxehair/internal/analytics"
	"github.com/angelmondragon/luxehair/internal/cart"
	"github.com/angelmondragon/luxehair/internal/catalog"
	"github.com/angelmondragon/luxehair/internal/checkout"
	"github.com/angelmondragon/luxehair/internal/comparison"
	"github.com/angelmondragon/luxehair/internal/identity"
	"github.com/angelmondragon/luxehair/internal/pricing"
	"github.com/angelmondragon/luxehair/internal/recentlyviewed"
	"github.com/angelmondragon/luxehair/internal/submissions"
	"github.com/angelmondragon/luxehair/internal/wishlist"
	"github.com/angelmondragon/luxehair/pkg/config"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
)

const serviceName = "storefront"

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"driver": cfg.Storage.NormalizedDriver(),
	})

	if err := run(ctx, cfg, logg); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

// storefront holds the wired services for one shopper session.
type storefront struct {
	catalog    *catalog.Store
	cart       *cart.Store
	checkout   *checkout.Builder
	wishlist   wishlist.Service
	recent     recentlyviewed.Service
	comparison comparison.Service
	visitor    *identity.Visitor
	dispatcher *analytics.Dispatcher
	tracker    *analytics.Tracker
	submitter  submissions.Submitter
}

func newStorefront(ctx context.Context, cfg *config.Config, st storage.Storage, logg *logger.Logger, storeMetrics *metrics.StoreMetrics) (*storefront, error) {
	products, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	products.LogSummary(ctx, logg)

	engine := pricing.Default()

	shoppingCart, err := cart.NewStore(ctx, cart.Params{
		Storage:         st,
		Pricing:         engine,
		Logger:          logg,
		Metrics:         storeMetrics,
		DefaultCurrency: cfg.Store.Currency(),
	})
	if err != nil {
		return nil, err
	}

	builder, err := checkout.NewBuilder(checkout.Params{
		BusinessName: cfg.Store.BusinessName,
		Phone:        cfg.Store.WhatsAppPhone,
		Pricing:      engine,
		Logger:       logg,
		Metrics:      storeMetrics,
	})
	if err != nil {
		return nil, err
	}

	saved, err := wishlist.NewService(ctx, wishlist.ServiceParams{Storage: st, Catalog: products, Logger: logg, Metrics: storeMetrics})
	if err != nil {
		return nil, err
	}
	recent, err := recentlyviewed.NewService(ctx, recentlyviewed.ServiceParams{Storage: st, Catalog: products, Logger: logg, Metrics: storeMetrics})
	if err != nil {
		return nil, err
	}
	compared, err := comparison.NewService(ctx, comparison.ServiceParams{Storage: st, Catalog: products, Logger: logg, Metrics: storeMetrics})
	if err != nil {
		return nil, err
	}

	visitor, err := identity.NewVisitor(identity.Params{Storage: st, Logger: logg})
	if err != nil {
		return nil, err
	}

	dispatcher, err := analytics.NewDispatcher(analytics.LogHandler(logg), 0, logg)
	if err != nil {
		return nil, err
	}
	tracker, err := analytics.NewTracker(analytics.TrackerParams{
		Visitor: visitor,
		Recent:  recent,
		Handler: dispatcher,
		Logger:  logg,
		Metrics: storeMetrics,
	})
	if err != nil {
		return nil, err
	}
	submitter, err := submissions.New(cfg.Submissions, logg)
	if err != nil {
		return nil, err
	}

	return &storefront{
		catalog:    products,
		cart:       shoppingCart,
		checkout:   builder,
		wishlist:   saved,
		recent:     recent,
		comparison: compared,
		visitor:    visitor,
		dispatcher: dispatcher,
		tracker:    tracker,
		submitter:  submitter,
	}, nil
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	storeMetrics := metrics.NewStoreMetrics(prometheus.DefaultRegisterer)

	st, closeStorage, err := storage.Open(ctx, cfg, logg, storeMetrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logg.Error(ctx, "error closing storage", err)
		}
	}()

	app, err := newStorefront(ctx, cfg, st, logg, storeMetrics)
	if err != nil {
		return err
	}

	visitorID, err := app.visitor.ID(ctx)
	if err != nil {
		logg.WarnErr(ctx, "visitor id is session only", err)
	}
	ctx = logg.WithVisitorID(ctx, visitorID)

	dispatched := make(chan error, 1)
	go func() { dispatched <- app.dispatcher.Run(ctx) }()
	defer func() {
		app.dispatcher.Close()
		if err := <-dispatched; err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "analytics dispatcher stopped", err)
		}
	}()

	total, err := app.cart.FormattedTotal()
	if err != nil {
		return err
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"products":        app.catalog.Len(),
		"cart_items":      app.cart.ItemCount(),
		"cart_total":      total,
		"currency":        app.cart.Currency().String(),
		"wishlist":        len(app.wishlist.IDs()),
		"recently_viewed": len(app.recent.IDs()),
		"comparison":      len(app.comparison.IDs()),
		"whatsapp":        app.checkout.Phone(),
		"submissions":     cfg.Submissions.Endpoint != "",
	}), "storefront ready")

	if app.cart.IsEmpty() {
		return nil
	}
	outbound, err := app.checkout.LinkFor(ctx, app.cart)
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "url", outbound.URL), "checkout link ready")
	return nil
}
