package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/luxehair/pkg/config"
	"github.com/angelmondragon/luxehair/pkg/db"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/redis"
	"go.uber.org/multierr"
)

// Closer releases whatever the opened backend holds.
type Closer func() error

// Open builds the Storage selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger, m *metrics.StoreMetrics) (Storage, Closer, error) {
	if cfg == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "config is required")
	}

	driver := cfg.Storage.NormalizedDriver()
	ctx = logg.WithField(ctx, "storage_driver", driver)

	var (
		backend Storage
		closers []func() error
	)
	switch driver {
	case config.StorageDriverMemory:
		backend = NewMemory()
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open sql storage")
		}
		backend = client
		closers = append(closers, client.Close)
	case config.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, cfg.Storage.Namespace, logg)
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open redis storage")
		}
		backend = client
		closers = append(closers, client.Close)
	default:
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported storage driver %q", driver))
	}

	logg.Info(ctx, "storage opened")

	closer := func() error {
		var err error
		for _, c := range closers {
			err = multierr.Append(err, c())
		}
		return err
	}
	return Instrument(backend, m), closer, nil
}

// Instrument wraps st so each operation's latency is observed. A nil
// recorder returns st unchanged.
func Instrument(st Storage, m *metrics.StoreMetrics) Storage {
	if m == nil {
		return st
	}
	return &instrumented{next: st, metrics: m}
}

type instrumented struct {
	next    Storage
	metrics *metrics.StoreMetrics
}

func (i *instrumented) Load(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	defer func() { i.metrics.ObserveStorage("load", time.Since(start)) }()
	return i.next.Load(ctx, key)
}

func (i *instrumented) Save(ctx context.Context, key, value string) error {
	start := time.Now()
	defer func() { i.metrics.ObserveStorage("save", time.Since(start)) }()
	return i.next.Save(ctx, key, value)
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	defer func() { i.metrics.ObserveStorage("delete", time.Since(start)) }()
	return i.next.Delete(ctx, key)
}
