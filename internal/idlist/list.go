// Package idlist keeps an ordered, de-duplicated list of product ids in
// device storage. Wishlist, recently viewed and comparison build on it.
package idlist

import (
	"context"
	"encoding/json"
	"sync"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
)

// Params groups dependencies for a list.
type Params struct {
	Storage storage.Storage
	Key     string
	Name    string
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
}

// List is safe for concurrent use.
type List struct {
	mu  sync.RWMutex
	ids []string

	storage storage.Storage
	key     string
	name    string
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
}

// storedID decodes one persisted entry: either a bare id or a product object
// carrying its id, as older storefront builds saved whole products.
type storedID string

func (s *storedID) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*s = storedID(id)
		return nil
	}
	var product struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &product); err != nil {
		return err
	}
	*s = storedID(product.ID)
	return nil
}

// Load builds a list and reads its persisted ids. Unreadable or malformed
// payloads start the list empty.
func Load(ctx context.Context, params Params) (*List, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage is required")
	}
	if params.Key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage key is required")
	}
	name := params.Name
	if name == "" {
		name = params.Key
	}
	l := &List{
		ids:     []string{},
		storage: params.Storage,
		key:     params.Key,
		name:    name,
		logg:    params.Logger,
		metrics: params.Metrics,
	}

	var stored []storedID
	keyCtx := l.logg.WithStorageKey(ctx, l.key)
	status, err := storage.LoadJSON(ctx, l.storage, l.key, &stored)
	switch {
	case err != nil:
		l.logg.WarnErr(keyCtx, "list could not be loaded, starting empty", err)
	case status == storage.StatusMalformed:
		l.logg.Warn(keyCtx, "stored list is malformed, starting empty")
	case status == storage.StatusFound:
		ids := make([]string, 0, len(stored))
		for _, id := range stored {
			ids = append(ids, string(id))
		}
		l.ids = dedupe(ids)
	}
	return l, nil
}

// IDs returns a copy of the ids in order.
func (l *List) IDs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string{}, l.ids...)
}

// Len reports how many ids are held.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

// Contains reports whether id is present.
func (l *List) Contains(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return indexOf(l.ids, id) >= 0
}

// Update applies fn to the current ids. When fn reports a change the new ids
// are kept and written through; the returned error is the write failure, if
// any. fn may also reject the update by returning an error, in which case
// nothing changes.
func (l *List) Update(ctx context.Context, op string, fn func(ids []string) ([]string, bool, error)) (bool, error) {
	l.mu.Lock()
	next, changed, err := fn(append([]string{}, l.ids...))
	if err != nil || !changed {
		l.mu.Unlock()
		return false, err
	}
	l.ids = dedupe(next)
	saveErr := storage.SaveJSON(ctx, l.storage, l.key, l.ids)
	l.mu.Unlock()

	l.metrics.IncMutation(l.name, op)
	if saveErr != nil {
		l.metrics.IncPersistenceFailure(l.key)
		l.logg.WarnErr(l.logg.WithStorageKey(ctx, l.key), "list change kept in memory but not saved", saveErr)
	}
	return true, saveErr
}

// Remove drops id; absent ids are a no-op.
func (l *List) Remove(ctx context.Context, id string) error {
	_, err := l.Update(ctx, "remove", func(ids []string) ([]string, bool, error) {
		idx := indexOf(ids, id)
		if idx < 0 {
			return ids, false, nil
		}
		return append(ids[:idx], ids[idx+1:]...), true, nil
	})
	return err
}

// Clear empties the list.
func (l *List) Clear(ctx context.Context) error {
	_, err := l.Update(ctx, "clear", func(ids []string) ([]string, bool, error) {
		return []string{}, true, nil
	})
	return err
}

// IndexOf returns the position of id in ids, or -1.
func IndexOf(ids []string, id string) int {
	return indexOf(ids, id)
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
