package identity

import (
	"context"
	"strings"
	"sync"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/storage"
	"github.com/google/uuid"
)

// AnonymousPrefix marks ids generated on the device.
const AnonymousPrefix = "anon_"

// Params groups dependencies for the visitor identity.
type Params struct {
	Storage storage.Storage
	Logger  *logger.Logger
	NewID   func() string
}

// Visitor resolves the anonymous id a device presents to analytics.
type Visitor struct {
	mu      sync.Mutex
	id      string
	storage storage.Storage
	logg    *logger.Logger
	newID   func() string
}

func NewVisitor(params Params) (*Visitor, error) {
	if params.Storage == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage is required")
	}
	newID := params.NewID
	if newID == nil {
		newID = generate
	}
	return &Visitor{storage: params.Storage, logg: params.Logger, newID: newID}, nil
}

// ID returns the stored visitor id, creating and persisting one on first
// use. If the new id cannot be saved it is still returned, together with
// the PERSISTENCE_FAILURE, and reused for the rest of the session.
func (v *Visitor) ID(ctx context.Context) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.id != "" {
		return v.id, nil
	}

	stored, ok, err := storage.LoadString(ctx, v.storage, storage.KeyUserID)
	if err != nil {
		v.logg.WarnErr(v.logg.WithStorageKey(ctx, storage.KeyUserID), "visitor id could not be loaded", err)
	}
	if ok && strings.TrimSpace(stored) != "" {
		v.id = strings.TrimSpace(stored)
		return v.id, nil
	}

	v.id = v.newID()
	if err := storage.SaveString(ctx, v.storage, storage.KeyUserID, v.id); err != nil {
		v.logg.WarnErr(v.logg.WithVisitorID(ctx, v.id), "visitor id not saved", err)
		return v.id, err
	}
	v.logg.Debug(v.logg.WithVisitorID(ctx, v.id), "visitor id created")
	return v.id, nil
}

// IsAnonymous reports whether id was generated on the device.
func IsAnonymous(id string) bool {
	return strings.HasPrefix(id, AnonymousPrefix)
}

func generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return AnonymousPrefix + uuid.NewString()
	}
	return AnonymousPrefix + id.String()
}
