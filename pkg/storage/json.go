package storage

import (
	"context"
	"encoding/json"

	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
)

// LoadStatus describes what LoadJSON found under a key.
type LoadStatus int

const (
	StatusAbsent LoadStatus = iota
	StatusFound
	StatusMalformed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusMalformed:
		return "malformed"
	default:
		return "absent"
	}
}

// LoadJSON decodes the payload stored under key into dest. A payload that
// does not parse leaves dest untouched and reports StatusMalformed, which
// callers treat the same as an absent key.
func LoadJSON(ctx context.Context, st Storage, key string, dest any) (LoadStatus, error) {
	raw, ok, err := st.Load(ctx, key)
	if err != nil {
		return StatusAbsent, pkgerrors.Wrap(pkgerrors.CodePersistenceFailure, err, "load "+key)
	}
	if !ok || raw == "" {
		return StatusAbsent, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return StatusMalformed, nil
	}
	return StatusFound, nil
}

// SaveJSON encodes value and writes it under key.
func SaveJSON(ctx context.Context, st Storage, key string, value any) error {
	buf, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+key)
	}
	if err := st.Save(ctx, key, string(buf)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceFailure, err, "save "+key)
	}
	return nil
}

// SaveString writes a scalar value without JSON quoting, matching how the
// storefront stores selectedCurrency and userId.
func SaveString(ctx context.Context, st Storage, key, value string) error {
	if err := st.Save(ctx, key, value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistenceFailure, err, "save "+key)
	}
	return nil
}

// LoadString reads a scalar value.
func LoadString(ctx context.Context, st Storage, key string) (string, bool, error) {
	raw, ok, err := st.Load(ctx, key)
	if err != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodePersistenceFailure, err, "load "+key)
	}
	return raw, ok, nil
}
