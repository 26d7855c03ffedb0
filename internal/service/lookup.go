package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/studyprofile-server/internal/model"
)

// Resolver maps reference display names to stored identifiers.
type Resolver struct {
	refs model.ReferenceStore
}

// NewResolver creates a Resolver reading from refs.
func NewResolver(refs model.ReferenceStore) *Resolver {
	return &Resolver{refs: refs}
}

// Resolve returns the reference of the given kind named name.
// The boolean is false when no such reference exists; err is only set when
// the store could not answer.
func (r *Resolver) Resolve(ctx context.Context, kind model.EntityKind, name string) (model.Reference, bool, error) {
	key := normalizeName(name)
	if key == "" {
		return model.Reference{}, false, nil
	}

	ref, err := r.refs.ResolveReference(ctx, kind, key)
	if errors.Is(err, model.ErrNotFound) {
		return model.Reference{}, false, nil
	}
	if err != nil {
		return model.Reference{}, false, fmt.Errorf("failed to resolve %s %q: %w", kind, key, err)
	}

	return ref, true, nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func unresolvedWarning(field string, kind model.EntityKind, name string) model.Warning {
	return model.Warning{
		Code:    model.WarningUnresolved,
		Field:   field,
		Value:   name,
		Message: fmt.Sprintf("%s %q was not recognised", strings.ReplaceAll(string(kind), "_", " "), name),
	}
}
