package context

import (
	"context"
)

type userIDKey struct{}

// Manager stores the authenticated user ID in a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying userID.
//
// Parameters:
//   - ctx: The request context
//   - userID: The authenticated user ID
//
// Returns a new context with the user ID attached.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext retrieves the user ID set by SetUserIDToContext.
//
// Parameters:
//   - ctx: The request context
//
// Returns the user ID and a boolean indicating if a valid user ID was found.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
