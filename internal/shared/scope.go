package shared

import "context"

// Scope describes the visibility granted to the current caller. Administrative
// callers see everything; secretariat-bound callers only see departments,
// employees, and entries belonging to their secretariat.
type Scope struct {
	Admin         bool
	SecretariatID *int64
}

// Unrestricted reports whether the scope applies no row filtering.
func (s Scope) Unrestricted() bool {
	return s.Admin || s.SecretariatID == nil
}

type scopeContextKey struct{}

// ContextWithScope stores the caller scope in context.
func ContextWithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

// ScopeFromContext extracts the caller scope from context. A missing scope
// behaves as unrestricted so internal jobs can reuse the query layer.
func ScopeFromContext(ctx context.Context) Scope {
	scope, ok := ctx.Value(scopeContextKey{}).(Scope)
	if !ok {
		return Scope{Admin: true}
	}
	return scope
}
