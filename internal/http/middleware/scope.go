package middleware

import (
	"net/http"

	"github.com/meridian-crm/monitor-api/internal/auth"
	"github.com/meridian-crm/monitor-api/internal/scope"
	"go.uber.org/zap"
)

// ScopeMiddleware resolves the actor's organizational visibility once per
// request and stores it in the context. Handlers and services read the
// resolved set instead of re-deriving it from the org graph.
type ScopeMiddleware struct {
	resolver *scope.Resolver
	logger   *zap.Logger
}

// NewScopeMiddleware creates a new scope middleware
func NewScopeMiddleware(resolver *scope.Resolver, logger *zap.Logger) *ScopeMiddleware {
	return &ScopeMiddleware{
		resolver: resolver,
		logger:   logger,
	}
}

// Resolve computes the scope for the authenticated actor and attaches it to
// the request context. An empty scope is not an error; it only means the
// actor's reads return their own data and nothing more.
func (m *ScopeMiddleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := auth.FromContext(r.Context())
		if !ok {
			// Authentication middleware rejects unauthenticated requests
			// before this point; without an actor there is nothing to resolve
			next.ServeHTTP(w, r)
			return
		}

		sc, err := m.resolver.Resolve(r.Context(), userCtx.UserID, userCtx.Role)
		if err != nil {
			m.logger.Error("failed to resolve actor scope",
				zap.String("user_id", userCtx.UserID.String()),
				zap.String("role", string(userCtx.Role)),
				zap.Error(err))
			http.Error(w, "Unable to resolve data visibility for this account", http.StatusInternalServerError)
			return
		}

		ctx := scope.WithContext(r.Context(), sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
