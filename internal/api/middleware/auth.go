package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/PawsBubbles-BookingService/internal/api/handlers"
	"github.com/m04kA/PawsBubbles-BookingService/pkg/authtoken"
)

const (
	msgUnauthorized = "sesión inválida o expirada, inicia sesión nuevamente"

	// accessTokenParam токен в query: EventSource не умеет слать заголовки
	accessTokenParam = "access_token"
)

// TokenVerifier проверяет токен администратора
type TokenVerifier interface {
	VerifyToken(token string) (*authtoken.Claims, error)
}

// ClaimsFromContext данные администратора, положенные Auth
func ClaimsFromContext(ctx context.Context) (*authtoken.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(*authtoken.Claims)
	return claims, ok && claims != nil
}

// WithClaims кладёт claims в контекст
func WithClaims(ctx context.Context, claims *authtoken.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// Auth пропускает только запросы с валидным токеном администратора
func Auth(verifier TokenVerifier, logger Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				logger.Warn("%s %s - Missing admin token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Warn("%s %s - Invalid admin token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return strings.TrimSpace(r.URL.Query().Get(accessTokenParam))
}
