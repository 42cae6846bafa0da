package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/builder-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/builder-service/internal/domain"
	"github.com/jsamuelsen/builder-service/internal/platform/config"
	"github.com/jsamuelsen/builder-service/internal/platform/logging"
)

const (
	// ContextKeyClaims is the gin context key for storing extracted claims.
	ContextKeyClaims = "claims"

	defaultSubjectHeader = "X-User-ID"
	defaultRolesHeader   = "X-User-Roles"
	defaultScopesHeader  = "X-User-Scopes"
	defaultClaimsHeader  = "X-User-Claims"
)

// Claims are the caller's identity as asserted by the gateway, which has
// already validated the token.
type Claims struct {
	Subject string
	Roles   []string
	Scopes  []string

	// Raw is the opaque claims header. It is only ever logged through the
	// redacting handler.
	Raw string
}

// HasRole checks if the caller has the specified role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasScope checks if the caller has the specified scope.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

func headerOr(configured, fallback string) string {
	if configured != "" {
		return configured
	}

	return fallback
}

// ExtractClaims reads claims from the gateway headers named in cfg.
// Roles are comma-separated, scopes space-separated (OAuth2).
func ExtractClaims(c *gin.Context, cfg *config.AuthConfig) *Claims {
	if cfg == nil {
		cfg = &config.AuthConfig{}
	}

	return &Claims{
		Subject: c.GetHeader(headerOr(cfg.SubjectHeader, defaultSubjectHeader)),
		Roles:   parseCommaSeparated(c.GetHeader(headerOr(cfg.RolesHeader, defaultRolesHeader))),
		Scopes:  strings.Fields(c.GetHeader(headerOr(cfg.ScopesHeader, defaultScopesHeader))),
		Raw:     c.GetHeader(headerOr(cfg.ClaimsHeader, defaultClaimsHeader)),
	}
}

// GetClaims returns the claims stored by RequireAuth, or nil.
func GetClaims(c *gin.Context) *Claims {
	if claims, ok := c.Get(ContextKeyClaims); ok {
		if cl, ok := claims.(*Claims); ok {
			return cl
		}
	}

	return nil
}

// RequireAuth rejects requests without a subject and stores the claims.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ExtractClaims(c, cfg)
		if claims.Subject == "" {
			deny(c, claims, "authentication required")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireScope rejects callers lacking scope. It reuses claims stored by
// RequireAuth when present.
func RequireScope(cfg *config.AuthConfig, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			claims = ExtractClaims(c, cfg)
			c.Set(ContextKeyClaims, claims)
		}

		if !claims.HasScope(scope) {
			deny(c, claims, "scope "+scope+" required")
			return
		}

		c.Next()
	}
}

func deny(c *gin.Context, claims *Claims, reason string) {
	logging.FromContext(c.Request.Context()).WarnContext(c.Request.Context(), "request denied",
		slog.String("route", c.FullPath()),
		slog.String("subject", claims.Subject),
		slog.String("claims", claims.Raw),
		slog.String("reason", reason),
	)

	dto.AbortWithError(c, domain.NewForbiddenError(c.Request.Method+" "+c.FullPath(), reason))
}

// parseCommaSeparated splits a comma-separated header into trimmed values.
func parseCommaSeparated(s string) []string {
	var result []string

	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
