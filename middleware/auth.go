package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"folio/access"
	"folio/auth"
	"folio/database"
	"folio/metrics"
	"folio/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	APIKeyHeader  = "X-API-Key"
	SessionCookie = "folio_session"

	principalKey = "principal"
)

// KeyStore is the part of the store the key path needs.
type KeyStore interface {
	GetActiveAPIKey(ctx context.Context, key string) (*models.APIKey, error)
	TouchAPIKey(ctx context.Context, keyID uuid.UUID, at time.Time) error
}

// SessionVerifier resolves a session token to an admin identity.
type SessionVerifier interface {
	Verify(token string) (*auth.Session, error)
}

// Authenticate resolves the caller to exactly one principal.
//
// A request carrying X-API-Key is committed to key auth: an unknown or
// inactive key is rejected even if a valid session is also present.
// Requests without the header must carry a valid session.
func Authenticate(keys KeyStore, sessions SessionVerifier, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(APIKeyHeader); apiKey != "" {
			authenticateKey(c, keys, apiKey, logger)
			return
		}
		authenticateSession(c, sessions)
	}
}

// RequireSession admits admin sessions only. An API key header grants
// nothing here.
func RequireSession(sessions SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticateSession(c, sessions)
	}
}

// RequirePermission rejects API keys that lack perm. Admin sessions pass.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok || !principal.HasPermission(perm) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API key not permitted: " + perm})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Authenticate or RequireSession.
func PrincipalFrom(c *gin.Context) (access.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

func authenticateKey(c *gin.Context, keys KeyStore, apiKey string, logger *logrus.Logger) {
	ctx := c.Request.Context()

	key, err := keys.GetActiveAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, database.ErrInvalidAPIKey) {
			metrics.AuthAttemptsTotal.WithLabelValues(access.KindAPIKey.String(), "rejected").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			c.Abort()
			return
		}
		logger.WithError(err).Error("API key lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
		c.Abort()
		return
	}

	if err := keys.TouchAPIKey(ctx, key.ID, time.Now().UTC()); err != nil {
		logger.WithError(err).WithField("key_id", key.ID).Warn("Failed to record API key use")
	}

	metrics.AuthAttemptsTotal.WithLabelValues(access.KindAPIKey.String(), "ok").Inc()
	c.Set(principalKey, access.APIKeyPrincipal(key))
	c.Next()
}

func authenticateSession(c *gin.Context, sessions SessionVerifier) {
	token, ok := sessionToken(c)
	if !ok {
		rejectSession(c, "authorization required")
		return
	}

	session, err := sessions.Verify(token)
	if err != nil {
		rejectSession(c, "unauthorized")
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues(access.KindAdminSession.String(), "ok").Inc()
	c.Set(principalKey, access.AdminSession(session.UserID))
	c.Next()
}

func rejectSession(c *gin.Context, msg string) {
	metrics.AuthAttemptsTotal.WithLabelValues(access.KindAdminSession.String(), "rejected").Inc()
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}

// sessionToken reads "Authorization: Bearer <token>", falling back to the
// session cookie.
func sessionToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
