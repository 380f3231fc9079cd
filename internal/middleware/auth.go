package middleware

import (
	"net/http"
	"strings"
	"time"

	"invoicedesk/internal/auth"
	"invoicedesk/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey     = "session"
	accessTokenKey = "access_token"
)

// Authenticator resolves the caller's session from the access_token cookie or a Bearer header.
type Authenticator struct {
	issuer        *auth.Issuer
	secureCookies bool
}

func NewAuthenticator(issuer *auth.Issuer, secureCookies bool) *Authenticator {
	return &Authenticator{issuer: issuer, secureCookies: secureCookies}
}

// OptionalAuth attaches a session when the request carries a valid token.
// Requests without one continue anonymously.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if sess, err := a.issuer.Parse(token); err == nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}
		sess, err := a.issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session attached by the auth middleware, or nil for anonymous callers.
func SessionFrom(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*auth.Session)
	return sess
}

// SetTokenCookie stores the access token as an HttpOnly cookie
func (a *Authenticator) SetTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(a.sameSite())
	c.SetCookie(accessTokenKey, token, int(ttl.Seconds()), "/", "", a.secureCookies, true)
}

// ClearTokenCookie removes the access token cookie
func (a *Authenticator) ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(a.sameSite())
	c.SetCookie(accessTokenKey, "", -1, "/", "", a.secureCookies, true)
}

// Cross-origin deployments need SameSite=None, which browsers only accept with Secure.
func (a *Authenticator) sameSite() http.SameSite {
	if a.secureCookies {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func tokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenKey); err == nil && token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
