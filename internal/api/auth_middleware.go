package api

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PeuAlmeidaDev/mindforge-backend/internal/constants"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/game"
	"github.com/PeuAlmeidaDev/mindforge-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

const ctxUserKey = "sessionUser"

// setSessionCookie sets the session cookie with appropriate flags for dev/prod.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := false
	if os.Getenv(constants.EnvSessionSecureCookie) == "1" {
		secure = true
	}
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// sessionToken reads the session from the cookie, falling back to a bearer
// Authorization header so non-browser clients can authenticate too.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(constants.CookieSessionName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(header, constants.BearerPrefix) {
		return strings.TrimPrefix(header, constants.BearerPrefix)
	}
	return ""
}

// AuthRequired validates the session token and loads the account it names
// into the request context. Tokens whose subject no longer resolves to a
// user are rejected the same way as malformed ones.
func AuthRequired(repo storage.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		u, err := repo.GetUserByPublicID(claims.Subject)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// currentUser returns the account loaded by AuthRequired.
func currentUser(c *gin.Context) *game.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*game.User); ok {
			return u
		}
	}
	return nil
}
