package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const AuthCookieName = "auth-token"

type UserClaims struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
	ExpiresAt int64  `json:"exp"`
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the claims attached by the access gate, or nil.
func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

// CurrentUser resolves the caller's identity for handlers that may run
// outside the gated groups. It prefers gate-attached claims and falls back
// to verifying the session cookie directly.
func CurrentUser(c *gin.Context) *UserClaims {
	if claims := GetUser(c); claims != nil {
		return claims
	}
	token, err := c.Cookie(AuthCookieName)
	if err != nil || token == "" {
		return nil
	}
	claims, err := VerifySessionToken(token)
	if err != nil {
		return nil
	}
	return claims
}

func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, token, int(SessionTTL.Seconds()), "/", "", false, true)
}

func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
}
