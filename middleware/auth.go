package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/servihub/reports-api/stores"
	"github.com/servihub/reports-api/utils"
)

// AccessGate verifies the session cookie before any gated handler runs.
// Invalid credentials are cleared and redirected to the public entry point;
// non-admin callers on admin paths are redirected to the user area. Handlers
// still re-check role and identity from the attached claims, since the
// redirect is advisory at the transport layer.
func AccessGate(denylist *stores.SessionDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		token, err := c.Cookie(utils.AuthCookieName)
		if err != nil || token == "" {
			if strings.HasPrefix(path, "/admin") {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
				return
			}
			// anonymous access to the user area: handlers decide
			c.Next()
			return
		}

		claims, err := utils.VerifySessionToken(token)
		if err == nil && denylist != nil {
			revoked, derr := denylist.IsRevoked(c.Request.Context(), claims.SessionID)
			if derr != nil || revoked {
				err = utils.ErrInvalidToken
			}
		}
		if err != nil {
			utils.ClearAuthCookie(c)
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)

		if strings.HasPrefix(path, "/admin") && claims.Role != "admin" {
			c.Redirect(http.StatusFound, "/user")
			c.Abort()
			return
		}

		c.Next()
	}
}
