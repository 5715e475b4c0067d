package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/servihub/reports-api/models"
	"github.com/servihub/reports-api/stores"
	"github.com/servihub/reports-api/utils"
	"gorm.io/gorm"
)

type AuthController struct {
	DB       *gorm.DB
	Denylist *stores.SessionDenylist
}

func NewAuthController(db *gorm.DB, denylist *stores.SessionDenylist) *AuthController {
	return &AuthController{
		DB:       db,
		Denylist: denylist,
	}
}

// Login looks the caller up by email and issues the session cookie. Admins
// get 202, plain users get 403 with the cookie still set, so the client can
// route them to the right area.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User Not Found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login", "details": err.Error()})
		return
	}

	token, err := utils.IssueSessionToken(user.ID, user.Role, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login", "details": err.Error()})
		return
	}

	utils.SetAuthCookie(c, token)

	if user.Role == models.RoleAdmin {
		c.JSON(http.StatusAccepted, gin.H{"message": "Approved"})
		return
	}
	c.JSON(http.StatusForbidden, gin.H{"message": "Prohibited"})
}

// Logout clears the session cookie. When a denylist is configured the
// session id is also revoked for the token's remaining lifetime. The cookie
// is cleared even when revocation fails, so the client never keeps a
// credential the server could not revoke.
func (ac *AuthController) Logout(c *gin.Context) {
	utils.ClearAuthCookie(c)

	if ac.Denylist != nil {
		if token, err := c.Cookie(utils.AuthCookieName); err == nil && token != "" {
			if claims, verr := utils.VerifySessionToken(token); verr == nil {
				ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
				if err := ac.Denylist.Revoke(c.Request.Context(), claims.SessionID, ttl); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out", "details": err.Error()})
					return
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Session reports the authentication state of the current cookie. A missing
// or invalid cookie is a normal false, never an error.
func (ac *AuthController) Session(c *gin.Context) {
	token, err := c.Cookie(utils.AuthCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	claims, err := utils.VerifySessionToken(token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	if ac.Denylist != nil {
		revoked, derr := ac.Denylist.IsRevoked(c.Request.Context(), claims.SessionID)
		if derr != nil || revoked {
			c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"email":           claims.Email,
		"role":            claims.Role,
	})
}

// Me returns the identity behind the current session, for the user area.
func (ac *AuthController) Me(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    formatID(user.UserID),
		"email": user.Email,
		"role":  user.Role,
	})
}
