package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// SessionTTL bounds the lifetime of every issued session token.
const SessionTTL = 2 * time.Hour

// ErrInvalidToken is the single failure value for verification: bad
// signature, malformed token and expiry are indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid session token")

// IssueSessionToken signs a self-contained session credential carrying the
// caller's identity, role, email and a fresh session id.
func IssueSessionToken(userID int64, role, email string) (string, error) {
	now := time.Now()
	// user_id travels as a decimal string: JSON claims decode numbers into
	// float64, which silently corrupts ids above 2^53.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    strconv.FormatInt(userID, 10),
		"role":       role,
		"email":      email,
		"session_id": uuid.New().String(),
		"iat":        now.Unix(),
		"exp":        now.Add(SessionTTL).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func VerifySessionToken(tokenString string) (*UserClaims, error) {
	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	rawUserID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	email, _ := claims["email"].(string)
	sessionID, _ := claims["session_id"].(string)
	exp, _ := claims["exp"].(float64)

	return &UserClaims{
		UserID:    userID,
		Role:      role,
		Email:     email,
		SessionID: sessionID,
		ExpiresAt: int64(exp),
	}, nil
}
