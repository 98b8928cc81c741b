package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskhub/internal/config"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/models"
)

const actorKey = "actor"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// ActorLoader loads the acting identity for a verified token. The loaded
// projection must not include the password hash.
type ActorLoader interface {
	GetActorByID(id uint) (*models.User, error)
}

// GenerateToken issues a signed bearer token carrying the user's id and role.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "taskhub-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseToken parses and validates a bearer token, returning its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Auth verifies the bearer token, loads the acting user, rejects
// deactivated accounts, and attaches the actor to the request context.
func Auth(users ActorLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.ErrNoToken)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.ErrNoToken)
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			abortWithError(c, apperrors.ErrTokenFailed)
			return
		}

		user, err := users.GetActorByID(claims.UserID)
		if err != nil {
			abortWithError(c, apperrors.ErrTokenUserNotFound)
			return
		}

		if !user.IsActive {
			abortWithError(c, apperrors.ErrAccountDeactivated)
			return
		}

		c.Set(actorKey, user)
		c.Next()
	}
}

// Actor returns the authenticated user attached by Auth, if any.
func Actor(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// RequireRoles rejects requests whose actor's role is not in the allowed set.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Actor(c)
		if !ok {
			abortWithError(c, apperrors.ErrNoToken)
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		abortWithError(c, apperrors.WithMessage(apperrors.ErrForbidden,
			fmt.Sprintf("User role %s is not authorized to access this route", user.Role)))
	}
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.StatusCode, gin.H{"message": err.Message})
	c.Abort()
}
