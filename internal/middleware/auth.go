package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"performer-directory-backend/internal/config"
	"performer-directory-backend/internal/models"
)

const (
	UserIDKey      = "user_id"
	UserKey        = "user"
	AccessTokenKey = "access_token"
)

type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the Supabase access token (HS256) and places the
// caller on the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "empty token"})
			c.Abort()
			return
		}

		claims := &supabaseClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if cfg.SupabaseJWTSecret == "" {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SupabaseJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid token", Message: tokenErrorMessage(err)})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing user id in token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID.String())
		c.Set(UserKey, models.User{ID: userID, Email: claims.Email})
		c.Set(AccessTokenKey, tokenString)
		c.Next()
	}
}

func tokenErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case strings.Contains(err.Error(), "signature is invalid"):
		return "token signature is invalid"
	case strings.Contains(err.Error(), "token is expired"):
		return "token has expired"
	case strings.Contains(err.Error(), "token is malformed"):
		return "token is malformed"
	default:
		return err.Error()
	}
}

// CurrentUser returns the caller set by AuthMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// AccessToken returns the raw bearer token of the caller.
func AccessToken(c *gin.Context) string {
	return c.GetString(AccessTokenKey)
}
