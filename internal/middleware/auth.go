package middleware

import (
	"net/http"
	"slices"
	"strings"

	"taxoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Roles understood by the API.
const (
	RoleAdmin    = "admin"    // configures rate books, penalty rules, calendars
	RoleManager  = "manager"  // approves extensions
	RoleAssessor = "assessor" // assesses liabilities and runs compliance scoring
	RoleClerk    = "clerk"    // registers taxpayers, files returns, records payments
)

const (
	actorKey = "userID"
	roleKey  = "userRole"

	devSecret = "default_super_secret_key"
)

// Auth verifies HS256 bearer tokens issued by the identity provider. Tokens carry the
// user id in "sub" and a single role in "role".
type Auth struct {
	secret []byte
}

// NewAuth creates the middleware factory. An empty secret falls back to a development
// key; configuration refuses that in production.
func NewAuth(secret string) *Auth {
	if secret == "" {
		secret = devSecret
	}
	return &Auth{secret: []byte(secret)}
}

// Secret returns the verification key.
func (a *Auth) Secret() []byte { return a.secret }

// RequireRole validates the JWT token and checks that the caller's role is one of
// allowedRoles.
func (a *Auth) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Try cookie first, fallback to Authorization header
		tokenString, cookieErr := c.Cookie("access_token")
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = parts[1]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Subject not found in token"))
			return
		}
		userRole, ok := claims["role"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}
		if !slices.Contains(allowedRoles, userRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}

		c.Set(actorKey, sub)
		c.Set(roleKey, userRole)
		c.Next()
	}
}

// Actor returns the authenticated user id, or "" outside RequireRole.
func Actor(c *gin.Context) string {
	return c.GetString(actorKey)
}

// Role returns the authenticated role, or "" outside RequireRole.
func Role(c *gin.Context) string {
	return c.GetString(roleKey)
}
