package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newRouter(auth *Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", auth.RequireRole(RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, Actor(c)+"/"+Role(c))
	})
	return r
}

func TestRequireRole(t *testing.T) {
	auth := NewAuth(testSecret)
	router := newRouter(auth)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", jwt.MapClaims{"sub": "u1", "role": RoleAdmin, "exp": exp}), http.StatusUnauthorized, ""},
		{"expired", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "role": RoleAdmin, "exp": time.Now().Add(-time.Hour).Unix()}), http.StatusUnauthorized, ""},
		{"no subject", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"role": RoleAdmin, "exp": exp}), http.StatusUnauthorized, ""},
		{"no role", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "exp": exp}), http.StatusForbidden, ""},
		{"role not allowed", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "role": RoleClerk, "exp": exp}), http.StatusForbidden, ""},
		{"allowed", "Bearer " + signToken(t, testSecret, jwt.MapClaims{"sub": "u1", "role": RoleAdmin, "exp": exp}), http.StatusOK, "u1/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequireRole_Cookie(t *testing.T) {
	router := newRouter(NewAuth(testSecret))
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "u2", "role": RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u2/admin", w.Body.String())
}

func TestNewAuth_DevSecret(t *testing.T) {
	assert.Equal(t, []byte(devSecret), NewAuth("").Secret())
}
