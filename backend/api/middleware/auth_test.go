package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"optiwave/backend/common"
	"optiwave/backend/model"
	"optiwave/backend/service"

	"github.com/burugo/thing"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	common.JWTSecret = "middleware-test-secret"
	common.JWTRefreshSecret = "middleware-test-refresh-secret"
	common.RedisEnabled = false
}

func authTestRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", JWTAuth(), func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		email := c.GetString("email")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": email})
	})
	router.GET("/admin", JWTAuth(), AdminAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func tokenFor(t *testing.T, id int64, email string, role int) string {
	t.Helper()
	token, err := service.GenerateToken(&model.User{
		BaseModel: thing.BaseModel{ID: id},
		Email:     email,
		Role:      role,
	})
	require.NoError(t, err)
	return token
}

func doAuthRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := authTestRouter()
	recorder := doAuthRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	router := authTestRouter()

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer"} {
		recorder := doAuthRequest(router, "/protected", header)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router := authTestRouter()
	recorder := doAuthRequest(router, "/protected", "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	router := authTestRouter()
	token := tokenFor(t, 7, "user@example.com", common.RoleCommonUser)

	recorder := doAuthRequest(router, "/protected", "Bearer "+token)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":7`)
	assert.Contains(t, recorder.Body.String(), "user@example.com")
}

func TestAdminAuthRejectsCommonUser(t *testing.T) {
	router := authTestRouter()
	token := tokenFor(t, 8, "user@example.com", common.RoleCommonUser)

	recorder := doAuthRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAdminAuthAllowsAdmin(t *testing.T) {
	router := authTestRouter()
	token := tokenFor(t, 9, "admin@example.com", common.RoleAdminUser)

	recorder := doAuthRequest(router, "/admin", "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
