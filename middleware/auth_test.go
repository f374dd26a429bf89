package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/handboekai/handboek-api/common/ctxkey"
)

func performAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()

	var ownerKey string
	router := gin.New()
	router.Use(TokenAuth())
	router.GET("/probe", func(c *gin.Context) {
		ownerKey = c.GetString(ctxkey.OwnerKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w, ownerKey
}

func TestTokenAuth(t *testing.T) {
	t.Run("valid bearer token sets owner key", func(t *testing.T) {
		w, ownerKey := performAuth(t, "Bearer docent-sleutel-1234567890")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "docent-sleutel-1234567890", ownerKey)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w, _ := performAuth(t, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("too short token is rejected", func(t *testing.T) {
		w, _ := performAuth(t, "Bearer kort")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bare bearer prefix is rejected", func(t *testing.T) {
		w, _ := performAuth(t, "Bearer ")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
