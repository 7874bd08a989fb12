package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		SuccessWithNotice(c, http.StatusCreated, gin.H{"n": 1},
			model.NewNotification(model.NotificationSuccess, "Berhasil", 3*time.Second))
	})
	r.GET("/fail", func(c *gin.Context) {
		FailWithFields(c, http.StatusUnprocessableEntity, ErrValidation, map[string]string{"npm": "NPM minimal 8 digit"})
	})
	return r
}

func TestSuccessEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	newEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Error)
	assert.Equal(t, "abc-123", body.Metadata.RequestID)
	require.NotNil(t, body.Notification)
	assert.Equal(t, int64(3000), body.Notification.DurationMS)
}

func TestFailEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 200))
	newEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, "NPM minimal 8 digit", body.Error.Fields["npm"])
}

func TestGetMessageFallback(t *testing.T) {
	assert.Equal(t, "Tidak ada data untuk diekspor!", GetMessage(ErrNothingToExport))
	assert.Equal(t, "Terjadi kesalahan yang tidak terduga.", GetMessage(ErrCode("???")))
}
