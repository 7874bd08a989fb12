package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/big", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(strings.Repeat("1,\"Ayu\",12345678\n", 200)))
	})
	r.GET("/small", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/xlsx", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", make([]byte, 4096))
	})
	return r
}

func get(r http.Handler, path, encoding string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if encoding != "" {
		req.Header.Set("Accept-Encoding", encoding)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestBrotliCompressesLargeText(t *testing.T) {
	w := get(brotliEngine(), "/big", "gzip, br")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "br", w.Header().Get("Content-Encoding"))

	plain, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1,\"Ayu\",12345678\n", 200), string(plain))
}

func TestBrotliLeavesSmallBodiesPlain(t *testing.T) {
	w := get(brotliEngine(), "/small", "br")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestBrotliSkipsBinaryAndNonAccepting(t *testing.T) {
	w := get(brotliEngine(), "/xlsx", "br")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Len(t, w.Body.Bytes(), 4096)

	w = get(brotliEngine(), "/big", "gzip")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}
