package middleware

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// BrotliConfig tunes the compression middleware.
type BrotliConfig struct {
	Quality int
	// MinLength is the body size below which responses are sent uncompressed.
	MinLength int
}

var DefaultBrotliConfig = BrotliConfig{
	Quality:   brotli.DefaultCompression,
	MinLength: 1024,
}

// compressibleTypes are the Content-Type prefixes worth compressing. Exported
// workbooks are already zip containers and pass through untouched.
var compressibleTypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"image/svg+xml",
}

// brotliWriter buffers the first MinLength bytes, then decides once whether
// the response is compressed based on its Content-Type.
type brotliWriter struct {
	gin.ResponseWriter
	br        *brotli.Writer
	quality   int
	buf       []byte
	minLength int
	decided   bool
	compress  bool
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	if bw.decided {
		return bw.forward(data)
	}

	bw.buf = append(bw.buf, data...)
	if len(bw.buf) < bw.minLength {
		return len(data), nil
	}

	bw.decide(compressible(bw.Header().Get("Content-Type")))
	if err := bw.flushBuffer(); err != nil {
		return 0, err
	}
	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// Flush is called by streaming endpoints. Anything still undecided goes out plain.
func (bw *brotliWriter) Flush() {
	if !bw.decided {
		bw.decide(false)
	}
	_ = bw.flushBuffer()
	if bw.compress {
		_ = bw.br.Flush()
	}
	bw.ResponseWriter.Flush()
}

func (bw *brotliWriter) decide(compress bool) {
	bw.decided = true
	bw.compress = compress
	if compress {
		bw.Header().Set("Content-Encoding", "br")
		bw.Header().Del("Content-Length")
		bw.br = brotli.NewWriterLevel(bw.ResponseWriter, bw.quality)
	}
}

func (bw *brotliWriter) forward(data []byte) (int, error) {
	if bw.compress {
		return bw.br.Write(data)
	}
	return bw.ResponseWriter.Write(data)
}

func (bw *brotliWriter) flushBuffer() error {
	if len(bw.buf) == 0 {
		return nil
	}
	_, err := bw.forward(bw.buf)
	bw.buf = bw.buf[:0]
	return err
}

// finish sends short bodies plain and closes the compressor.
func (bw *brotliWriter) finish() error {
	if !bw.decided {
		bw.decide(false)
	}
	if err := bw.flushBuffer(); err != nil {
		return err
	}
	if bw.compress {
		return bw.br.Close()
	}
	return nil
}

func Brotli() gin.HandlerFunc {
	return BrotliWithConfig(DefaultBrotliConfig)
}

func BrotliWithConfig(cfg BrotliConfig) gin.HandlerFunc {
	if cfg.Quality < 0 || cfg.Quality > 11 {
		cfg.Quality = brotli.DefaultCompression
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultBrotliConfig.MinLength
	}

	return func(c *gin.Context) {
		if shouldSkip(c) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			quality:        cfg.Quality,
			minLength:      cfg.MinLength,
		}
		c.Writer = bw

		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
		}()

		c.Next()
	}
}

// shouldSkip returns true for protocols that are incompatible with
// buffered compression and must be passed through untouched.
func shouldSkip(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "text/event-stream") {
		return true
	}
	// The WebSocket handshake fails if the response is wrapped.
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		// Ignore q-values; "br;q=0" is vanishingly rare from real clients.
		name, _, _ := strings.Cut(enc, ";")
		if strings.EqualFold(strings.TrimSpace(name), "br") {
			return true
		}
	}
	return false
}

func compressible(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, prefix := range compressibleTypes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}
