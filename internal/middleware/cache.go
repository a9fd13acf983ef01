package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/kitlog/kitlog-api/internal/config"
)

// captureWriter tees the response body into a buffer (up to limit bytes)
// while forwarding it to the client, so a successful response can be stored
// after the handler returns.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if remain := cw.limit - cw.size; remain > 0 {
		if int64(len(b)) <= remain {
			cw.buf.Write(b)
		} else {
			cw.buf.Write(b[:remain])
		}
	}
	cw.size += int64(len(b))
	return cw.ResponseWriter.Write(b)
}

// cacheKey hashes the request's concrete URL path (and optionally
// method/query) under the configured prefix. The raw path, not the route
// pattern, feeds the key so parameterized routes never share entries.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	path := c.Request().URL.Path
	var parts []string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		parts = []string{"route", path}
	case "method_route":
		parts = []string{"method", c.Request().Method, "route", path}
	case "method_route_query":
		parts = []string{"method", c.Request().Method, "route", path, "q", c.Request().URL.RawQuery}
	default: // "route_query"
		parts = []string{"route", path, "q", c.Request().URL.RawQuery}
	}
	sum := sha1.Sum([]byte(strings.Join(parts, ":")))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// cached payload layout: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodeEntry(status int, header http.Header, body []byte) ([]byte, error) {
	hdr, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdr)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdr)))
	copy(out[8:], hdr)
	copy(out[8+len(hdr):], body)
	return out, nil
}

func decodeEntry(raw []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(raw) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(raw[0:4]))
	hlen := int(binary.BigEndian.Uint32(raw[4:8]))
	if len(raw) < 8+hlen {
		return 0, nil, nil, false
	}
	header = http.Header{}
	if err := json.Unmarshal(raw[8:8+hlen], &header); err != nil {
		return 0, nil, nil, false
	}
	return status, header, raw[8+hlen:], true
}

// ResponseCache serves matching requests from Redis and stores fresh 2xx
// responses for the configured TTL. Non-cacheable methods and oversized
// bodies pass straight through. Disabled (or Redis-less) configurations are
// a no-op.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}
			key := cacheKey(cfg, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if status, header, body, ok := decodeEntry(raw); ok {
					h := c.Response().Header()
					for k, vs := range header {
						for _, v := range vs {
							h.Add(k, v)
						}
					}
					h.Set("X-Cache", "HIT")
					return c.Blob(status, h.Get(echo.HeaderContentType), body)
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Header().Set("X-Cache", "MISS")
			c.Response().Writer = cw

			if err := next(c); err != nil {
				return err
			}

			// Only store complete 2xx bodies.
			if cw.status >= 200 && cw.status < 300 && cw.size <= cw.limit {
				if raw, err := encodeEntry(cw.status, c.Response().Header().Clone(), cw.buf.Bytes()); err == nil {
					_ = rdb.Set(ctx, key, raw, cfg.TTL).Err()
				}
			}
			return nil
		}
	}
}
