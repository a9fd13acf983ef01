package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kitlog/kitlog-api/internal/config"
)

func TestEncodeDecodeEntry(t *testing.T) {
	hdr := http.Header{}
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	body := []byte(`{"items":[]}`)

	raw, err := encodeEntry(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodeEntry: %v", err)
	}
	status, gotHdr, gotBody, ok := decodeEntry(raw)
	if !ok {
		t.Fatal("decodeEntry rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotHdr.Get(echo.HeaderContentType) != echo.MIMEApplicationJSON {
		t.Fatalf("content type = %q", gotHdr.Get(echo.HeaderContentType))
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestDecodeEntryRejectsTruncated(t *testing.T) {
	if _, _, _, ok := decodeEntry([]byte{1, 2, 3}); ok {
		t.Fatal("short payload accepted")
	}
	raw, err := encodeEntry(http.StatusOK, http.Header{}, []byte("x"))
	if err != nil {
		t.Fatalf("encodeEntry: %v", err)
	}
	if _, _, _, ok := decodeEntry(raw[:6]); ok {
		t.Fatal("truncated payload accepted")
	}
}

func TestCaptureWriterLimitsBuffer(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	if _, err := cw.Write([]byte("abcdef")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := cw.buf.String(); got != "abcd" {
		t.Fatalf("buffered %q, want %q", got, "abcd")
	}
	if cw.size != 6 {
		t.Fatalf("size = %d, want 6", cw.size)
	}
	// The client still receives the full body.
	if rec.Body.String() != "abcdef" {
		t.Fatalf("forwarded body = %q", rec.Body.String())
	}
}

func cacheCtx(target, path string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(path)
	return c
}

func TestCacheKeyStrategies(t *testing.T) {
	mk := cacheCtx

	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	a := cacheKey(cfg, mk("/v1/equipment?category=camera", "/v1/equipment"))
	b := cacheKey(cfg, mk("/v1/equipment?category=light", "/v1/equipment"))
	if a == b {
		t.Fatal("route_query strategy ignored the query string")
	}

	cfg.KeyStrategy = "route"
	a = cacheKey(cfg, mk("/v1/equipment?category=camera", "/v1/equipment"))
	b = cacheKey(cfg, mk("/v1/equipment?category=light", "/v1/equipment"))
	if a != b {
		t.Fatal("route strategy keyed on the query string")
	}
}

// Requests that differ only in a path parameter must never share an entry:
// on a token-addressed route a shared key would hand one caller another
// caller's cached body.
func TestCacheKeySeparatesPathParams(t *testing.T) {
	for _, strategy := range []string{"route", "route_query", "method_route", "method_route_query"} {
		cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: strategy}
		a := cacheKey(cfg, cacheCtx("/v1/invitations/tokenAAA", "/v1/invitations/:token"))
		b := cacheKey(cfg, cacheCtx("/v1/invitations/tokenBBB", "/v1/invitations/:token"))
		if a == b {
			t.Errorf("%s: cache keys collide for distinct tokens: %s", strategy, a)
		}
	}
}
