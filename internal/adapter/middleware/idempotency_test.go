package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	reqID      = "0123456789abcdef0123456789abcdef"
	operatorID = "ffffffffffffffffffffffffffffffff"
)

func newTestServer(t *testing.T, calls *int) (*echo.Echo, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	e := echo.New()
	e.Use(Idempotency(rdb, time.Hour))
	e.POST("/v1/deals", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusCreated, map[string]string{"deal_id": reqID})
	})
	e.GET("/v1/deals", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})
	return e, rdb
}

func doPost(e *echo.Echo, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/deals", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func goodHeaders() map[string]string {
	return map[string]string{
		"Ax-Request-Id":  reqID,
		"Ax-Request-At":  strconv.FormatInt(time.Now().Unix(), 10),
		"Ax-Operator-Id": operatorID,
	}
}

func TestIdempotency_ReplaysRecordedResponse(t *testing.T) {
	calls := 0
	e, _ := newTestServer(t, &calls)

	first := doPost(e, `{"principal":1000}`, goodHeaders())
	if first.Code != http.StatusCreated {
		t.Fatalf("first call code = %d", first.Code)
	}

	second := doPost(e, `{"principal":1000}`, goodHeaders())
	if second.Code != http.StatusCreated {
		t.Fatalf("replay code = %d, want 201", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Errorf("replay body %q differs from original %q", second.Body.String(), first.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want exactly once", calls)
	}
}

func TestIdempotency_RejectsReusedIDWithDifferentBody(t *testing.T) {
	calls := 0
	e, _ := newTestServer(t, &calls)

	if rec := doPost(e, `{"principal":1000}`, goodHeaders()); rec.Code != http.StatusCreated {
		t.Fatalf("first call code = %d", rec.Code)
	}
	rec := doPost(e, `{"principal":2000}`, goodHeaders())
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409 for a reused id with new body", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestIdempotency_HeaderValidation(t *testing.T) {
	calls := 0
	e, _ := newTestServer(t, &calls)

	cases := []struct {
		name  string
		mut   func(h map[string]string)
	}{
		{"missing request id", func(h map[string]string) { delete(h, "Ax-Request-Id") }},
		{"malformed request id", func(h map[string]string) { h["Ax-Request-Id"] = "nope" }},
		{"missing request at", func(h map[string]string) { delete(h, "Ax-Request-At") }},
		{"naive timestamp", func(h map[string]string) { h["Ax-Request-At"] = "2024-06-01T12:00:00" }},
		{"skewed timestamp", func(h map[string]string) {
			h["Ax-Request-At"] = strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		}},
		{"missing operator id", func(h map[string]string) { delete(h, "Ax-Operator-Id") }},
		{"malformed operator id", func(h map[string]string) { h["Ax-Operator-Id"] = "op-1" }},
	}
	for _, tc := range cases {
		h := goodHeaders()
		tc.mut(h)
		if rec := doPost(e, `{}`, h); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: code = %d, want 400", tc.name, rec.Code)
		}
	}
	if calls != 0 {
		t.Fatalf("handler ran %d times for rejected requests", calls)
	}
}

func TestIdempotency_SkipsReadOnlyMethods(t *testing.T) {
	calls := 0
	e, _ := newTestServer(t, &calls)

	// no idempotency headers at all
	req := httptest.NewRequest(http.MethodGet, "/v1/deals", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET code = %d, want 200 without headers", rec.Code)
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}
