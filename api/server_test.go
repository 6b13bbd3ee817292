package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goliatone/go-product-compare/catalog"
	"github.com/goliatone/go-product-compare/comparison"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basePath = "/api/product-service"

var fixedNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func testCatalog() map[int64]catalog.Item {
	return map[int64]catalog.Item{
		1: {
			ID:             1,
			Name:           "Smartphone Alpha X1",
			Description:    "Flagship phone",
			Price:          decimal.RequireFromString("449.99"),
			Color:          "Black",
			Rating:         decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
			Type:           catalog.ItemTypeSmartphone,
			Specifications: map[string]any{"battery": "5000mAh"},
		},
		2: {
			ID:    2,
			Name:  "USB-C Cable",
			Price: decimal.RequireFromString("5"),
			Type:  catalog.ItemTypeGeneric,
		},
	}
}

type storeStub struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *storeStub) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	all := testCatalog()
	var out []catalog.Item
	for _, id := range ids {
		if item, ok := all[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type observerStub struct {
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (o *observerStub) ObserveHTTP(route string, code int, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, route)
	o.codes = append(o.codes, code)
}

func (o *observerStub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("metrics"))
	})
}

type pingStub struct{ err error }

func (p pingStub) Ping(ctx context.Context) error { return p.err }

func newTestServer(t *testing.T, store *storeStub, opts ...Option) *Server {
	t.Helper()
	resolver := comparison.New(store)
	s := New(Config{Addr: ":0", BasePath: basePath}, resolver, opts...)
	s.now = func() time.Time { return fixedNow }
	return s
}

func doRequest(s *Server, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleCompare_Success(t *testing.T) {
	s := newTestServer(t, &storeStub{})

	rec := doRequest(s, basePath+"/products/compare?ids=2,1,2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var body struct {
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Products, 2)
	assert.Equal(t, "USB-C Cable", body.Products[0]["name"])
	assert.Equal(t, "Smartphone Alpha X1", body.Products[1]["name"])
	assert.Equal(t, "GENERIC", body.Products[0]["productType"])
	assert.NotContains(t, body.Products[0], "description")
	assert.NotContains(t, body.Products[0], "rating")
	assert.Contains(t, body.Products[1], "specifications")
}

func TestHandleCompare_FieldProjection(t *testing.T) {
	s := newTestServer(t, &storeStub{})

	rec := doRequest(s, basePath+"/products/compare?ids=1&fields=NAME,%20price,unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[{"name":"Smartphone Alpha X1","price":449.99}]}`, rec.Body.String())
}

func TestHandleCompare_RepeatedParameters(t *testing.T) {
	s := newTestServer(t, &storeStub{})

	rec := doRequest(s, basePath+"/products/compare?ids=1&ids=2&fields=id", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"products":[{"id":1},{"id":2}]}`, rec.Body.String())
}

func TestHandleCompare_Errors(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		storeErr    error
		wantStatus  int
		wantError   string
		wantMessage string
		wantDetails string
		wantFields  int
	}{
		{
			name:        "missing ids parameter",
			target:      "/products/compare",
			wantStatus:  http.StatusBadRequest,
			wantError:   "BAD_REQUEST",
			wantMessage: "Required parameter 'ids' is missing",
		},
		{
			name:        "invalid id token",
			target:      "/products/compare?ids=1,abc",
			wantStatus:  http.StatusBadRequest,
			wantError:   "INVALID_ARGUMENT",
			wantMessage: "Invalid argument provided",
			wantDetails: "Invalid ID: abc",
			wantFields:  1,
		},
		{
			name:        "empty ids",
			target:      "/products/compare?ids=",
			wantStatus:  http.StatusUnprocessableEntity,
			wantError:   "INVALID_REQUEST",
			wantMessage: "Invalid request",
			wantDetails: "At least one product ID is required",
		},
		{
			name:        "blank ids",
			target:      "/products/compare?ids=%20,%20",
			wantStatus:  http.StatusUnprocessableEntity,
			wantError:   "INVALID_REQUEST",
			wantMessage: "Invalid request",
			wantDetails: "At least one product ID is required",
		},
		{
			name:        "unknown ids",
			target:      "/products/compare?ids=1,5,9",
			wantStatus:  http.StatusNotFound,
			wantError:   "NOT_FOUND",
			wantMessage: "One or more products were not found",
			wantDetails: "The following product ID(s) do not exist: [5, 9]",
			wantFields:  2,
		},
		{
			name:        "store failure",
			target:      "/products/compare?ids=1",
			storeErr:    errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "INTERNAL_SERVER_ERROR",
			wantMessage: "An unexpected error occurred",
			wantDetails: "Please contact support if the problem persists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &storeStub{err: tt.storeErr})

			rec := doRequest(s, basePath+tt.target, nil)
			require.Equal(t, tt.wantStatus, rec.Code)

			resp := decodeError(t, rec)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantDetails, resp.Details)
			assert.Equal(t, basePath+"/products/compare", resp.Path)
			assert.True(t, resp.Timestamp.Equal(fixedNow))
			assert.Len(t, resp.ValidationErrors, tt.wantFields)
		})
	}
}

func TestHandleCompare_NotFoundValidationErrors(t *testing.T) {
	s := newTestServer(t, &storeStub{})

	rec := doRequest(s, basePath+"/products/compare?ids=7", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeError(t, rec)
	require.Len(t, resp.ValidationErrors, 1)
	assert.Equal(t, "ids", resp.ValidationErrors[0].Field)
	assert.Equal(t, "Product not found: 7", resp.ValidationErrors[0].Message)
	assert.EqualValues(t, 7, resp.ValidationErrors[0].RejectedValue)
}

func TestHandleCompare_ETag(t *testing.T) {
	s := newTestServer(t, &storeStub{})
	target := basePath + "/products/compare?ids=1,2"

	first := doRequest(s, target, nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := doRequest(s, target, map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	other := doRequest(s, basePath+"/products/compare?ids=2", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestHandleCompare_IfNoneMatchForms(t *testing.T) {
	s := newTestServer(t, &storeStub{})
	target := basePath + "/products/compare?ids=1,2"

	first := doRequest(s, target, nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "weak validator", header: "W/" + etag, want: http.StatusNotModified},
		{name: "list", header: `"deadbeef", ` + etag, want: http.StatusNotModified},
		{name: "weak in list", header: `W/"deadbeef",W/` + etag, want: http.StatusNotModified},
		{name: "wildcard", header: "*", want: http.StatusNotModified},
		{name: "no match", header: `"deadbeef", W/"cafe"`, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, target, map[string]string{"If-None-Match": tt.header})
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestEtagMatches(t *testing.T) {
	assert.False(t, etagMatches(nil, `"a"`))
	assert.True(t, etagMatches([]string{`"b"`, ` W/"a" `}, `"a"`))
	assert.False(t, etagMatches([]string{`a`}, `"a"`))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, &storeStub{})
	id := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"

	rec := doRequest(s, basePath+"/products/compare?ids=1", map[string]string{RequestIDHeader: id})
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	rec = doRequest(s, basePath+"/products/compare?ids=1", map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &storeStub{})

	req := httptest.NewRequest(http.MethodPost, basePath+"/products/compare?ids=1", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]HealthChecker
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","services":{}}`,
		},
		{
			name:       "all up",
			checks:     map[string]HealthChecker{"database": pingStub{}, "cache": pingStub{}},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","services":{"cache":"up","database":"up"}}`,
		},
		{
			name:       "cache down",
			checks:     map[string]HealthChecker{"database": pingStub{}, "cache": pingStub{err: errors.New("down")}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","services":{"cache":"down","database":"up"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			for name, check := range tt.checks {
				opts = append(opts, WithHealthCheck(name, check))
			}
			s := newTestServer(t, &storeStub{}, opts...)

			rec := doRequest(s, "/health", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestObserver(t *testing.T) {
	obs := &observerStub{}
	s := newTestServer(t, &storeStub{}, WithObserver(obs))

	doRequest(s, basePath+"/products/compare?ids=1", nil)
	doRequest(s, basePath+"/products/compare?ids=42", nil)
	rec := doRequest(s, "/metrics", nil)
	assert.Equal(t, "metrics", rec.Body.String())

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.routes, 3)
	assert.Equal(t, basePath+"/products/compare", obs.routes[0])
	assert.Equal(t, []int{200, 404, 200}, obs.codes)
}

func TestMetricsRouteAbsentWithoutObserver(t *testing.T) {
	s := newTestServer(t, &storeStub{})
	rec := doRequest(s, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShutdown(t *testing.T) {
	s := newTestServer(t, &storeStub{})
	s.cfg.ShutdownTimeout = time.Second

	errCh := make(chan error, 1)
	go func() { errCh <- s.ListenAndServe() }()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, s.Shutdown(context.Background()))
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
