package http_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/transport-service/docs"
	"github.com/transport-service/internal/config"
	httpDelivery "github.com/transport-service/internal/delivery/http"
	"github.com/transport-service/internal/delivery/http/handler"
	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/usecase"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) call(method string, payload domain.Payload) (*domain.EngineResponse, error) {
	args := m.MethodCalled(method, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngineResponse), args.Error(1)
}

func (m *mockEngine) Route(_ context.Context, p domain.Payload) (*domain.EngineResponse, error) {
	return m.call("Route", p)
}

func (m *mockEngine) Isochrone(_ context.Context, p domain.Payload) (*domain.EngineResponse, error) {
	return m.call("Isochrone", p)
}

func (m *mockEngine) TraceRoute(_ context.Context, p domain.Payload) (*domain.EngineResponse, error) {
	return m.call("TraceRoute", p)
}

func (m *mockEngine) TraceAttributes(_ context.Context, p domain.Payload) (*domain.EngineResponse, error) {
	return m.call("TraceAttributes", p)
}

func (m *mockEngine) Status(_ context.Context) error {
	return m.Called().Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			Env:         "test",
			CORSOrigins: []string{"*"},
			BodyLimit:   1 << 20,
		},
		Valhalla: config.ValhallaConfig{
			URL:     "http://valhalla:8002",
			Timeout: time.Second,
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func newTestServer(engine *mockEngine) *httpDelivery.Server {
	logger := zap.NewNop()
	accountant := usecase.NewAccountant(nil, logger)

	return httpDelivery.NewServer(
		testConfig(),
		logger,
		handler.NewRouteHandler(usecase.NewRoutingUseCase(engine, accountant, logger), logger),
		handler.NewIsolineHandler(usecase.NewIsolineUseCase(engine, accountant, logger), logger),
		handler.NewMapMatchHandler(usecase.NewMapMatchUseCase(engine, accountant, logger), logger),
		handler.NewHealthHandler(usecase.NewHealthUseCase(engine, logger)),
		nil,
		handler.NewDocsHandler(logger),
	)
}

func okResponse(body string) *domain.EngineResponse {
	return &domain.EngineResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(body)}
}

func decodeBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestServer_Route(t *testing.T) {
	t.Run("valid request is proxied", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("Route", mock.MatchedBy(func(p domain.Payload) bool {
			return p["costing"] == "bicycle" && len(p["locations"].([]any)) == 2
		})).Return(okResponse(`{"trip":{"status":0}}`), nil)

		body := `{"locations":[{"lat":41.38,"lon":2.17},{"lat":41.39,"lon":2.18}]}`
		req := httptest.NewRequest("POST", "/route/bicycle", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		raw, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"trip":{"status":0}}`, string(raw))
		engine.AssertExpectations(t)
	})

	t.Run("engine error status passes through", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("Route", mock.Anything).Return(&domain.EngineResponse{
			StatusCode:  400,
			ContentType: "application/json",
			Body:        []byte(`{"error_code":171,"error":"No suitable edges near location"}`),
		}, nil)

		body := `{"locations":[{"lat":0,"lon":0},{"lat":0.1,"lon":0.1}]}`
		req := httptest.NewRequest("POST", "/route/auto", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, float64(171), decodeBody(t, resp.Body)["error_code"])
	})

	t.Run("missing locations is a field error", func(t *testing.T) {
		engine := &mockEngine{}
		req := httptest.NewRequest("POST", "/route/auto", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 400, resp.StatusCode)
		assert.Contains(t, decodeBody(t, resp.Body), "locations")
		engine.AssertNotCalled(t, "Route", mock.Anything)
	})

	t.Run("body must be an object", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/route/auto", strings.NewReader(`[1,2]`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(&mockEngine{}).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, []any{"Request body must be a JSON object."}, decodeBody(t, resp.Body)["body"])
	})

	t.Run("unknown costing", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/route/hovercraft", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(&mockEngine{}).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 404, resp.StatusCode)
		errBody := decodeBody(t, resp.Body)["error"].(map[string]any)
		assert.Equal(t, "UNKNOWN_COSTING", errBody["code"])
	})

	t.Run("open circuit is 503", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("Route", mock.Anything).Return(nil, &domain.UpstreamError{
			Operation: domain.OperationRoute,
			Err:       domain.ErrCircuitOpen,
		})

		body := `{"locations":[{"lat":41.38,"lon":2.17},{"lat":41.39,"lon":2.18}]}`
		req := httptest.NewRequest("POST", "/route/auto", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 503, resp.StatusCode)
	})
}

func TestServer_Isoline(t *testing.T) {
	t.Run("repeated query keys become contours", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("Isochrone", mock.MatchedBy(func(p domain.Payload) bool {
			contours := p["contours"].([]any)
			return len(contours) == 2 &&
				contours[0].(map[string]any)["distance"] == 2.0 &&
				contours[1].(map[string]any)["color"] == "00ff00"
		})).Return(okResponse(`{"type":"FeatureCollection","features":[]}`), nil)

		req := httptest.NewRequest("GET",
			"/isoline/isodistance?lat=41.38&lon=2.17&range-0=2&range-1=4&color-1=00ff00", nil)

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "FeatureCollection", decodeBody(t, resp.Body)["type"])
		engine.AssertExpectations(t)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/isoline/isochrone?lat=120&lon=abc&range-0=10", nil)

		resp, err := newTestServer(&mockEngine{}).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 400, resp.StatusCode)
		errs := decodeBody(t, resp.Body)
		assert.Contains(t, errs, "lat")
		assert.Contains(t, errs, "lon")
	})
}

func multipartTrace(t *testing.T, fields map[string]string, csv string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="shape"; filename="trace.csv"`)
	h.Set("Content-Type", "text/csv")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestServer_MapMatching(t *testing.T) {
	t.Run("multipart csv upload", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("TraceAttributes", mock.MatchedBy(func(p domain.Payload) bool {
			shape := p["shape"].([]any)
			filters, _ := p["filters"].([]string)
			return len(shape) == 2 && assert.ObjectsAreEqual([]string{"edge.id", "edge.names"}, filters)
		})).Return(okResponse(`{"edges":[]}`), nil)

		body, contentType := multipartTrace(t,
			map[string]string{"filters": "edge.id,edge.names", "filter_action": "include"},
			"lat,lon\n41.38,2.17\n41.39,2.18\n")
		req := httptest.NewRequest("POST", "/map_matching/trace_attributes", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		engine.AssertExpectations(t)
	})

	t.Run("csv without coordinates", func(t *testing.T) {
		body, contentType := multipartTrace(t, nil, "time,type\n0,break\n")
		req := httptest.NewRequest("POST", "/map_matching/trace_route", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := newTestServer(&mockEngine{}).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, []any{"CSV must include a lat and a lon attribute."}, decodeBody(t, resp.Body)["shape"])
	})

	t.Run("json body", func(t *testing.T) {
		engine := &mockEngine{}
		engine.On("TraceRoute", mock.MatchedBy(func(p domain.Payload) bool {
			return p["costing"] == "auto"
		})).Return(okResponse(`{"trip":{}}`), nil)

		body := `{"shape":[{"lat":41.38,"lon":2.17,"type":"break"},{"lat":41.39,"lon":2.18,"type":"break"}]}`
		req := httptest.NewRequest("POST", "/map_matching/trace_route", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := newTestServer(engine).App().Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 200, resp.StatusCode)
		engine.AssertExpectations(t)
	})
}

func TestServer_Health(t *testing.T) {
	engine := &mockEngine{}
	engine.On("Status").Return(assert.AnError)

	resp, err := newTestServer(engine).App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	// статус сервиса отдаётся в теле, HTTP код всегда 200
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "FAILED", decodeBody(t, resp.Body)["status"])
}

func TestServer_StatsWithoutRedis(t *testing.T) {
	resp, err := newTestServer(&mockEngine{}).App().Test(httptest.NewRequest("GET", "/stats", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 503, resp.StatusCode)
}

func TestServer_UnknownPath(t *testing.T) {
	resp, err := newTestServer(&mockEngine{}).App().Test(httptest.NewRequest("GET", "/nowhere", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)
	errBody := decodeBody(t, resp.Body)["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestServer_OpenAPIDocument(t *testing.T) {
	resp, err := newTestServer(&mockEngine{}).App().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	doc := decodeBody(t, resp.Body)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/route/{costing}")
}
