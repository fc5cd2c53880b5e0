package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"trade-insights/internal/engine"
	"trade-insights/internal/fetch"
	"trade-insights/internal/store"
)

const testJournal = "Open time,PnL\n" +
	"04.03.2024 16:00:00,10\n" +
	"04.03.2024 16:10:00,-5\n" +
	"04.03.2024 16:20:00,15\n"

func testServer() *Server {
	gin.SetMode(gin.TestMode)
	cfg := &store.Config{}
	cfg.Server.Addr = ":0"
	cfg.Analysis.WindowMinutes = 15
	cfg.Analysis.MaxRows = 1000
	return New(cfg, engine.New(cfg), fetch.NewClient(fetch.WithTimeout(5*time.Second)), nil)
}

func postAnalyze(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthzEndpoint(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAnalyzeWithInlineData(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"csv_data": testJournal})
	w := postAnalyze(t, testServer(), string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data     map[string]json.RawMessage `json:"data"`
		Analysis map[string]json.RawMessage `json:"analysis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if _, ok := resp.Data["summary"]; !ok {
		t.Error("expected summary in response data")
	}
	if _, ok := resp.Analysis["optimal_intraday_drawdown"]; !ok {
		t.Error("expected drawdown recommendation in response")
	}
}

func TestAnalyzeWithFileURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testJournal))
	}))
	defer upstream.Close()

	body, _ := json.Marshal(map[string]string{"file_url": upstream.URL})
	w := postAnalyze(t, testServer(), string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeRejectsBothSources(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"file_url": "http://example.com", "csv_data": "x"})
	if w := postAnalyze(t, testServer(), string(body)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 with both sources set, got %d", w.Code)
	}
}

func TestAnalyzeIgnoresBlankCSVDataAlongsideURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testJournal))
	}))
	defer upstream.Close()

	body, _ := json.Marshal(map[string]string{"file_url": upstream.URL, "csv_data": "  \n"})
	if w := postAnalyze(t, testServer(), string(body)); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with whitespace-only csv_data, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeRejectsNoSource(t *testing.T) {
	if w := postAnalyze(t, testServer(), "{}"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 with no source, got %d", w.Code)
	}
}

func TestAnalyzeSchemaErrorMapsTo400(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"csv_data": "Close time,PnL\n04.03.2024 16:00:00,1\n"})
	w := postAnalyze(t, testServer(), string(body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for schema error, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Open time") {
		t.Error("expected column hint in error details")
	}
}

func TestAnalyzeEmptyInputMapsTo422(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"csv_data": "Open time,PnL\n04.03.2024 09:00:00,1\n"})
	w := postAnalyze(t, testServer(), string(body))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty input, got %d", w.Code)
	}
}

func TestAnalyzeFetchFailureMapsTo502(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	body, _ := json.Marshal(map[string]string{"file_url": upstream.URL})
	if w := postAnalyze(t, testServer(), string(body)); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for fetch failure, got %d", w.Code)
	}
}
