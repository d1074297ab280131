package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclecare/internal/db"
	"github.com/terraincognita07/cyclecare/internal/i18n"
	"github.com/terraincognita07/cyclecare/internal/models"
	"github.com/terraincognita07/cyclecare/internal/services"
)

const testSecretKey = "test-secret-key-with-at-least-32-characters"

type stubGateway struct{}

func (stubGateway) PredictNext(_ context.Context, history []models.CycleRecord) (models.PredictionResult, error) {
	latest := services.SortByStartDescending(history)[0]
	return models.PredictionResult{
		NextDate:   models.FormatDay(models.AddDays(latest.StartDate, models.DefaultCycleLength)),
		Confidence: 0.5,
		Message:    "stub",
	}, nil
}

func (stubGateway) GenerateReport(_ context.Context, cycle models.CycleRecord) (models.HealthReport, error) {
	if cycle.ID == "blank" {
		return models.HealthReport{}, nil
	}
	return models.HealthReport{Summary: "report for " + cycle.ID}, nil
}

type testApp struct {
	app     *fiber.App
	handler *Handler
	cycles  *services.CycleService
}

func newTestApp(t *testing.T, today string, passcodeHash string) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cyclecare-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.CloseSQLite(database)
	})

	store := services.NewCycleStore(db.NewKeyValueRepository(database), "", nil)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load store: %v", err)
	}
	advisory := services.NewAdvisoryService(stubGateway{}, time.Second, nil)
	t.Cleanup(advisory.Close)
	cycles := services.NewCycleService(store, advisory, nil)

	manager, err := i18n.NewEmbeddedManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(HandlerOptions{
		Cycles:       cycles,
		Advisory:     advisory,
		I18n:         manager,
		SecretKey:    testSecretKey,
		PasscodeHash: passcodeHash,
	})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	fixed, err := models.ParseDay(today)
	if err != nil {
		t.Fatalf("parse today: %v", err)
	}
	now := fixed.Add(9 * time.Hour)
	handler.now = func() time.Time { return now }

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &testApp{app: app, handler: handler, cycles: cycles}
}

type testResponse struct {
	status  int
	body    string
	cookies []*http.Cookie
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal([]byte(response.body), target); err != nil {
		t.Fatalf("decode %q: %v", response.body, err)
	}
}

func (response testResponse) errorCode(t *testing.T) string {
	t.Helper()
	payload := map[string]string{}
	response.decode(t, &payload)
	return payload["error"]
}

func (env *testApp) do(t *testing.T, method string, path string, body any, headers map[string]string) testResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return testResponse{status: response.StatusCode, body: string(raw), cookies: response.Cookies()}
}

func (env *testApp) startPeriod(t *testing.T) cycleView {
	t.Helper()
	response := env.do(t, http.MethodPost, "/api/cycles/start", nil, nil)
	if response.status != fiber.StatusCreated {
		t.Fatalf("expected 201 from start, got %d: %s", response.status, response.body)
	}
	created := cycleView{}
	response.decode(t, &created)
	return created
}

func (env *testApp) seed(t *testing.T, records ...models.CycleRecord) {
	t.Helper()
	if err := env.cycles.ReplaceAll(context.Background(), records); err != nil {
		t.Fatalf("seed cycles: %v", err)
	}
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := models.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func closedCycle(t *testing.T, id string, start string, end string) models.CycleRecord {
	t.Helper()
	endDay := mustDay(t, end)
	return models.CycleRecord{ID: id, StartDate: mustDay(t, start), EndDate: &endDay}
}

func authCookieHeader(t *testing.T, cookies []*http.Cookie) string {
	t.Helper()
	for _, cookie := range cookies {
		if cookie.Name == authCookieName && strings.TrimSpace(cookie.Value) != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatalf("auth cookie missing in %#v", cookies)
	return ""
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
