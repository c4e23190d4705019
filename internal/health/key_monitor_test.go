package health_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leohubert/go-omdb/internal/health"
	"github.com/leohubert/go-omdb/pkg/omdb"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type upstream struct {
	status atomic.Int32
	hits   atomic.Int32
	srv    *httptest.Server
}

func newUpstream(t *testing.T, status int) *upstream {
	t.Helper()
	u := &upstream{}
	u.status.Store(int32(status))
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		code := int(u.status.Load())
		w.WriteHeader(code)
		if code == http.StatusOK {
			_, _ = w.Write([]byte(`{"Title":"The Shawshank Redemption","Response":"True"}`))
			return
		}
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) client(t *testing.T) *omdb.Client {
	t.Helper()
	client, err := omdb.NewClient(omdb.Options{APIKey: "key", BaseURL: u.srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestKeyMonitorReportsValidKey(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusOK)
	core, logs := observer.New(zap.InfoLevel)
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{Logger: zap.New(core), Client: up.client(t)})

	monitor.Start(context.Background())
	defer monitor.Stop()

	status := monitor.GetStatus()
	if !status.Valid || !status.Reachable || status.LastError != "" || status.LastChecked.IsZero() {
		t.Fatalf("unexpected status %+v", status)
	}
	if !monitor.IsHealthy() {
		t.Fatal("expected healthy monitor")
	}
	if logs.FilterMessage("api key check passed").Len() != 1 {
		t.Fatal("expected a pass log line")
	}
}

func TestKeyMonitorReportsRejectedKey(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusUnauthorized)
	var callbacks atomic.Int32
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{
		Client:       up.client(t),
		OnInvalidKey: func(error) { callbacks.Add(1) },
	})

	monitor.Start(context.Background())
	defer monitor.Stop()

	status := monitor.GetStatus()
	if status.Valid {
		t.Fatal("expected invalid status")
	}
	if status.UpstreamStatus != http.StatusUnauthorized || !status.Reachable {
		t.Fatalf("expected a reachable upstream answering 401, got %+v", status)
	}
	if callbacks.Load() != 1 {
		t.Fatalf("expected one callback, got %d", callbacks.Load())
	}
}

func TestKeyMonitorTreatsForbiddenAsRejected(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusForbidden)
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{Client: up.client(t)})

	monitor.Start(context.Background())
	defer monitor.Stop()

	if status := monitor.GetStatus(); status.Valid || !status.Reachable {
		t.Fatalf("expected a rejected key, got %+v", status)
	}
}

func TestKeyMonitorUnreachableUpstreamKeepsKeyValid(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/"
	srv.Close()

	client, err := omdb.NewClient(omdb.Options{APIKey: "key", BaseURL: baseURL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	var callbacks atomic.Int32
	core, logs := observer.New(zap.InfoLevel)
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{
		Logger:       zap.New(core),
		Client:       client,
		OnInvalidKey: func(error) { callbacks.Add(1) },
	})

	monitor.Start(context.Background())
	defer monitor.Stop()

	status := monitor.GetStatus()
	if !status.Valid || status.Reachable || status.LastError == "" {
		t.Fatalf("expected a valid but unreachable status, got %+v", status)
	}
	if callbacks.Load() != 0 {
		t.Fatalf("transport failure must not report an invalid key, got %d callbacks", callbacks.Load())
	}
	if logs.FilterMessage("api key rejected").Len() != 0 {
		t.Fatal("transport failure logged as a rejected key")
	}

	handler := health.NewHandler(monitor, "go-omdb")
	rec := httptest.NewRecorder()
	handler.HandleKeyHealth(rec, httptest.NewRequest(http.MethodGet, "/health/key", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while the key is not rejected, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.HandleDetailedHealth(rec, httptest.NewRequest(http.MethodGet, "/health/details", nil))
	var details map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&details); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || details["status"] != "degraded" {
		t.Fatalf("unexpected details %d %v", rec.Code, details)
	}
}

func TestKeyMonitorServerErrorAfterValidKey(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusOK)
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{Client: up.client(t), CheckInterval: 10 * time.Millisecond})

	monitor.Start(context.Background())
	defer monitor.Stop()
	up.status.Store(http.StatusServiceUnavailable)

	deadline := time.Now().Add(2 * time.Second)
	for monitor.GetStatus().Reachable {
		if time.Now().After(deadline) {
			t.Fatal("monitor never saw the upstream failure")
		}
		time.Sleep(5 * time.Millisecond)
	}

	status := monitor.GetStatus()
	if !status.Valid || status.UpstreamStatus != http.StatusServiceUnavailable {
		t.Fatalf("expected the key to stay valid, got %+v", status)
	}
}

func TestKeyMonitorChecksPeriodically(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusUnauthorized)
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{Client: up.client(t), CheckInterval: 10 * time.Millisecond})

	monitor.Start(context.Background())
	up.status.Store(http.StatusOK)

	deadline := time.Now().Add(2 * time.Second)
	for !monitor.IsHealthy() {
		if time.Now().After(deadline) {
			t.Fatal("monitor never recovered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	monitor.Stop()

	hits := up.hits.Load()
	time.Sleep(30 * time.Millisecond)
	if up.hits.Load() != hits {
		t.Fatal("monitor kept checking after Stop")
	}
}

func TestKeyMonitorStopWithoutStart(t *testing.T) {
	t.Parallel()

	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{})
	monitor.Stop()
	monitor.Stop()
}

func TestHandlerKeyHealth(t *testing.T) {
	t.Parallel()

	up := newUpstream(t, http.StatusUnauthorized)
	monitor := health.NewKeyMonitor(health.KeyMonitorOptions{Client: up.client(t)})
	monitor.Start(context.Background())
	defer monitor.Stop()

	handler := health.NewHandler(monitor, "go-omdb")

	rec := httptest.NewRecorder()
	handler.HandleKeyHealth(rec, httptest.NewRequest(http.MethodGet, "/health/key", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var status health.KeyStatus
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Valid || status.UpstreamStatus != http.StatusUnauthorized {
		t.Fatalf("unexpected status %+v", status)
	}

	rec = httptest.NewRecorder()
	handler.HandleDetailedHealth(rec, httptest.NewRequest(http.MethodGet, "/health/details", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var details map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&details); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if details["status"] != "degraded" || details["service"] != "go-omdb" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestHandlerWithoutMonitor(t *testing.T) {
	t.Parallel()

	handler := health.NewHandler(nil, "go-omdb")

	rec := httptest.NewRecorder()
	handler.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.HandleKeyHealth(rec, httptest.NewRequest(http.MethodGet, "/health/key", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.HandleDetailedHealth(rec, httptest.NewRequest(http.MethodGet, "/health/details", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
