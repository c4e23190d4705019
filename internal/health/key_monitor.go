package health

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leohubert/go-omdb/pkg/omdb"
	"go.uber.org/zap"
)

// DefaultProbeID is a title that always exists upstream.
const DefaultProbeID = "tt0111161"

// KeyStatus represents the health of the configured OMDb API key. Valid only
// turns false when OMDb rejects the key; a check that never got an answer
// about the key clears Reachable and keeps the previous Valid.
type KeyStatus struct {
	Valid          bool      `json:"valid"`
	Reachable      bool      `json:"reachable"`
	LastChecked    time.Time `json:"last_checked"`
	LastError      string    `json:"last_error,omitempty"`
	UpstreamStatus int       `json:"upstream_status,omitempty"`
}

type KeyMonitorOptions struct {
	Logger        *zap.Logger
	Client        *omdb.Client
	CheckInterval time.Duration
	ProbeID       string
	// OnInvalidKey is called after every check where OMDb rejected the key.
	OnInvalidKey func(error)
}

// KeyMonitor periodically looks up a known title to verify the API key
type KeyMonitor struct {
	KeyMonitorOptions

	status   KeyStatus
	checked  bool
	statusMu sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewKeyMonitor(opts KeyMonitorOptions) *KeyMonitor {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ProbeID == "" {
		opts.ProbeID = DefaultProbeID
	}
	return &KeyMonitor{
		KeyMonitorOptions: opts,
		stopChan:          make(chan struct{}),
		done:              make(chan struct{}),
	}
}

// Start runs a first check synchronously, then keeps checking every
// CheckInterval until ctx is done or Stop is called. A non-positive interval
// only runs the first check.
func (m *KeyMonitor) Start(ctx context.Context) {
	if !m.started.CompareAndSwap(false, true) {
		return
	}
	m.Logger.Info("starting api key monitor", zap.Duration("interval", m.CheckInterval))

	m.check(ctx)

	if m.CheckInterval <= 0 {
		close(m.done)
		return
	}

	ticker := time.NewTicker(m.CheckInterval)
	go func() {
		defer close(m.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.check(ctx)
			case <-ctx.Done():
				m.Logger.Info("api key monitor stopped")
				return
			case <-m.stopChan:
				m.Logger.Info("api key monitor stopped")
				return
			}
		}
	}()
}

// Stop ends the periodic checks and waits for the running one to finish.
func (m *KeyMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
	if m.started.Load() {
		<-m.done
	}
}

func (m *KeyMonitor) check(ctx context.Context) {
	_, err := m.Client.FindByID(ctx, m.ProbeID)
	rejected := isKeyRejection(err)

	m.statusMu.Lock()
	previous := m.status
	first := !m.checked
	m.checked = true
	m.status = KeyStatus{
		Valid:       !rejected && (first || previous.Valid || err == nil),
		Reachable:   err == nil || rejected,
		LastChecked: time.Now(),
	}
	if err != nil {
		m.status.LastError = err.Error()
		var failed *omdb.RequestFailedError
		if errors.As(err, &failed) {
			m.status.UpstreamStatus = failed.StatusCode
		}
	}
	current := m.status
	m.statusMu.Unlock()

	switch {
	case rejected:
		if first || previous.Valid {
			m.Logger.Error("api key rejected", zap.Int("upstream_status", current.UpstreamStatus), zap.Error(err))
		}
		if m.OnInvalidKey != nil {
			m.OnInvalidKey(err)
		}
	case err != nil:
		if first || previous.Reachable {
			m.Logger.Warn("api key check could not reach omdb", zap.Int("upstream_status", current.UpstreamStatus), zap.Error(err))
		}
	case first || !previous.Valid || !previous.Reachable:
		m.Logger.Info("api key check passed")
	}
}

// isKeyRejection reports whether err is OMDb refusing the key, as opposed to
// a failure that says nothing about it (network, timeout, 5xx).
func isKeyRejection(err error) bool {
	var failed *omdb.RequestFailedError
	if !errors.As(err, &failed) {
		return false
	}
	return failed.StatusCode == http.StatusUnauthorized || failed.StatusCode == http.StatusForbidden
}

// GetStatus returns a copy of the latest key status
func (m *KeyMonitor) GetStatus() KeyStatus {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}

func (m *KeyMonitor) IsHealthy() bool {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status.Valid
}
