package testutil

import (
	"sync"
	"time"

	"welfared/internal/models"
	"welfared/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockAggregatorService implements services.AggregatorServiceInterface
// with injectable data and call recording.
type MockAggregatorService struct {
	mu sync.Mutex

	ActiveWindow *models.WindowInstance
	AddResult    AddResult
	AddCalls     []*models.CheckinRecord

	CheckinData map[string][]*models.CheckinRecord
	InfoData    map[string]*models.WindowInstance
	CountData   map[string]map[string]int
	Summaries   []models.WindowSummary

	Snapshot     models.SnapshotState
	PutSnapshots []models.SnapshotState
	ClearedKeys  []string
	ClearAllHits int
}

type AddResult struct {
	Accepted bool
	Message  string
	Window   *models.WindowInstance
}

func (m *MockAggregatorService) CurrentWindow(_ time.Time) *models.WindowInstance {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ActiveWindow
}

func (m *MockAggregatorService) AddCheckin(rec *models.CheckinRecord, _ time.Time) (bool, string, *models.WindowInstance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddCalls = append(m.AddCalls, rec)
	return m.AddResult.Accepted, m.AddResult.Message, m.AddResult.Window
}

func (m *MockAggregatorService) WindowCheckins(key string) []*models.CheckinRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CheckinData != nil {
		return m.CheckinData[key]
	}
	return nil
}

func (m *MockAggregatorService) WindowCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CheckinData != nil {
		return len(m.CheckinData[key])
	}
	return 0
}

func (m *MockAggregatorService) WindowInfo(key string) (*models.WindowInstance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InfoData != nil {
		info, ok := m.InfoData[key]
		return info, ok
	}
	return nil, false
}

func (m *MockAggregatorService) StatusCounts(key string) map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountData != nil {
		return m.CountData[key]
	}
	return map[string]int{}
}

func (m *MockAggregatorService) WindowKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.CheckinData))
	for key := range m.CheckinData {
		keys = append(keys, key)
	}
	return keys
}

func (m *MockAggregatorService) Summary() []models.WindowSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Summaries
}

func (m *MockAggregatorService) ClearWindow(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearedKeys = append(m.ClearedKeys, key)
}

func (m *MockAggregatorService) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearAllHits++
}

func (m *MockAggregatorService) GetSnapshot() models.SnapshotState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Snapshot != nil {
		return m.Snapshot
	}
	return models.SnapshotState{}
}

func (m *MockAggregatorService) PutSnapshot(state models.SnapshotState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutSnapshots = append(m.PutSnapshots, state)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	CheckinOutcomes map[string]int
	WatcherEvents   int
	RenderFormats   map[string]int
	RenderFailures  map[string]int
	RosterSizes     map[string]int
	CacheHits       int
	CacheMisses     int
	PersistCalls    int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		CheckinOutcomes: make(map[string]int),
		RenderFormats:   make(map[string]int),
		RenderFailures:  make(map[string]int),
		RosterSizes:     make(map[string]int),
	}
}

func (m *MockMetrics) IncCheckins(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckinOutcomes[outcome]++
}

func (m *MockMetrics) IncWatcherEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WatcherEvents++
}

func (m *MockMetrics) ObserveRenderDuration(format string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RenderFormats[format]++
}

func (m *MockMetrics) IncRenderFailures(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RenderFailures[format]++
}

func (m *MockMetrics) SetRosterSize(window string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RosterSizes[window] = count
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
}

// Outcomes returns a copy of the checkin outcome counters.
func (m *MockMetrics) Outcomes() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.CheckinOutcomes))
	for k, v := range m.CheckinOutcomes {
		out[k] = v
	}
	return out
}

// MockWatcher implements interfaces.WatcherInterface backed by a plain
// channel the test feeds directly.
type MockWatcher struct {
	Ch       chan string
	Started  bool
	stopOnce sync.Once
}

func NewMockWatcher() *MockWatcher {
	return &MockWatcher{Ch: make(chan string, 16)}
}

func (m *MockWatcher) Start() error {
	m.Started = true
	return nil
}

func (m *MockWatcher) Stop() {
	m.stopOnce.Do(func() { close(m.Ch) })
}

func (m *MockWatcher) Events() <-chan string {
	return m.Ch
}
