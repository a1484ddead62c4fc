package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfared/internal/models"
	"welfared/internal/providers"
	"welfared/internal/structures"
)

// --- local mocks (scoped to controller tests) ---

type mockLogger struct{}

func (m *mockLogger) Errorf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Warnf(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Debugf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Infof(_ providers.TypeEnum, _ string, _ ...interface{})  {}
func (m *mockLogger) Fatalf(_ providers.TypeEnum, _ string, _ ...interface{}) {}
func (m *mockLogger) Close()                                                  {}

type mockService struct {
	activeWindow *models.WindowInstance
	checkinData  map[string][]*models.CheckinRecord
	statusData   map[string]int
	summaries    []models.WindowSummary
	windowKeys   []string
	windowCounts map[string]int
}

func (m *mockService) CurrentWindow(_ time.Time) *models.WindowInstance { return m.activeWindow }
func (m *mockService) AddCheckin(_ *models.CheckinRecord, _ time.Time) (bool, string, *models.WindowInstance) {
	return false, "", nil
}
func (m *mockService) WindowCheckins(key string) []*models.CheckinRecord { return m.checkinData[key] }
func (m *mockService) WindowCount(key string) int                        { return m.windowCounts[key] }
func (m *mockService) WindowInfo(_ string) (*models.WindowInstance, bool) {
	return nil, false
}
func (m *mockService) StatusCounts(_ string) map[string]int { return m.statusData }
func (m *mockService) WindowKeys() []string                 { return m.windowKeys }
func (m *mockService) Summary() []models.WindowSummary      { return m.summaries }
func (m *mockService) ClearWindow(_ string)                 {}
func (m *mockService) ClearAll()                            {}
func (m *mockService) GetSnapshot() models.SnapshotState    { return nil }
func (m *mockService) PutSnapshot(_ models.SnapshotState)   {}

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache                     { return &mockCache{data: make(map[string][]byte)} }
func (m *mockCache) Get(key string) ([]byte, bool) { v, ok := m.data[key]; return v, ok }
func (m *mockCache) Set(key string, value []byte)  { m.data[key] = value }

// --- helpers ---

func newTestController(svc *mockService, cache *mockCache, outputDir string) *BoardController {
	conf := &structures.Config{
		Output: structures.OutputConfig{Dir: outputDir},
	}
	return NewBoardController(&mockLogger{}, svc, cache, conf)
}

func eveningInstance() *models.WindowInstance {
	return &models.WindowInstance{
		Name:  "Evening Net",
		Start: "19:00",
		End:   "21:00",
		Date:  "2024-12-16",
		Key:   "2024-12-16_1900-2100",
	}
}

// --- GetSummary tests ---

func TestGetSummary_ReturnsJSON(t *testing.T) {
	svc := &mockService{
		summaries: []models.WindowSummary{
			{WindowKey: "2024-12-16_1900-2100", Date: "2024-12-16", TotalCheckins: 3},
		},
	}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr := httptest.NewRecorder()

	bc.GetSummary(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var result []models.WindowSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "2024-12-16_1900-2100", result[0].WindowKey)
	assert.Equal(t, 3, result[0].TotalCheckins)
}

func TestGetSummary_Empty(t *testing.T) {
	svc := &mockService{}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr := httptest.NewRecorder()

	bc.GetSummary(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))
}

// --- GetCurrentWindow tests ---

func TestGetCurrentWindow_Active(t *testing.T) {
	svc := &mockService{activeWindow: eveningInstance()}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/window", nil)
	rr := httptest.NewRecorder()

	bc.GetCurrentWindow(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var result models.WindowInstance
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "Evening Net", result.Name)
	assert.Equal(t, "2024-12-16_1900-2100", result.Key)
}

func TestGetCurrentWindow_NoneIsNull(t *testing.T) {
	svc := &mockService{}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/window", nil)
	rr := httptest.NewRecorder()

	bc.GetCurrentWindow(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))
}

// --- GetCheckins tests ---

func TestGetCheckins_ExplicitWindow(t *testing.T) {
	svc := &mockService{
		checkinData: map[string][]*models.CheckinRecord{
			"2024-12-16_1900-2100": {
				{Callsign: "KA1ABC", Status: "SAFE"},
			},
		},
	}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/checkins?w=2024-12-16_1900-2100", nil)
	rr := httptest.NewRecorder()

	bc.GetCheckins(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var result []*models.CheckinRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "KA1ABC", result[0].Callsign)
}

func TestGetCheckins_DefaultsToActiveWindow(t *testing.T) {
	svc := &mockService{
		activeWindow: eveningInstance(),
		checkinData: map[string][]*models.CheckinRecord{
			"2024-12-16_1900-2100": {
				{Callsign: "W1XYZ", Status: "NEED ASSISTANCE"},
			},
		},
	}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	rr := httptest.NewRecorder()

	bc.GetCheckins(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var result []*models.CheckinRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "W1XYZ", result[0].Callsign)
}

func TestGetCheckins_NoActiveWindow(t *testing.T) {
	svc := &mockService{}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/checkins", nil)
	rr := httptest.NewRecorder()

	bc.GetCheckins(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "No active time window")
}

// --- GetStatusCounts tests ---

func TestGetStatusCounts_ReturnsJSON(t *testing.T) {
	svc := &mockService{
		statusData: map[string]int{"SAFE": 2, "NEED ASSISTANCE": 1},
	}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/statuses?w=2024-12-16_1900-2100", nil)
	rr := httptest.NewRecorder()

	bc.GetStatusCounts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var result map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 2, result["SAFE"])
	assert.Equal(t, 1, result["NEED ASSISTANCE"])
}

// --- GetBoard tests ---

func TestGetBoard_ServesHTML(t *testing.T) {
	dir := t.TempDir()
	html := "<html><body>WELFARE CHECK-IN BOARD</body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "welfare_board.html"), []byte(html), 0644))

	bc := newTestController(&mockService{}, newMockCache(), dir)

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	rr := httptest.NewRecorder()

	bc.GetBoard(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, html, rr.Body.String())
}

func TestGetBoard_NotGeneratedYet(t *testing.T) {
	bc := newTestController(&mockService{}, newMockCache(), t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	rr := httptest.NewRecorder()

	bc.GetBoard(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "No welfare board generated yet")
}

// --- Cache behavior tests ---

func TestCacheHit_ServiceNotCalled(t *testing.T) {
	cache := newMockCache()
	cachedData, _ := json.Marshal([]models.WindowSummary{{WindowKey: "cached"}})
	cache.Set("summary", cachedData)

	svc := &mockService{
		summaries: []models.WindowSummary{{WindowKey: "fresh"}},
	}
	bc := newTestController(svc, cache, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr := httptest.NewRecorder()

	bc.GetSummary(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, string(cachedData), rr.Body.String())
}

func TestCacheMiss_SavesResult(t *testing.T) {
	cache := newMockCache()
	svc := &mockService{
		summaries: []models.WindowSummary{{WindowKey: "2024-12-16_1900-2100"}},
	}
	bc := newTestController(svc, cache, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	rr := httptest.NewRecorder()

	bc.GetSummary(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	val, ok := cache.Get("summary")
	assert.True(t, ok)
	assert.NotEmpty(t, val)
}

func TestCacheKey_CheckinsIncludesWindow(t *testing.T) {
	cache := newMockCache()
	svc := &mockService{
		checkinData: map[string][]*models.CheckinRecord{
			"2024-12-16_1900-2100": {{Callsign: "KA1ABC"}},
		},
	}
	bc := newTestController(svc, cache, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/checkins?w=2024-12-16_1900-2100", nil)
	rr := httptest.NewRecorder()

	bc.GetCheckins(rr, req)

	_, ok := cache.Get("checkins:2024-12-16_1900-2100")
	assert.True(t, ok)
}

func TestCacheKey_StatusesIncludesWindow(t *testing.T) {
	cache := newMockCache()
	svc := &mockService{statusData: map[string]int{"SAFE": 1}}
	bc := newTestController(svc, cache, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/statuses?w=2024-12-16_1900-2100", nil)
	rr := httptest.NewRecorder()

	bc.GetStatusCounts(rr, req)

	_, ok := cache.Get("status:2024-12-16_1900-2100")
	assert.True(t, ok)
}

// --- Content-Type tests ---

func TestContentType_AllJSONEndpoints(t *testing.T) {
	svc := &mockService{
		activeWindow: eveningInstance(),
		checkinData:  map[string][]*models.CheckinRecord{},
		statusData:   map[string]int{},
	}
	bc := newTestController(svc, newMockCache(), t.TempDir())

	endpoints := []struct {
		path    string
		handler func(http.ResponseWriter, *http.Request)
	}{
		{"/summary", bc.GetSummary},
		{"/window", bc.GetCurrentWindow},
		{"/checkins", bc.GetCheckins},
		{"/statuses", bc.GetStatusCounts},
	}

	for _, ep := range endpoints {
		t.Run(ep.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, ep.path, nil)
			rr := httptest.NewRecorder()
			ep.handler(rr, req)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}
