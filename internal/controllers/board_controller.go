package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"welfared/internal/providers"
	"welfared/internal/services"
	"welfared/internal/structures"
)

// BoardController serves the live board and read-only JSON projections
// of the roster. It never mutates state; check-ins only enter through
// the file pipeline.
type BoardController struct {
	logger  providers.Logger
	service services.AggregatorServiceInterface
	cache   providers.CacheProviderInterface
	conf    *structures.Config
}

func NewBoardController(logger providers.Logger, service services.AggregatorServiceInterface, cache providers.CacheProviderInterface, conf *structures.Config) *BoardController {
	return &BoardController{
		logger:  logger,
		service: service,
		cache:   cache,
		conf:    conf,
	}
}

func (bc *BoardController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := bc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	bc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetSummary lists every held window with counts and callsigns.
func (bc *BoardController) GetSummary(w http.ResponseWriter, r *http.Request) {
	bc.serveFromCacheOrCompute(w, "summary", func() (any, error) {
		return bc.service.Summary(), nil
	})
}

// GetCurrentWindow reports the active window, or JSON null outside
// operating hours. That is a normal outcome, not an error.
func (bc *BoardController) GetCurrentWindow(w http.ResponseWriter, r *http.Request) {
	win := bc.service.CurrentWindow(time.Now())
	gson, err := json.Marshal(win)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetCheckins returns the records for ?w=<window key>, defaulting to
// the active window.
func (bc *BoardController) GetCheckins(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("w")
	if key == "" {
		win := bc.service.CurrentWindow(time.Now())
		if win == nil {
			http.Error(w, "No active time window", http.StatusNotFound)
			return
		}
		key = win.Key
	}
	bc.serveFromCacheOrCompute(w, "checkins:"+key, func() (any, error) {
		return bc.service.WindowCheckins(key), nil
	})
}

// GetStatusCounts returns the per-status tally for ?w=<window key>.
func (bc *BoardController) GetStatusCounts(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("w")
	bc.serveFromCacheOrCompute(w, "status:"+key, func() (any, error) {
		return bc.service.StatusCounts(key), nil
	})
}

// GetBoard serves the rolling HTML artifact so the dashboard is
// reachable without a separate file server.
func (bc *BoardController) GetBoard(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(bc.conf.Output.Dir, "welfare_board.html")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "No welfare board generated yet", http.StatusNotFound)
			return
		}
		bc.logger.Errorf(providers.TypeWeb, "Reading board file: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
