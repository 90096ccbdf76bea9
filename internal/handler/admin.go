package handler

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"pantrypal-api/internal/repository"
	"pantrypal-api/internal/service"
	"pantrypal-api/pkg/apierror"
	"pantrypal-api/pkg/response"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	pantryRepo     repository.PantryRepository // Interface instead of concrete type
	scanLogRepo    repository.ScanLogRepository
	purgeScheduler *service.PurgeScheduler
	dbType         string // Database type: sqlite, postgres, mongodb
	startTime      time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	pantryRepo repository.PantryRepository,
	scanLogRepo repository.ScanLogRepository,
	purgeScheduler *service.PurgeScheduler,
	dbType string,
) *AdminHandler {
	return &AdminHandler{
		pantryRepo:     pantryRepo,
		scanLogRepo:    scanLogRepo,
		purgeScheduler: purgeScheduler,
		dbType:         dbType,
		startTime:      time.Now(),
	}
}

// GetStats handles GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := make(map[string]interface{})

	// System info
	stats["uptime_seconds"] = int64(time.Since(h.startTime).Seconds())
	stats["uptime_human"] = time.Since(h.startTime).Round(time.Second).String()
	stats["server_time"] = time.Now().Format(time.RFC3339)
	stats["db_type"] = h.dbType // sqlite, postgres, or mongodb

	// Memory stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	stats["memory"] = map[string]interface{}{
		"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
		"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
		"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
		"heap_alloc_mb":  float64(memStats.HeapAlloc) / 1024 / 1024,
		"heap_inuse_mb":  float64(memStats.HeapInuse) / 1024 / 1024,
		"num_gc":         memStats.NumGC,
		"goroutines":     runtime.NumGoroutine(),
	}

	// Pantry database stats
	if h.pantryRepo != nil {
		dbStats, err := h.pantryRepo.Stats(ctx)
		if err == nil {
			stats["pantry_db"] = dbStats
		} else {
			stats["pantry_db"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		}
	} else {
		stats["pantry_db"] = map[string]interface{}{
			"status": "not_configured",
		}
	}

	response.OK(w, stats)
}

// GetScanLogs handles GET /api/v1/admin/scan-logs with pagination.
func (h *AdminHandler) GetScanLogs(w http.ResponseWriter, r *http.Request) {
	if h.scanLogRepo == nil {
		response.Error(w, apierror.ServiceUnavailable("scan logging is not configured"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	logs, total, err := h.scanLogRepo.GetScanLogs(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, apierror.InternalError("Failed to fetch scan logs"))
		return
	}

	response.JSONWithMeta(w, http.StatusOK, logs, page, limit, total)
}

// RunPurge handles POST /api/v1/admin/purge, forcing an immediate sweep
// of long-expired items.
func (h *AdminHandler) RunPurge(w http.ResponseWriter, r *http.Request) {
	if h.purgeScheduler == nil {
		response.Error(w, apierror.ServiceUnavailable("purge scheduler is not configured"))
		return
	}

	purged, err := h.purgeScheduler.RunNow()
	if err != nil {
		response.Error(w, apierror.InternalError("purge failed: "+err.Error()))
		return
	}

	response.OK(w, map[string]interface{}{
		"status": "completed",
		"purged": purged,
	})
}
