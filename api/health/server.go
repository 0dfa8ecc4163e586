package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	gecho.Success(w,
		gecho.WithData(map[string]any{
			"status":         "healthy",
			"uptime_seconds": int64(time.Since(hrm.startTime).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"go_version":     runtime.Version(),
		}),
		gecho.Send(),
	)
}

// GetStorageHealth pings the active storage driver.
func (hrm *HealthRoutesManager) GetStorageHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := hrm.backend.Ping(r.Context()); err != nil {
		hrm.logger.Error("Storage health check failed", gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Storage health check failed"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"status":          "healthy",
			"ping_latency_ms": time.Since(start).Milliseconds(),
		}),
		gecho.Send(),
	)
}
