package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatusHandler reports process uptime and host utilization.
type StatusHandler struct {
	startedAt time.Time
}

// NewStatusHandler creates a StatusHandler anchored at process start.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{startedAt: time.Now()}
}

// Get returns uptime plus host memory and CPU usage.
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memoryUsedPercent"] = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("Failed to read host memory stats")
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpuUsedPercent"] = percents[0]
	} else if err != nil {
		log.Warn().Err(err).Msg("Failed to read host CPU stats")
	}

	respondJSON(w, http.StatusOK, status)
}
