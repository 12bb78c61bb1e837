package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
	"net/http"
	"notifwhitelist/internal/app/domain/changelog"
	"runtime"
	"time"
)

type StatusResponse struct {
	Version       string  `json:"version"`
	Uptime        string  `json:"uptime"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryMB      uint64  `json:"memoryMB"`
	HostConnected bool    `json:"hostConnected"`
}

func (h *Handlers) GetStatus(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := StatusResponse{
		Version:       changelog.Version,
		Uptime:        time.Since(h.started).Truncate(time.Second).String(),
		MemoryMB:      m.Sys / 1024 / 1024,
		HostConnected: h.host.Connected(),
	}
	if percent, err := cpu.Percent(0, false); err == nil && len(percent) > 0 {
		resp.CPUPercent = percent[0]
	}

	c.JSON(http.StatusOK, resp)
}

// GetChangelog answers 204 when there is nothing new since the last version.
func (h *Handlers) GetChangelog(c *gin.Context) {
	notes := h.plugin.Changelog()
	if notes == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, notes)
}
