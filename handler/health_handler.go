package handler

import (
	"context"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	mongoClient *mongo.Client
	startedAt   time.Time
}

func NewHealthHandler(mongoClient *mongo.Client) *HealthHandler {
	return &HealthHandler{
		mongoClient: mongoClient,
		startedAt:   time.Now(),
	}
}

// Health reports process uptime, host load and store reachability. A failing
// store ping degrades the report to 503.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"

	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	mongoStatus := "ok"
	if err := h.mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		mongoStatus = "unreachable"
		status = "degraded"
	}

	system := gin.H{}
	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		system["cpu_percent"] = percentages[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		system["memory_percent"] = vm.UsedPercent
	}

	report := gin.H{
		"status":         status,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"mongo":          mongoStatus,
		"system":         system,
	}

	if status != "ok" {
		utils.TrackError("health", "store_unreachable")
		c.JSON(503, report)
		return
	}
	c.JSON(200, report)
}
