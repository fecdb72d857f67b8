package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/projection"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/fekuna/omnipos-booth-service/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	store    state.Provider
	settings projection.Settings
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewDashboardHandler(store state.Provider, settings projection.Settings, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{
		store:    store,
		settings: settings,
		logger:   log,
		now:      time.Now,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
}

// Dashboard always answers from the current snapshot, even a stale one.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	snap := h.store.Current()
	dash := projection.Compute(snap, h.now(), h.settings)

	h.logger.Debug("dashboard computed",
		zap.Uint64("snapshot_version", snap.Version),
		zap.String("gross", dash.Gross.StringFixed(2)),
	)
	response.Success(c, http.StatusOK, dash)
}
