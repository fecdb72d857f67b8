package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/projection"
	"github.com/fekuna/omnipos-booth-service/internal/state"
	"github.com/fekuna/omnipos-booth-service/internal/state/statetest"
	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, loc)

	snap := state.NewSnapshot(3, now,
		[]model.Product{{ID: 1, Name: "Skol", UnitCost: decimal.NewFromInt(3), SuggestedUnitPrice: decimal.NewFromInt(7)}},
		nil,
		[]model.SaleRecord{{ID: "s1", ProductID: 1, QuantitySold: 2, TotalPrice: decimal.NewFromInt(14), SoldAt: now.Add(-time.Hour)}},
		nil, nil,
	)
	settings := projection.Settings{StartHour: 8, EndHour: 18.5, PartnerCount: 2, GoalPerPartner: decimal.NewFromInt(4000), Location: loc}

	h := NewDashboardHandler(statetest.New(snap), settings, logger.Wrap(zaptest.NewLogger(t)))
	h.now = func() time.Time { return now }

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"success":true`)
	assert.Contains(t, body, `"gross":"14"`)
	assert.Contains(t, body, `"items_sold":2`)
	assert.Contains(t, body, `"elapsed_hours":2`)
}
