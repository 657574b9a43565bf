package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/middleware"
)

// RegisterMaintenanceRoutes registers operator endpoints.
func RegisterMaintenanceRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentLifecycleSvc) {
	maintenance := rg.Group("/maintenance")
	maintenance.POST("/sweep", func(c *gin.Context) { runSweep(c, documentService) })
}

// runSweep godoc
// @Summary Run the overdue and expiry sweep
// @Description Marks sent invoices past their due date overdue and sent quotes past their validity expired.
// @Tags maintenance
// @Produce  json
// @Success 200 {object} dto.SweepResponse
// @Failure 500 {object} map[string]string "Sweep failed"
// @Router /maintenance/sweep [post]
func runSweep(c *gin.Context, documentService portssvc.DocumentLifecycleSvc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	resp, err := documentService.SweepExpired(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, logger, err, "Sweep failed")
		return
	}
	logger.Info("Sweep finished", slog.Int("overdue", resp.Overdue), slog.Int("expired", resp.Expired))
	c.JSON(http.StatusOK, resp)
}
