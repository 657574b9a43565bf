package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/juud-8/ContractorPro02-sub000/internal/middleware"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils"
)

// paymentHandler handles payments recorded against invoices and gateway webhooks.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
	posthogClient  *utils.PosthogClientWrapper
	now            func() time.Time
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade, ph *utils.PosthogClientWrapper) *paymentHandler {
	return &paymentHandler{paymentService: ps, posthogClient: ph, now: time.Now}
}

// RegisterPaymentRoutes registers /:id/payments under the invoices group.
func RegisterPaymentRoutes(invoices *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newPaymentHandler(paymentService, posthogClient)
	invoices.POST("/:id/payments", h.recordPayment)
	invoices.GET("/:id/payments", h.listPayments)
}

// RegisterWebhookRoutes registers the payment gateway webhook.
func RegisterWebhookRoutes(rg gin.IRoutes, paymentService portssvc.PaymentSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newPaymentHandler(paymentService, posthogClient)
	rg.POST("/webhooks/payments", h.handleGatewayEvent)
}

// recordPayment godoc
// @Summary Record a payment against an invoice
// @Description Stores a payment and marks the invoice paid once payments cover its total.
// @Description Replaying the same externalReference returns the original payment with 200.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse "Payment recorded"
// @Success 200 {object} dto.RecordPaymentResponse "Payment already recorded"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Invoice does not accept payments"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /invoices/{id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, created, err := h.paymentService.RecordPayment(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		middleware.PosthogEvent(c, h.posthogClient, "payment_recorded", map[string]any{
			"invoice_id": invoiceID,
			"amount":     payment.Amount.StringFixed(2),
			"method":     string(payment.Method),
		})
	}
	c.JSON(status, dto.RecordPaymentResponse{Payment: dto.ToPaymentResponse(payment), Created: created})
}

// listPayments godoc
// @Summary List payments of an invoice
// @Tags payments
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Router /invoices/{id}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, logger, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

// handleGatewayEvent godoc
// @Summary Payment gateway webhook
// @Description Accepts a normalized gateway event. Only succeeded events record a payment;
// @Description redeliveries of the same paymentReference are acknowledged without a second payment.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   event body dto.GatewayEventRequest true "Gateway event"
// @Success 200 {object} dto.GatewayEventResponse
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 422 {object} map[string]string "Invoice does not accept payments"
// @Failure 500 {object} map[string]string "Failed to process event"
// @Router /webhooks/payments [post]
func (h *paymentHandler) handleGatewayEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GatewayEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for gateway event", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("payment_reference", req.PaymentReference), slog.Int64("invoice_id", req.InvoiceID))
	payment, err := h.paymentService.HandleGatewayEvent(c.Request.Context(), dto.ToGatewayEvent(req, h.now().UTC()))
	if err != nil {
		respondError(c, logger, err, "Failed to process gateway event")
		return
	}
	if payment == nil {
		logger.Info("Gateway event acknowledged without payment", slog.String("status", req.Status))
		c.JSON(http.StatusOK, dto.GatewayEventResponse{Recorded: false})
		return
	}

	resp := dto.ToPaymentResponse(payment)
	c.JSON(http.StatusOK, dto.GatewayEventResponse{Recorded: true, Payment: &resp})
}
