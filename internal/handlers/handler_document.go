package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/juud-8/ContractorPro02-sub000/internal/middleware"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils"
)

// documentHandler serves invoices and quotes. The kind is fixed per route group.
type documentHandler struct {
	kind            domain.DocumentKind
	documentService portssvc.DocumentSvcFacade
	posthogClient   *utils.PosthogClientWrapper
}

func newDocumentHandler(kind domain.DocumentKind, ds portssvc.DocumentSvcFacade, ph *utils.PosthogClientWrapper) *documentHandler {
	return &documentHandler{kind: kind, documentService: ds, posthogClient: ph}
}

// RegisterInvoiceRoutes registers /invoices and returns the group so payment routes can nest under it.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, posthogClient *utils.PosthogClientWrapper) *gin.RouterGroup {
	h := newDocumentHandler(domain.KindInvoice, documentService, posthogClient)
	invoices := rg.Group("/invoices")
	h.register(invoices)
	return invoices
}

// RegisterQuoteRoutes registers /quotes, including conversion into an invoice.
func RegisterQuoteRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newDocumentHandler(domain.KindQuote, documentService, posthogClient)
	quotes := rg.Group("/quotes")
	h.register(quotes)
	quotes.POST("/:id/convert", h.convertQuote)
}

func (h *documentHandler) register(g *gin.RouterGroup) {
	g.POST("", h.createDocument)
	g.GET("", h.listDocuments)
	g.GET("/:id", h.getDocument)
	g.PATCH("/:id", h.updateDocument)
	g.DELETE("/:id", h.deleteDocument)
	g.PUT("/:id/line-items", h.updateLineItems)
	g.POST("/:id/status", h.transitionStatus)
}

// createDocument godoc
// @Summary Create an invoice or quote
// @Description Creates a draft document, computes its totals and assigns the next number.
// @Tags invoices,quotes
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to create document"
// @Router /invoices [post]
// @Router /quotes [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), h.kind, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create "+string(h.kind))
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, string(h.kind)+"_created", map[string]any{
		"number":     doc.Number,
		"line_items": len(doc.LineItems),
		"total":      doc.Total.StringFixed(2),
	})
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// listDocuments godoc
// @Summary List invoices or quotes
// @Description Retrieves documents newest first, optionally filtered by status and customer.
// @Tags invoices,quotes
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token from a previous page"
// @Param   status query string false "Status filter"
// @Param   customerID query int false "Customer filter"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Router /invoices [get]
// @Router /quotes [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListDocuments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.documentService.ListDocuments(c.Request.Context(), h.kind, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list "+string(h.kind)+"s")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDocument godoc
// @Summary Get an invoice or quote by ID
// @Tags invoices,quotes
// @Produce  json
// @Param   id path int true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid document ID"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to retrieve document"
// @Router /invoices/{id} [get]
// @Router /quotes/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	documentID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), h.kind, documentID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve "+string(h.kind))
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateDocument godoc
// @Summary Update document metadata
// @Description Partial update of customer, dates, notes, terms and tax rate. Totals are recomputed.
// @Tags invoices,quotes
// @Accept  json
// @Produce  json
// @Param   id path int true "Document ID"
// @Param   document body dto.UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} map[string]string "Document can no longer be edited"
// @Failure 500 {object} map[string]string "Failed to update document"
// @Router /invoices/{id} [patch]
// @Router /quotes/{id} [patch]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	documentID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), h.kind, documentID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update "+string(h.kind))
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// updateLineItems godoc
// @Summary Replace line items
// @Description Replaces every line item of a draft or open document and recomputes totals.
// @Tags invoices,quotes
// @Accept  json
// @Produce  json
// @Param   id path int true "Document ID"
// @Param   lineItems body dto.UpdateLineItemsRequest true "New line items"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} map[string]string "Document can no longer be edited"
// @Failure 500 {object} map[string]string "Failed to update line items"
// @Router /invoices/{id}/line-items [put]
// @Router /quotes/{id}/line-items [put]
func (h *documentHandler) updateLineItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	documentID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.UpdateLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLineItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.UpdateLineItems(c.Request.Context(), h.kind, documentID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to update line items")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// transitionStatus godoc
// @Summary Change document status
// @Description Moves a document along its lifecycle. Invalid edges answer 422.
// @Tags invoices,quotes
// @Accept  json
// @Produce  json
// @Param   id path int true "Document ID"
// @Param   transition body dto.TransitionStatusRequest true "Target status"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to change status"
// @Router /invoices/{id}/status [post]
// @Router /quotes/{id}/status [post]
func (h *documentHandler) transitionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	documentID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.TransitionStatus(c.Request.Context(), h.kind, documentID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to change status")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, string(h.kind)+"_status_changed", map[string]any{
		"number": doc.Number,
		"status": string(doc.Status),
	})
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}

// deleteDocument godoc
// @Summary Delete an invoice or quote
// @Description Removes a document in any state together with its line items and payments.
// @Tags invoices,quotes
// @Param   id path int true "Document ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 500 {object} map[string]string "Failed to delete document"
// @Router /invoices/{id} [delete]
// @Router /quotes/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("kind", string(h.kind)))
	documentID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), h.kind, documentID); err != nil {
		respondError(c, logger, err, "Failed to delete "+string(h.kind))
		return
	}
	c.Status(http.StatusNoContent)
}

// convertQuote godoc
// @Summary Convert an accepted quote into an invoice
// @Description Creates a draft invoice carrying the quote's line items and tax rate. A quote converts once.
// @Tags quotes
// @Produce  json
// @Param   id path int true "Quote ID"
// @Success 201 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Quote not found"
// @Failure 409 {object} map[string]string "Quote already converted"
// @Failure 422 {object} map[string]string "Quote is not accepted"
// @Failure 500 {object} map[string]string "Failed to convert quote"
// @Router /quotes/{id}/convert [post]
func (h *documentHandler) convertQuote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	quoteID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	invoice, err := h.documentService.ConvertQuoteToInvoice(c.Request.Context(), quoteID)
	if err != nil {
		respondError(c, logger, err, "Failed to convert quote")
		return
	}

	middleware.PosthogEvent(c, h.posthogClient, "quote_converted", map[string]any{
		"quote_id":       quoteID,
		"invoice_number": invoice.Number,
	})
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(invoice))
}
