package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/boutique/internal/domain/models"
	"github.com/mamadbah2/boutique/internal/service/pnl"
	"github.com/mamadbah2/boutique/internal/service/whatsapp"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PNLService produces profit and loss reports.
type PNLService interface {
	Report(ctx context.Context) (models.PNLReport, error)
	ReportBetween(ctx context.Context, startDate, endDate string) (models.PNLReport, error)
}

type pnlResponse struct {
	models.PNLReport
	TotalCost    float64 `json:"totalCost"`
	TotalSelling float64 `json:"totalSelling"`
}

// PNLHandler serves the profit and loss report, its spreadsheet export and the
// WhatsApp share action.
type PNLHandler struct {
	svc       PNLService
	messenger whatsapp.MessagingService
	logger    *zap.Logger
}

// NewPNLHandler constructs the handler. messenger may be nil, in which case
// sharing answers 503.
func NewPNLHandler(svc PNLService, messenger whatsapp.MessagingService, logger *zap.Logger) *PNLHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PNLHandler{svc: svc, messenger: messenger, logger: logger}
}

// Report returns all orders, or only those between start and end when either
// query parameter is present.
func (h *PNLHandler) Report(c *gin.Context) {
	report, err := h.report(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	cost, selling := report.Totals()
	c.JSON(http.StatusOK, pnlResponse{PNLReport: report, TotalCost: cost, TotalSelling: selling})
}

// Export streams the report as an XLSX workbook.
func (h *PNLHandler) Export(c *gin.Context) {
	report, err := h.report(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := pnl.WriteXLSX(&buf, report); err != nil {
		respondError(c, h.logger, fmt.Errorf("render pnl workbook: %w", err))
		return
	}

	filename := "pnl.xlsx"
	if report.Filtered() {
		filename = fmt.Sprintf("pnl_%s_%s.xlsx", report.Start, report.End)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Share sends the report digest to a WhatsApp recipient.
func (h *PNLHandler) Share(c *gin.Context) {
	if h.messenger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "whatsapp is not configured"})
		return
	}

	var req models.ShareReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}

	report, err := h.report(c.Request.Context(), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := models.OutboundMessageRequest{To: req.To, Message: pnl.Digest(report)}
	if err := h.messenger.SendOutbound(c.Request.Context(), out); err != nil {
		h.logger.Error("failed sending pnl digest", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}

func (h *PNLHandler) report(ctx context.Context, start, end string) (models.PNLReport, error) {
	if start == "" && end == "" {
		return h.svc.Report(ctx)
	}
	return h.svc.ReportBetween(ctx, start, end)
}
