package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/despachante/backend/internal/application/finance"
	reportapp "github.com/despachante/backend/internal/application/report"
	"github.com/despachante/backend/internal/domain/report"
)

// ReportPrinter renders the financial reports as PDF documents
type ReportPrinter interface {
	ReceivablesPDF(ctx context.Context, rpt report.ReceivablesReport) ([]byte, error)
	CashFlowPDF(ctx context.Context, rpt report.CashFlowReport, from, to *time.Time) ([]byte, error)
	StatementPDF(ctx context.Context, stmt report.CashStatement, from, to *time.Time) ([]byte, error)
}

// ReportHandler serves the financial reports and the dashboard
type ReportHandler struct {
	BaseHandler
	aggregation     *reportapp.AggregationService
	cashbookService *financeapp.CashbookService
	printer         ReportPrinter
}

// NewReportHandler creates a new ReportHandler. The printer may be nil
// when PDF export is disabled.
func NewReportHandler(
	aggregation *reportapp.AggregationService,
	cashbookService *financeapp.CashbookService,
	printer ReportPrinter,
) *ReportHandler {
	return &ReportHandler{
		aggregation:     aggregation,
		cashbookService: cashbookService,
		printer:         printer,
	}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)

	reports := rg.Group("/reports")
	reports.GET("/receivables", h.Receivables)
	reports.GET("/receivables/pdf", h.ReceivablesPDF)
	reports.GET("/expenses", h.Expenses)
	reports.GET("/cash-flow", h.CashFlow)
	reports.GET("/cash-flow/pdf", h.CashFlowPDF)
	reports.GET("/statement/pdf", h.StatementPDF)
}

// reportDate parses an optional yyyy-mm-dd query parameter
func reportDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &d
}

// Dashboard assembles the landing-page metrics
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.aggregation.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dash)
}

// Receivables reports every order still owing money
func (h *ReportHandler) Receivables(c *gin.Context) {
	var req reportapp.ReceivablesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rpt, err := h.aggregation.Receivables(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// ReceivablesPDF exports the receivables report as PDF
func (h *ReportHandler) ReceivablesPDF(c *gin.Context) {
	if h.printer == nil {
		h.BadRequest(c, "PDF export is not enabled")
		return
	}

	var req reportapp.ReceivablesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rpt, err := h.aggregation.Receivables(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.printer.ReceivablesPDF(c.Request.Context(), *rpt)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.PDF(c, "contas-a-receber.pdf", pdf)
}

// Expenses reports operating costs in the period
func (h *ReportHandler) Expenses(c *gin.Context) {
	var req reportapp.ExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rpt, err := h.aggregation.Expenses(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// CashFlow builds the managerial report
func (h *ReportHandler) CashFlow(c *gin.Context) {
	var req reportapp.CashFlowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rpt, err := h.aggregation.CashFlow(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// CashFlowPDF exports the managerial report as PDF
func (h *ReportHandler) CashFlowPDF(c *gin.Context) {
	if h.printer == nil {
		h.BadRequest(c, "PDF export is not enabled")
		return
	}

	var req reportapp.CashFlowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	rpt, err := h.aggregation.CashFlow(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.printer.CashFlowPDF(c.Request.Context(), *rpt, reportDate(req.From), reportDate(req.To))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.PDF(c, "relatorio-gerencial.pdf", pdf)
}

// StatementPDF exports the cash statement as PDF
func (h *ReportHandler) StatementPDF(c *gin.Context) {
	if h.printer == nil {
		h.BadRequest(c, "PDF export is not enabled")
		return
	}

	var req financeapp.StatementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	statement, err := h.cashbookService.Statement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pdf, err := h.printer.StatementPDF(c.Request.Context(), *statement, reportDate(req.From), reportDate(req.To))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.PDF(c, "extrato.pdf", pdf)
}
