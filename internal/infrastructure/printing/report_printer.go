package printing

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/report"
)

// ReportPrinter turns aggregated report data into PDF documents.
// Each method renders the pt-BR HTML template for the document and
// hands it to the configured renderer.
type ReportPrinter struct {
	renderer PDFRenderer
}

// NewReportPrinter creates a printer backed by the given renderer
func NewReportPrinter(renderer PDFRenderer) *ReportPrinter {
	return &ReportPrinter{renderer: renderer}
}

// ReceivablesPDF renders the receivables report as a landscape A4 PDF
func (p *ReportPrinter) ReceivablesPDF(ctx context.Context, rpt report.ReceivablesReport) ([]byte, error) {
	html, err := renderTemplate(receivablesTemplate, rpt)
	if err != nil {
		return nil, err
	}
	return p.render(ctx, html, "Contas a Receber", true)
}

// CashFlowPDF renders the managerial report as a portrait A4 PDF
func (p *ReportPrinter) CashFlowPDF(ctx context.Context, rpt report.CashFlowReport, from, to *time.Time) ([]byte, error) {
	html, err := renderTemplate(cashFlowTemplate, struct {
		Report      report.CashFlowReport
		PeriodLabel string
	}{Report: rpt, PeriodLabel: periodLabel(from, to)})
	if err != nil {
		return nil, err
	}
	return p.render(ctx, html, "Relatório Gerencial", false)
}

// StatementPDF renders the cash statement as a portrait A4 PDF
func (p *ReportPrinter) StatementPDF(ctx context.Context, stmt report.CashStatement, from, to *time.Time) ([]byte, error) {
	html, err := renderTemplate(statementTemplate, struct {
		Statement   report.CashStatement
		PeriodLabel string
	}{Statement: stmt, PeriodLabel: periodLabel(from, to)})
	if err != nil {
		return nil, err
	}
	return p.render(ctx, html, "Extrato de Caixa", false)
}

func (p *ReportPrinter) render(ctx context.Context, html, title string, landscape bool) ([]byte, error) {
	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:      html,
		Title:     title,
		Landscape: landscape,
		Margins:   DefaultMargins(),
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}
