package printing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despachante/backend/internal/domain/report"
	"github.com/despachante/backend/internal/domain/shared/valueobject"
)

// fakeRenderer records the last request and returns canned bytes
type fakeRenderer struct {
	lastRequest *RenderRequest
	err         error
}

func (f *fakeRenderer) Render(_ context.Context, req *RenderRequest) (*RenderResult, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &RenderResult{PDFData: []byte("%PDF-1.4 fake"), RenderDuration: time.Millisecond}, nil
}

func (f *fakeRenderer) Close() error { return nil }

func TestReceivablesTemplate(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	rpt := report.ReceivablesReport{
		Rows: []report.ReceivableRow{
			{
				OrderID:      uuid.New(),
				ClientID:     uuid.New(),
				ClientName:   "João da Silva",
				ServiceType:  "Transferência",
				Plate:        "ABC1D23",
				ServiceDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				DueDate:      &due,
				BilledTotal:  valueobject.NewMoneyFromFloat(1200.50),
				Received:     valueobject.NewMoneyFromFloat(200),
				Outstanding:  valueobject.NewMoneyFromFloat(1000.50),
				PaymentLabel: "Parcial",
			},
		},
		Total: valueobject.NewMoneyFromFloat(1000.50),
	}

	html, err := renderTemplate(receivablesTemplate, rpt)
	require.NoError(t, err)

	assert.Contains(t, html, "Contas a Receber")
	assert.Contains(t, html, "João da Silva")
	assert.Contains(t, html, "ABC1D23")
	assert.Contains(t, html, "01/08/2026")
	assert.Contains(t, html, "15/09/2026")
	assert.Contains(t, html, "R$ 1.200,50")
	assert.Contains(t, html, "R$ 1.000,50")
}

func TestReceivablesTemplate_Empty(t *testing.T) {
	html, err := renderTemplate(receivablesTemplate, report.ReceivablesReport{})
	require.NoError(t, err)

	assert.Contains(t, html, "Nenhum valor pendente de recebimento.")
	assert.Contains(t, html, "R$ 0,00")
}

func TestCashFlowTemplate(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	data := struct {
		Report      report.CashFlowReport
		PeriodLabel string
	}{
		Report: report.CashFlowReport{
			TotalBilled:       valueobject.NewMoneyFromFloat(5000),
			TotalReceived:     valueobject.NewMoneyFromFloat(3600),
			TotalPending:      valueobject.NewMoneyFromFloat(1400),
			TotalInflows:      valueobject.NewMoneyFromFloat(4200),
			TotalOutflowsCash: valueobject.NewMoneyFromFloat(800),
			TotalExpenses:     valueobject.NewMoneyFromFloat(650),
			TotalOutflows:     valueobject.NewMoneyFromFloat(1450),
			NetBalance:        valueobject.NewMoneyFromFloat(2750),
			OrderCount:        12,
			ClientCount:       7,
		},
		PeriodLabel: periodLabel(&from, &to),
	}

	html, err := renderTemplate(cashFlowTemplate, data)
	require.NoError(t, err)

	assert.Contains(t, html, "Relatório Gerencial")
	assert.Contains(t, html, "Período de 01/08/2026 a 31/08/2026")
	assert.Contains(t, html, "Total recebido")
	assert.Contains(t, html, "R$ 3.600,00")
	assert.Contains(t, html, "R$ 1.400,00")
	assert.Contains(t, html, "R$ 2.750,00")
	assert.Contains(t, html, ">12<")
	assert.Contains(t, html, ">7<")
}

func TestStatementTemplate(t *testing.T) {
	data := struct {
		Statement   report.CashStatement
		PeriodLabel string
	}{
		Statement: report.CashStatement{
			Entries: []report.StatementEntry{
				{
					MovementID:  uuid.New(),
					Date:        time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
					Direction:   "Entrada",
					Amount:      valueobject.NewMoneyFromFloat(350),
					Description: "Pagamento (Pix)",
					Reference:   "Serviço",
				},
			},
			Inflows:  valueobject.NewMoneyFromFloat(350),
			Outflows: valueobject.Zero(),
			Balance:  valueobject.NewMoneyFromFloat(350),
		},
		PeriodLabel: periodLabel(nil, nil),
	}

	html, err := renderTemplate(statementTemplate, data)
	require.NoError(t, err)

	assert.Contains(t, html, "Extrato de Caixa")
	assert.Contains(t, html, "Todo o período")
	assert.Contains(t, html, "Pagamento (Pix)")
	assert.Contains(t, html, "10/08/2026")
	assert.Contains(t, html, "R$ 350,00")
}

func TestPeriodLabel(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Período de 01/01/2026 a 30/06/2026", periodLabel(&from, &to))
	assert.Equal(t, "Período a partir de 01/01/2026", periodLabel(&from, nil))
	assert.Equal(t, "Período até 30/06/2026", periodLabel(nil, &to))
	assert.Equal(t, "Todo o período", periodLabel(nil, nil))
}

func TestReportPrinter_ReceivablesPDF(t *testing.T) {
	renderer := &fakeRenderer{}
	printer := NewReportPrinter(renderer)

	pdf, err := printer.ReceivablesPDF(context.Background(), report.ReceivablesReport{
		Total: valueobject.NewMoneyFromFloat(99.90),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, renderer.lastRequest)
	assert.True(t, renderer.lastRequest.Landscape)
	assert.Equal(t, "Contas a Receber", renderer.lastRequest.Title)
	assert.Equal(t, DefaultMargins(), renderer.lastRequest.Margins)
	assert.Contains(t, renderer.lastRequest.HTML, "R$ 99,90")
}

func TestReportPrinter_CashFlowPDF(t *testing.T) {
	renderer := &fakeRenderer{}
	printer := NewReportPrinter(renderer)

	pdf, err := printer.CashFlowPDF(context.Background(), report.CashFlowReport{}, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.NotNil(t, renderer.lastRequest)
	assert.False(t, renderer.lastRequest.Landscape)
	assert.Contains(t, renderer.lastRequest.HTML, "Relatório Gerencial")
}

func TestReportPrinter_RendererError(t *testing.T) {
	renderer := &fakeRenderer{err: NewRenderError(ErrCodeRenderTimeout, "timed out", nil)}
	printer := NewReportPrinter(renderer)

	_, err := printer.StatementPDF(context.Background(), report.CashStatement{}, nil, nil)
	require.Error(t, err)

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeRenderTimeout, renderErr.Code)
}

func TestChromedpRenderer_Validation(t *testing.T) {
	renderer := &ChromedpRenderer{config: &ChromedpConfig{DefaultTimeout: time.Second}}

	_, err := renderer.Render(context.Background(), nil)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)

	_, err = renderer.Render(context.Background(), &RenderRequest{HTML: "   "})
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestBuildCompleteHTML(t *testing.T) {
	renderer := &ChromedpRenderer{config: &ChromedpConfig{}}

	full := renderer.buildCompleteHTML(&RenderRequest{HTML: "<!DOCTYPE html><html><body>x</body></html>"})
	assert.Equal(t, "<!DOCTYPE html><html><body>x</body></html>", full)

	wrapped := renderer.buildCompleteHTML(&RenderRequest{HTML: "<p>fragmento</p>", Title: "Doc"})
	assert.True(t, strings.HasPrefix(wrapped, "<!DOCTYPE html>"))
	assert.Contains(t, wrapped, "<title>Doc</title>")
	assert.Contains(t, wrapped, "<p>fragmento</p>")
}
