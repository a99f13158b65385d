package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/despachante/backend/internal/domain/shared/valueobject"
)

// reportFuncs are the helpers available inside the report templates.
// Dates render as dd/mm/aaaa and money through FormatBRL.
var reportFuncs = template.FuncMap{
	"brl": func(m valueobject.Money) string {
		return m.FormatBRL()
	},
	"date": func(t time.Time) string {
		return t.Format("02/01/2006")
	},
	"dateOpt": func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("02/01/2006")
	},
	"now": func() string {
		return time.Now().Format("02/01/2006 15:04")
	},
}

const reportBaseStyle = `
	body { font-family: Arial, Helvetica, sans-serif; font-size: 11px; color: #222; }
	h1 { font-size: 18px; margin-bottom: 2px; }
	.subtitle { color: #666; margin-bottom: 16px; }
	table { width: 100%; border-collapse: collapse; margin-top: 8px; }
	th { background: #f0f0f0; text-align: left; padding: 6px 8px; border-bottom: 2px solid #ccc; }
	td { padding: 5px 8px; border-bottom: 1px solid #e0e0e0; }
	td.num, th.num { text-align: right; }
	tr.total td { font-weight: bold; border-top: 2px solid #999; }
	.summary { margin-top: 12px; }
	.summary td:first-child { color: #555; }
	.footer { margin-top: 24px; color: #999; font-size: 9px; }
`

var receivablesTemplate = template.Must(template.New("receivables").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Contas a Receber</title>
<style>` + reportBaseStyle + `</style>
</head>
<body>
<h1>Contas a Receber</h1>
<div class="subtitle">Serviços com saldo pendente, do mais antigo ao mais recente</div>
<table>
<thead>
<tr>
<th>Cliente</th>
<th>Serviço</th>
<th>Placa</th>
<th>Data</th>
<th>Vencimento</th>
<th>Situação</th>
<th class="num">Valor</th>
<th class="num">Recebido</th>
<th class="num">Pendente</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td>{{.ClientName}}</td>
<td>{{.ServiceType}}</td>
<td>{{.Plate}}</td>
<td>{{date .ServiceDate}}</td>
<td>{{dateOpt .DueDate}}</td>
<td>{{.PaymentLabel}}</td>
<td class="num">{{brl .BilledTotal}}</td>
<td class="num">{{brl .Received}}</td>
<td class="num">{{brl .Outstanding}}</td>
</tr>
{{else}}
<tr><td colspan="9">Nenhum valor pendente de recebimento.</td></tr>
{{end}}
<tr class="total">
<td colspan="8">Total a receber</td>
<td class="num">{{brl .Total}}</td>
</tr>
</tbody>
</table>
<div class="footer">Emitido em {{now}}</div>
</body>
</html>`))

var cashFlowTemplate = template.Must(template.New("cashflow").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Relatório Gerencial</title>
<style>` + reportBaseStyle + `</style>
</head>
<body>
<h1>Relatório Gerencial</h1>
<div class="subtitle">{{.PeriodLabel}}</div>
<table class="summary">
<tbody>
<tr><td>Serviços no período</td><td class="num">{{.Report.OrderCount}}</td></tr>
<tr><td>Clientes atendidos</td><td class="num">{{.Report.ClientCount}}</td></tr>
<tr><td>Total faturado</td><td class="num">{{brl .Report.TotalBilled}}</td></tr>
<tr><td>Total recebido</td><td class="num">{{brl .Report.TotalReceived}}</td></tr>
<tr><td>A receber</td><td class="num">{{brl .Report.TotalPending}}</td></tr>
<tr><td>Entradas de caixa</td><td class="num">{{brl .Report.TotalInflows}}</td></tr>
<tr><td>Saídas de caixa</td><td class="num">{{brl .Report.TotalOutflowsCash}}</td></tr>
<tr><td>Despesas</td><td class="num">{{brl .Report.TotalExpenses}}</td></tr>
<tr><td>Saídas totais</td><td class="num">{{brl .Report.TotalOutflows}}</td></tr>
<tr class="total"><td>Resultado líquido</td><td class="num">{{brl .Report.NetBalance}}</td></tr>
</tbody>
</table>
<div class="footer">Emitido em {{now}}</div>
</body>
</html>`))

var statementTemplate = template.Must(template.New("statement").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Extrato de Caixa</title>
<style>` + reportBaseStyle + `</style>
</head>
<body>
<h1>Extrato de Caixa</h1>
<div class="subtitle">{{.PeriodLabel}}</div>
<table>
<thead>
<tr>
<th>Data</th>
<th>Tipo</th>
<th>Descrição</th>
<th>Origem</th>
<th class="num">Valor</th>
</tr>
</thead>
<tbody>
{{range .Statement.Entries}}
<tr>
<td>{{date .Date}}</td>
<td>{{.Direction}}</td>
<td>{{.Description}}</td>
<td>{{.Reference}}</td>
<td class="num">{{brl .Amount}}</td>
</tr>
{{else}}
<tr><td colspan="5">Nenhuma movimentação no período.</td></tr>
{{end}}
</tbody>
</table>
<table class="summary">
<tbody>
<tr><td>Entradas</td><td class="num">{{brl .Statement.Inflows}}</td></tr>
<tr><td>Saídas</td><td class="num">{{brl .Statement.Outflows}}</td></tr>
<tr class="total"><td>Saldo</td><td class="num">{{brl .Statement.Balance}}</td></tr>
</tbody>
</table>
<div class="footer">Emitido em {{now}}</div>
</body>
</html>`))

// periodLabel formats an optional date interval for the report headers
func periodLabel(from, to *time.Time) string {
	switch {
	case from != nil && to != nil:
		return fmt.Sprintf("Período de %s a %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	case from != nil:
		return fmt.Sprintf("Período a partir de %s", from.Format("02/01/2006"))
	case to != nil:
		return fmt.Sprintf("Período até %s", to.Format("02/01/2006"))
	default:
		return "Todo o período"
	}
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
