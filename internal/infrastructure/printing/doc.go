// Package printing renders the financial reports to PDF.
//
// This package contains:
// - PDFRenderer interface for rendering HTML to PDF
// - ChromedpRenderer implementation using the Chrome DevTools Protocol
// - HTML templates for the receivables and managerial reports
//
// Example usage:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer renderer.Close()
//
//	printer := NewReportPrinter(renderer)
//	pdf, err := printer.ReceivablesPDF(ctx, rpt)
package printing
