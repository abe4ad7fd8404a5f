package main

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // margin in mm
	pdfLineHeight = 5   // line height in mm
	pdfFontSize   = 9
)

// generatePDF renders the aggregated analysis results as a report: one
// section per page with its query and mutation names, then the run summary.
func generatePDF(results []AnalysisResult, summary RunSummary, outputPath string) error {
	fmt.Printf("Generating PDF report at: %s\n", outputPath)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight+1, "GraphQL Operations by Page", "", "L", false)
	pdf.Ln(pdfLineHeight)

	for _, res := range results {
		pdf.SetFont("Helvetica", "B", pdfFontSize+1)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, fmt.Sprintf("Page: %s", res.Page), "", "L", false)
		pdf.Ln(pdfLineHeight / 2)

		if res.Error != "" {
			pdf.SetFont("Courier", "", pdfFontSize)
			pdf.SetTextColor(255, 0, 0)
			pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, fmt.Sprintf("Error: %s", res.Error), "", "L", false)
			pdf.Ln(pdfLineHeight)
			continue
		}

		pdf.SetFont("Courier", "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight,
			fmt.Sprintf("Queries (%d):", res.QueryCount), "", "L", false)
		for _, q := range res.Analysis.Queries {
			pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, "  - "+q.Name, "", "L", false)
		}
		pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight,
			fmt.Sprintf("Mutations (%d):", res.MutationCount), "", "L", false)
		for _, m := range res.Analysis.Mutations {
			pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, "  - "+m.Name, "", "L", false)
		}
		pdf.Ln(pdfLineHeight)
	}

	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.Ln(pdfLineHeight)
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, "--- Summary ---", "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	pdf.SetFont("Helvetica", "", pdfFontSize)
	summaryString := fmt.Sprintf("Pages analyzed: %d\nRemote calls: %d\nPages with errors: %d",
		summary.Groups, summary.Calls, summary.Errored)
	if summary.PromptTokens > 0 {
		summaryString += fmt.Sprintf("\nTotal prompt tokens: %d", summary.PromptTokens)
	}
	pdf.MultiCell(pdfPageWidth-2*pdfMargin, pdfLineHeight, summaryString, "", "L", false)

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}

	fmt.Printf("Successfully saved PDF to %s\n", outputPath)
	return nil
}
