// Package pdf renders Markdown progress reports as PDF documents.
package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// Render writes markdown as an A4 portrait PDF to pdfPath
func Render(markdown []byte, pdfPath string) error {
	if err := os.MkdirAll(filepath.Dir(pdfPath), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(pdfPath), err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(markdown); err != nil {
		return fmt.Errorf("renderer.Process() > %w", err)
	}
	slog.Default().Debug("rendered pdf", "path", pdfPath, "bytes", len(markdown))
	return nil
}

// ConvertMarkdownToPDF converts a markdown file to a PDF next to it and
// returns the absolute path of the PDF.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	absPath, err := filepath.Abs(markdownPath)
	if err != nil {
		return "", fmt.Errorf("filepath.Abs(%s) > %w", markdownPath, err)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", absPath, err)
	}

	pdfPath := strings.TrimSuffix(absPath, ".md") + ".pdf"
	if err := Render(content, pdfPath); err != nil {
		return "", err
	}
	return pdfPath, nil
}
