package util

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// maxResumePages bounds how much of an uploaded PDF is read. Resumes
// longer than this are almost certainly the wrong document.
const maxResumePages = 10

// ExtractPDFText pulls the text layer out of an uploaded PDF. Scanned
// image-only PDFs come back empty and are rejected; resumes are digital
// exports in practice, so no OCR pass is attempted.
func ExtractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages > maxResumePages {
		pages = maxResumePages
	}

	var sb strings.Builder
	for n := 0; n < pages; n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		text = strings.TrimSpace(text)
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(sb.String())
	if len(result) == 0 {
		return "", fmt.Errorf("no text layer found in PDF (scanned documents are not supported)")
	}
	if len(result) < 100 {
		return "", fmt.Errorf("extracted text too short for a meaningful evaluation")
	}
	return result, nil
}
