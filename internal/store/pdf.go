package store

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// pdfToText extracts the plain text of every page of a PDF file. The
// underlying reader panics on some malformed documents, so the
// conversion is fenced off and a panic surfaces as an ordinary error.
func pdfToText(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}
