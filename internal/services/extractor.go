package services

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

// DefaultMinTextLength is the fewest trimmed characters a readable resume can have.
const DefaultMinTextLength = 50

// DecodeResult is what a format decoder recovers from a byte buffer.
type DecodeResult struct {
	Text      string
	PageCount int
	Warnings  []string
}

// Decoder converts one document format to plain text.
type Decoder func(data []byte) (*DecodeResult, error)

type ExtractionResult struct {
	Text      string
	Format    models.DocumentFormat
	PageCount int
	Warnings  []string
}

type TextExtractor interface {
	Extract(ctx context.Context, doc *models.UploadedDocument) (*ExtractionResult, error)
}

type textExtractor struct {
	decoders  map[models.DocumentFormat]Decoder
	minLength int
}

func NewTextExtractor(minLength int) TextExtractor {
	return NewTextExtractorWithDecoders(minLength, map[models.DocumentFormat]Decoder{
		models.FormatPDF:  DecodePDF,
		models.FormatDOCX: DecodeDOCX,
	})
}

// NewTextExtractorWithDecoders lets callers substitute the per-format decoders.
func NewTextExtractorWithDecoders(minLength int, decoders map[models.DocumentFormat]Decoder) TextExtractor {
	if minLength <= 0 {
		minLength = DefaultMinTextLength
	}
	return &textExtractor{
		decoders:  decoders,
		minLength: minLength,
	}
}

// Extract dispatches on the filename extension and enforces the minimum text length.
// Every failure is returned as an extraction PipelineError.
func (e *textExtractor) Extract(ctx context.Context, doc *models.UploadedDocument) (*ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewExtractionError("Text extraction cancelled", err)
	}

	ext := doc.Extension()
	format, ok := models.FormatForExtension(ext)
	if !ok {
		return nil, NewExtractionError(fmt.Sprintf("Unsupported file type %q", ext), nil)
	}
	decode, ok := e.decoders[format]
	if !ok {
		return nil, NewExtractionError(fmt.Sprintf("No extractor registered for %s", format.Label()), nil)
	}

	log.Printf("📄 Extracting text from %s...", format.Label())

	decoded, err := safeDecode(decode, doc.Data)
	if err != nil {
		log.Printf("❌ Text extraction error for %s: %v", format.Label(), err)
		return nil, NewExtractionError(fmt.Sprintf("Failed to extract text from %s", format.Label()), err)
	}

	if len(decoded.Warnings) > 0 {
		log.Printf("⚠️  %s extraction warnings: %s", format.Label(), strings.Join(decoded.Warnings, "; "))
	}

	if utf8.RuneCountInString(strings.TrimSpace(decoded.Text)) < e.minLength {
		return nil, NewExtractionError(
			fmt.Sprintf("Insufficient text content in %s. Please ensure the document contains readable text", format.Label()),
			nil,
		)
	}

	return &ExtractionResult{
		Text:      CleanText(decoded.Text),
		Format:    format,
		PageCount: decoded.PageCount,
		Warnings:  decoded.Warnings,
	}, nil
}

// safeDecode turns decoder panics on malformed input into errors.
func safeDecode(decode Decoder, data []byte) (res *DecodeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	if len(data) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	res, err = decode(data)
	if err == nil && res == nil {
		err = fmt.Errorf("decoder returned no result")
	}
	return res, err
}

// DecodePDF reads the text layer of every page. Pages that fail are skipped.
func DecodePDF(data []byte) (*DecodeResult, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	var warnings []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", pageIndex, err))
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &DecodeResult{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		Warnings:  warnings,
	}, nil
}

// DecodeDOCX extracts the raw text of the document body.
func DecodeDOCX(data []byte) (*DecodeResult, error) {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	text, warnings := docxPlainText(r.Editable().GetContent())
	return &DecodeResult{
		Text:     text,
		Warnings: warnings,
	}, nil
}

// docxPlainText keeps the character data of w:t runs, turning paragraphs and
// breaks into newlines. A malformed tail is reported as a warning and the text
// read so far is kept.
func docxPlainText(raw string) (string, []string) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	var warnings []string
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("document.xml: %v", err))
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				buf.WriteString("\t")
			case "br", "cr":
				buf.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				buf.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}

	return strings.TrimSpace(buf.String()), warnings
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
