package services

import (
	"errors"
	"fmt"
	"html"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedUploadTypes maps accepted upload MIME types to their file extension.
var AllowedUploadTypes = map[string]string{
	MimePDF:  ".pdf",
	MimeDOCX: ".docx",
}

type DocumentParser interface {
	// ExtractText returns the plain text of a PDF or DOCX file. The format is
	// taken from the extension, falling back to mimeType when there is none.
	ExtractText(filePath, mimeType string) (string, error)
}

type documentParser struct{}

func NewDocumentParser() DocumentParser {
	return &documentParser{}
}

// ExtractText implements DocumentParser.
func (p *documentParser) ExtractText(filePath, mimeType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		ext = AllowedUploadTypes[mimeType]
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDFText(filePath)
	case ".docx":
		text, err = extractDocxText(filePath)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDFText(filePath string) (_ string, err error) {
	// The PDF reader panics on some malformed object streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: malformed PDF: %v", ErrUnsupportedFormat, r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", unreadableDocument("PDF", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]*>`)
)

func extractDocxText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", unreadableDocument("DOCX", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// unreadableDocument marks content that cannot be parsed as unsupported input.
// Filesystem errors stay internal.
func unreadableDocument(kind string, err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("failed to open %s: %w", kind, err)
	}
	return fmt.Errorf("%w: unreadable %s: %w", ErrUnsupportedFormat, kind, err)
}

// docxXMLToText turns WordprocessingML into plain text, one line per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
