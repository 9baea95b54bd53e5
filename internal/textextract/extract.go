package textextract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
	"github.com/nguyenthenguyen/docx"
)

// FileType is a supported upload format
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
)

// Service exposes the package operations behind methods so callers can
// substitute extraction in tests
type Service struct{}

func (Service) DetectFileType(fileName, contentType string) (FileType, error) {
	return DetectFileType(fileName, contentType)
}

func (Service) ExtractText(data []byte, fileType FileType) (string, error) {
	return ExtractText(data, fileType)
}

// DetectFileType maps a file name or content type to a supported format
func DetectFileType(fileName, contentType string) (FileType, error) {
	name := strings.ToLower(fileName)
	ct := strings.ToLower(contentType)

	switch {
	case strings.HasSuffix(name, ".pdf") || strings.Contains(ct, "pdf"):
		return FileTypePDF, nil
	case strings.HasSuffix(name, ".docx") || strings.Contains(ct, "officedocument.wordprocessingml"):
		return FileTypeDOCX, nil
	case strings.HasSuffix(name, ".txt") || strings.HasPrefix(ct, "text/plain"):
		return FileTypeTXT, nil
	}
	return "", fmt.Errorf("unsupported file type: %s (%s)", fileName, contentType)
}

// ExtractText converts a document's raw bytes to plain text
func ExtractText(data []byte, fileType FileType) (string, error) {
	switch fileType {
	case FileTypePDF:
		return extractPDF(data)
	case FileTypeDOCX:
		return extractDOCX(data)
	case FileTypeTXT:
		return extractTXT(data)
	}
	return "", fmt.Errorf("unsupported file type: %s", fileType)
}

// extractPDF renders each page's text layer
func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("PDF contains no extractable text")
	}
	return result, nil
}

// extractDOCX reads the document body and strips the WordprocessingML markup
func extractDOCX(data []byte) (string, error) {
	r := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(r, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	text := strings.TrimSpace(stripXMLTags(content))
	if text == "" {
		return "", fmt.Errorf("document contains no extractable text")
	}
	return text, nil
}

// extractTXT validates and normalizes a plain-text upload
func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid UTF-8")
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("text file is empty")
	}
	return text, nil
}

// stripXMLTags drops markup and collapses the whitespace runs it leaves behind
func stripXMLTags(content string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
			sb.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}
