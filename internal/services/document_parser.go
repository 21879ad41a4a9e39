package services

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	ContentTypePDF   = "application/pdf"
	ContentTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypePlain = "text/plain"
)

type DocumentParserService interface {
	ExtractText(data []byte, contentType string) (string, error)
	ExtractTextWithMetaData(data []byte, contentType string) (*DocumentContent, error)
}

type DocumentContent struct {
	Text        string
	PageCount   int
	ContentType string
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

func (p *documentParserService) ExtractText(data []byte, contentType string) (string, error) {
	content, err := p.ExtractTextWithMetaData(data, contentType)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *documentParserService) ExtractTextWithMetaData(data []byte, contentType string) (*DocumentContent, error) {
	switch contentType {
	case ContentTypePDF:
		text, pages, err := extractPDFText(data)
		if err != nil {
			return nil, err
		}
		return &DocumentContent{Text: text, PageCount: pages, ContentType: contentType}, nil

	case ContentTypeDOCX:
		text, err := extractDocxText(data)
		if err != nil {
			return nil, err
		}
		return &DocumentContent{Text: text, PageCount: 1, ContentType: contentType}, nil

	case ContentTypePlain:
		return &DocumentContent{Text: string(data), PageCount: 1, ContentType: contentType}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", ErrIngestion, contentType)
	}
}

// extractPDFText concatenates page text in page order. A page that cannot be
// read contributes nothing; only an unreadable document is an error.
func extractPDFText(data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: malformed PDF: %v", ErrIngestion, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: failed to open PDF: %v", ErrIngestion, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		textBuilder.WriteString(pageText(r, pageIndex))
	}

	return textBuilder.String(), totalPage, nil
}

func pageText(r *pdf.Reader, pageIndex int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := r.Page(pageIndex)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse docx: %v", ErrIngestion, err)
	}
	defer doc.Close()

	text, err := wordprocessingText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: failed to read docx body: %v", ErrIngestion, err)
	}
	return text, nil
}

// wordprocessingText keeps the character data of <w:t> runs and ends each
// <w:p> paragraph with a newline.
func wordprocessingText(body string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(body))

	var textBuilder strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				textBuilder.WriteString("\t")
			case "br":
				textBuilder.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				textBuilder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				textBuilder.Write(t)
			}
		}
	}

	return textBuilder.String(), nil
}

// DetectContentType resolves an upload to one of the supported content types,
// preferring the file extension and falling back to sniffing the bytes.
func DetectContentType(filename string, data []byte) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".docx":
		return ContentTypeDOCX
	case ".txt":
		return ContentTypePlain
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return ContentTypePDF
	}

	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, ContentTypePlain) {
		return ContentTypePlain
	}
	return sniffed
}
