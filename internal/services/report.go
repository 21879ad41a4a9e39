package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"alfredoptarigan/smartmatch/internal/models"
)

const (
	reportTitle = "SmartMatch Resume-JD Report"

	// tableSnippetLength bounds the JD/resume snippets in CSV and XLSX rows.
	tableSnippetLength = 150
	// pdfSnippetLength bounds the JD snippet section of the PDF report.
	pdfSnippetLength = 700

	CSVFilename  = "match_result.csv"
	PDFFilename  = "match_report.pdf"
	XLSXFilename = "match_result.xlsx"

	xlsxSheetName = "Match Result"
)

const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var tableHeader = []string{"Match Score (%)", "Matched Skills", "Missing Skills", "JD Snippet", "Resume Snippet"}

// ReportInput is everything a report is rendered from. Both texts are
// expected to be normalized.
type ReportInput struct {
	Result     models.MatchResult
	JobText    string
	ResumeText string
}

// ReportSection is one titled block of the PDF report. List sections render
// Items as a numbered list, or "None" when empty.
type ReportSection struct {
	Title  string
	Body   string
	Items  []string
	IsList bool
}

type ReportRenderer interface {
	RenderCSV(in ReportInput) ([]byte, error)
	RenderPDF(in ReportInput) ([]byte, error)
	RenderXLSX(in ReportInput) ([]byte, error)
	Render(format string, in ReportInput) (*Artifact, error)
}

// Artifact is a rendered report ready to be downloaded or stored.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

type reportRenderer struct{}

func NewReportRenderer() ReportRenderer {
	return &reportRenderer{}
}

type reportFile struct {
	filename    string
	contentType string
}

var reportFiles = map[string]reportFile{
	FormatCSV:  {filename: CSVFilename, contentType: "text/csv; charset=utf-8"},
	FormatPDF:  {filename: PDFFilename, contentType: "application/pdf"},
	FormatXLSX: {filename: XLSXFilename, contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
}

// ReportFormats lists every downloadable format in a stable order.
var ReportFormats = []string{FormatCSV, FormatPDF, FormatXLSX}

// ReportFile returns the download filename and content type of a format.
func ReportFile(format string) (filename, contentType string, err error) {
	file, ok := reportFiles[format]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return file.filename, file.contentType, nil
}

func (r *reportRenderer) Render(format string, in ReportInput) (*Artifact, error) {
	filename, contentType, err := ReportFile(format)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = r.RenderCSV(in)
	case FormatPDF:
		data, err = r.RenderPDF(in)
	case FormatXLSX:
		data, err = r.RenderXLSX(in)
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{Filename: filename, ContentType: contentType, Data: data}, nil
}

// TableRow is the single data row shared by the CSV and XLSX reports.
func TableRow(in ReportInput) []string {
	return []string{
		FormatScore(in.Result.ScorePct),
		JoinOrNone(in.Result.Matched),
		JoinOrNone(in.Result.Missing),
		truncateRunes(in.JobText, tableSnippetLength),
		truncateRunes(in.ResumeText, tableSnippetLength),
	}
}

func (r *reportRenderer) RenderCSV(in ReportInput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.WriteAll([][]string{tableHeader, TableRow(in)}); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *reportRenderer) RenderXLSX(in ReportInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheetName, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	row := TableRow(in)
	values := []interface{}{in.Result.ScorePct, row[1], row[2], row[3], row[4]}
	if err := f.SetSheetRow(xlsxSheetName, "A2", &values); err != nil {
		return nil, fmt.Errorf("failed to write row: %w", err)
	}

	f.SetColWidth(xlsxSheetName, "A", "A", 16)
	f.SetColWidth(xlsxSheetName, "B", "E", 50)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildReportSections lays out the PDF report body in display order. The
// "Skills to Add" section repeats the missing skills and is left out when
// nothing is missing.
func BuildReportSections(result models.MatchResult, jobText string) []ReportSection {
	band := BandFor(result.ScorePct)

	sections := []ReportSection{
		{
			Title: "Match Score Summary",
			Body:  fmt.Sprintf("Match Score: %s%%\n\nFeedback: %s", FormatScore(result.ScorePct), BandFeedback(band)),
		},
		{Title: "Matched Skills", Items: result.Matched, IsList: true},
		{Title: "Missing Skills", Items: result.Missing, IsList: true},
	}

	if len(result.Missing) > 0 {
		sections = append(sections, ReportSection{Title: "Skills to Add to Improve Resume", Items: result.Missing, IsList: true})
	}

	return append(sections, ReportSection{Title: "Job Description Snippet", Body: JobSnippet(jobText)})
}

// JobSnippet is the first 700 characters of the job description, with "..."
// appended only when something was cut.
func JobSnippet(jobText string) string {
	if len([]rune(jobText)) > pdfSnippetLength {
		return truncateRunes(jobText, pdfSnippetLength) + "..."
	}
	return jobText
}

func (r *reportRenderer) RenderPDF(in ReportInput) ([]byte, error) {
	sections, err := encodeSections(BuildReportSections(in.Result, in.JobText))
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, false)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
		pdf.Ln(5)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Line(10, 20, 200, 20)
		pdf.Ln(5)
	})
	pdf.AddPage()

	for _, section := range sections {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, section.Title, "", 1, "", false, 0, "")

		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(50, 50, 50)
		switch {
		case !section.IsList:
			pdf.MultiCell(0, 8, section.Body, "", "", false)
		case len(section.Items) == 0:
			pdf.CellFormat(0, 10, "None", "", 1, "", false, 0, "")
		default:
			for i, item := range section.Items {
				pdf.MultiCell(0, 8, fmt.Sprintf("%d. %s", i+1, item), "", "", false)
			}
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeSections converts every string to Latin-1 bytes, the encoding the
// PDF core fonts draw. Any rune outside Latin-1 fails the whole render.
func encodeSections(sections []ReportSection) ([]ReportSection, error) {
	encoded := make([]ReportSection, len(sections))
	for i, section := range sections {
		title, err := encodeLatin1(section.Title)
		if err != nil {
			return nil, err
		}
		body, err := encodeLatin1(section.Body)
		if err != nil {
			return nil, err
		}

		var items []string
		for _, item := range section.Items {
			enc, err := encodeLatin1(item)
			if err != nil {
				return nil, err
			}
			items = append(items, enc)
		}

		encoded[i] = ReportSection{Title: title, Body: body, Items: items, IsList: section.IsList}
	}
	return encoded, nil
}

func encodeLatin1(s string) (string, error) {
	out, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrRenderEncoding, truncateRunes(s, 40))
	}
	return out, nil
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
