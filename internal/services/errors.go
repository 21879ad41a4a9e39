package services

import "errors"

var (
	// ErrMissingInput is returned when the resume or the job description is blank.
	ErrMissingInput = errors.New("please upload a resume and paste a job description")

	// ErrIngestion is returned when an upload cannot be parsed as a supported document.
	ErrIngestion = errors.New("failed to read uploaded document")

	// ErrModelUnavailable is returned when the embedding model cannot be reached.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrRenderEncoding is returned when report text contains characters
	// that the PDF core fonts cannot represent.
	ErrRenderEncoding = errors.New("report text is not representable in Latin-1")

	ErrUnsupportedFormat = errors.New("unsupported report format")
)
