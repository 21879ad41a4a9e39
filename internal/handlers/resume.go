package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smartmatch/internal/services"
)

// resumeReader pulls the "resume" upload out of a multipart form and turns
// it into raw text.
type resumeReader struct {
	parser      services.DocumentParserService
	maxFileSize int64
}

func (r resumeReader) read(c *fiber.Ctx) (text string, filename string, err error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return "", "", services.ErrMissingInput
	}

	if r.maxFileSize > 0 && fileHeader.Size > r.maxFileSize {
		return "", "", fmt.Errorf("%w. Max size: %d bytes", errFileTooLarge, r.maxFileSize)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	contentType := services.DetectContentType(fileHeader.Filename, data)
	text, err = r.parser.ExtractText(data, contentType)
	if err != nil {
		return "", "", err
	}

	return text, fileHeader.Filename, nil
}
