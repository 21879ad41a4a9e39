package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smartmatch/internal/models"
	"alfredoptarigan/smartmatch/internal/services"
)

type ArchiveHandler struct {
	resumes  resumeReader
	embedder services.Embedder
	archive  services.JobArchive
}

func NewArchiveHandler(
	parser services.DocumentParserService,
	embedder services.Embedder,
	archive services.JobArchive,
	maxFileSize int64,
) *ArchiveHandler {
	return &ArchiveHandler{
		resumes:  resumeReader{parser: parser, maxFileSize: maxFileSize},
		embedder: embedder,
		archive:  archive,
	}
}

// HandleSimilar handles POST /archive/similar
func (h *ArchiveHandler) HandleSimilar(c *fiber.Ctx) error {
	resumeText, _, err := h.resumes.read(c)
	if err != nil {
		return respondError(c, err)
	}
	if strings.TrimSpace(resumeText) == "" {
		return respondError(c, services.ErrMissingInput)
	}

	limit := 0
	if raw := c.FormValue("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a non-negative integer",
			})
		}
	}

	vectors, err := h.embedder.Embed(c.UserContext(), []string{services.NormalizeText(resumeText)})
	if err != nil {
		return respondError(c, err)
	}
	if len(vectors) != 1 {
		return respondError(c, fmt.Errorf("%w: no resume embedding returned", services.ErrModelUnavailable))
	}

	results, err := h.archive.SearchSimilar(c.UserContext(), vectors[0], limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SimilarJobsResponse{Results: results})
}
