package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/smartmatch/internal/models"
	"alfredoptarigan/smartmatch/internal/services"
)

type ResultHandler struct {
	history services.HistoryService
}

func NewResultHandler(history services.HistoryService) *ResultHandler {
	return &ResultHandler{
		history: history,
	}
}

func toResultResponse(record *models.MatchRecord) models.ResultResponse {
	return models.ResultResponse{
		ID:            record.ID.String(),
		Score:         record.ScorePct,
		Band:          record.Band,
		Matched:       record.MatchedSkills,
		Missing:       record.MissingSkills,
		JobSnippet:    record.JobSnippet,
		ResumeSnippet: record.ResumeSnippet,
		ResumeName:    record.ResumeName,
		CreatedAt:     record.CreatedAt,
	}
}

func parseMatchID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, ok := parseMatchID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match ID format",
		})
	}

	record, err := h.history.Find(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(toResultResponse(record))
}

// HandleListResults handles GET /results
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	records, err := h.history.Recent(c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}

	results := make([]models.ResultResponse, 0, len(records))
	for i := range records {
		results = append(results, toResultResponse(&records[i]))
	}

	return c.JSON(fiber.Map{
		"results": results,
	})
}

// HandleDownload handles GET /result/:id/download/:format
func (h *ResultHandler) HandleDownload(c *fiber.Ctx) error {
	id, ok := parseMatchID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match ID format",
		})
	}

	artifact, err := h.history.Download(c.UserContext(), id, c.Params("format"))
	if err != nil {
		return respondError(c, err)
	}

	return sendArtifact(c, artifact)
}
