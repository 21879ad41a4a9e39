package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/smartmatch/internal/models"
	"alfredoptarigan/smartmatch/internal/services"
)

type MatchHandler struct {
	resumes  resumeReader
	matcher  services.MatcherService
	renderer services.ReportRenderer
	history  services.HistoryService
	archive  services.JobArchive
}

// NewMatchHandler wires the comparison endpoints. history and archive may be
// nil when those features are disabled.
func NewMatchHandler(
	parser services.DocumentParserService,
	matcher services.MatcherService,
	renderer services.ReportRenderer,
	history services.HistoryService,
	archive services.JobArchive,
	maxFileSize int64,
) *MatchHandler {
	return &MatchHandler{
		resumes:  resumeReader{parser: parser, maxFileSize: maxFileSize},
		matcher:  matcher,
		renderer: renderer,
		history:  history,
		archive:  archive,
	}
}

func (h *MatchHandler) compare(c *fiber.Ctx) (*services.Comparison, string, error) {
	resumeText, resumeName, err := h.resumes.read(c)
	if err != nil {
		return nil, "", err
	}

	comparison, err := h.matcher.Match(c.UserContext(), resumeText, c.FormValue("job_description"))
	if err != nil {
		return nil, "", err
	}
	return comparison, resumeName, nil
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	comparison, resumeName, err := h.compare(c)
	if err != nil {
		return respondError(c, err)
	}

	band := comparison.Band()
	response := models.MatchResponse{
		ID:             comparison.ID.String(),
		Score:          comparison.Result.ScorePct,
		Band:           band,
		Summary:        fmt.Sprintf("%s: %s%%", services.BandLabel(band), services.FormatScore(comparison.Result.ScorePct)),
		Feedback:       services.BandFeedback(band),
		Matched:        comparison.Result.Matched,
		Missing:        comparison.Result.Missing,
		MatchedDisplay: services.JoinOrNone(comparison.Result.Matched),
		MissingDisplay: services.JoinOrNone(comparison.Result.Missing),
	}

	if h.history != nil {
		if _, err := h.history.Record(c.UserContext(), comparison, resumeName); err != nil {
			log.Printf("⚠️ Failed to record match %s: %v\n", comparison.ID, err)
		} else {
			response.Downloads = downloadLinks(comparison.ID.String())
		}
	}

	if h.archive != nil {
		h.archiveJob(c.UserContext(), comparison)
	}

	return c.JSON(response)
}

// HandleReport handles POST /match/report?format=csv|pdf|xlsx
func (h *MatchHandler) HandleReport(c *fiber.Ctx) error {
	format := c.Query("format", services.FormatCSV)
	if _, _, err := services.ReportFile(format); err != nil {
		return respondError(c, err)
	}

	comparison, _, err := h.compare(c)
	if err != nil {
		return respondError(c, err)
	}

	artifact, err := h.renderer.Render(format, comparison.ReportInput())
	if err != nil {
		return respondError(c, err)
	}

	return sendArtifact(c, artifact)
}

func (h *MatchHandler) archiveJob(ctx context.Context, comparison *services.Comparison) {
	err := h.archive.Archive(ctx, comparison.ID, "match", services.JobSnippet(comparison.JobText), comparison.JobEmbedding)
	if err != nil {
		log.Printf("⚠️ Failed to archive job description for %s: %v\n", comparison.ID, err)
	}
}

func downloadLinks(id string) map[string]string {
	links := make(map[string]string, len(services.ReportFormats))
	for _, format := range services.ReportFormats {
		links[format] = fmt.Sprintf("/api/v1/result/%s/download/%s", id, format)
	}
	return links
}

func sendArtifact(c *fiber.Ctx, artifact *services.Artifact) error {
	c.Attachment(artifact.Filename)
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	return c.Send(artifact.Data)
}
