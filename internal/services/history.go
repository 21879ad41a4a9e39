package services

import (
	"context"
	"fmt"
	"log"
	"path"

	"github.com/google/uuid"

	"alfredoptarigan/smartmatch/internal/models"
	"alfredoptarigan/smartmatch/internal/repositories"
)

// HistoryService persists comparisons and their rendered reports so they can
// be fetched again after the request that produced them.
type HistoryService interface {
	Record(ctx context.Context, comparison *Comparison, resumeName string) (*models.MatchRecord, error)
	Find(id uuid.UUID) (*models.MatchRecord, error)
	Recent(limit int) ([]models.MatchRecord, error)
	Download(ctx context.Context, id uuid.UUID, format string) (*Artifact, error)
}

const defaultRecentLimit = 20

type historyService struct {
	matchRepo repositories.MatchRepository
	store     ArtifactStore
	renderer  ReportRenderer
}

func NewHistoryService(matchRepo repositories.MatchRepository, store ArtifactStore, renderer ReportRenderer) HistoryService {
	return &historyService{
		matchRepo: matchRepo,
		store:     store,
		renderer:  renderer,
	}
}

func artifactKey(id uuid.UUID, filename string) string {
	return path.Join(id.String(), filename)
}

// Record implements HistoryService. A report format that fails to render is
// logged and skipped; the record itself is always written.
func (h *historyService) Record(ctx context.Context, comparison *Comparison, resumeName string) (*models.MatchRecord, error) {
	record := &models.MatchRecord{
		ID:            comparison.ID,
		ScorePct:      comparison.Result.ScorePct,
		Band:          comparison.Band(),
		MatchedSkills: comparison.Result.Matched,
		MissingSkills: comparison.Result.Missing,
		JobSnippet:    truncateRunes(comparison.JobText, tableSnippetLength),
		ResumeSnippet: truncateRunes(comparison.ResumeText, tableSnippetLength),
		ResumeName:    resumeName,
	}

	if err := h.matchRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to save match record: %w", err)
	}

	in := comparison.ReportInput()
	for _, format := range ReportFormats {
		artifact, err := h.renderer.Render(format, in)
		if err != nil {
			log.Printf("⚠️ Failed to render %s report for %s: %v\n", format, record.ID, err)
			continue
		}

		key := artifactKey(record.ID, artifact.Filename)
		if err := h.store.Save(ctx, key, artifact.Data, artifact.ContentType); err != nil {
			log.Printf("⚠️ Failed to store %s: %v\n", key, err)
		}
	}

	log.Printf("✅ Match %s saved to history\n", record.ID)
	return record, nil
}

func (h *historyService) Find(id uuid.UUID) (*models.MatchRecord, error) {
	return h.matchRepo.FindByID(id)
}

func (h *historyService) Recent(limit int) ([]models.MatchRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return h.matchRepo.FindRecent(limit)
}

// Download implements HistoryService.
func (h *historyService) Download(ctx context.Context, id uuid.UUID, format string) (*Artifact, error) {
	filename, contentType, err := ReportFile(format)
	if err != nil {
		return nil, err
	}

	if _, err := h.matchRepo.FindByID(id); err != nil {
		return nil, err
	}

	data, err := h.store.Load(ctx, artifactKey(id, filename))
	if err != nil {
		return nil, err
	}

	return &Artifact{Filename: filename, ContentType: contentType, Data: data}, nil
}
