package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/smartmatch/internal/models"
	"alfredoptarigan/smartmatch/internal/repositories"
)

type memoryMatchRepository struct {
	records map[uuid.UUID]models.MatchRecord
	order   []uuid.UUID
}

func newMemoryMatchRepository() *memoryMatchRepository {
	return &memoryMatchRepository{records: make(map[uuid.UUID]models.MatchRecord)}
}

func (m *memoryMatchRepository) Create(record *models.MatchRecord) error {
	m.records[record.ID] = *record
	m.order = append(m.order, record.ID)
	return nil
}

func (m *memoryMatchRepository) FindByID(id uuid.UUID) (*models.MatchRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	return &record, nil
}

func (m *memoryMatchRepository) FindRecent(limit int) ([]models.MatchRecord, error) {
	var records []models.MatchRecord
	for i := len(m.order) - 1; i >= 0 && len(records) < limit; i-- {
		records = append(records, m.records[m.order[i]])
	}
	return records, nil
}

func newTestComparison(t *testing.T) *Comparison {
	t.Helper()
	comparison, err := newTestMatcher(&hashingEmbedder{}).Match(context.Background(),
		"Python developer with SQL and AWS experience",
		"Looking for a Python and AWS engineer with Docker skills",
	)
	require.NoError(t, err)
	return comparison
}

func TestHistory_RecordAndDownload(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryMatchRepository()
	history := NewHistoryService(repo, NewLocalArtifactStore(t.TempDir()), NewReportRenderer())
	comparison := newTestComparison(t)

	record, err := history.Record(ctx, comparison, "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, comparison.ID, record.ID)
	assert.Equal(t, comparison.Band(), record.Band)
	assert.Equal(t, comparison.Result.Missing, record.MissingSkills)
	assert.Equal(t, "resume.pdf", record.ResumeName)

	found, err := history.Find(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ScorePct, found.ScorePct)

	csvArtifact, err := history.Download(ctx, record.ID, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, CSVFilename, csvArtifact.Filename)
	rendered, err := NewReportRenderer().RenderCSV(comparison.ReportInput())
	require.NoError(t, err)
	assert.Equal(t, rendered, csvArtifact.Data)

	pdfArtifact, err := history.Download(ctx, record.ID, FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfArtifact.Data, []byte("%PDF-")))

	_, err = history.Download(ctx, record.ID, FormatXLSX)
	assert.NoError(t, err)
}

func TestHistory_DownloadErrors(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryService(newMemoryMatchRepository(), NewLocalArtifactStore(t.TempDir()), NewReportRenderer())

	_, err := history.Download(ctx, uuid.New(), FormatCSV)
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)

	_, err = history.Download(ctx, uuid.New(), "docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestHistory_Recent(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryService(newMemoryMatchRepository(), NewLocalArtifactStore(t.TempDir()), NewReportRenderer())

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		record, err := history.Record(ctx, newTestComparison(t), "")
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}

	records, err := history.Recent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)

	records, err = history.Recent(0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
