package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/smartmatch/internal/models"
)

type MatcherService interface {
	Match(ctx context.Context, resumeText, jobText string) (*Comparison, error)
}

// Comparison is the request-scoped outcome of one match, with the inputs the
// reports and the job archive need.
type Comparison struct {
	ID             uuid.UUID
	Result         models.MatchResult
	ResumeText     string
	JobText        string
	ResumeKeywords []string
	JobKeywords    []string
	JobEmbedding   []float32
}

func (c *Comparison) Band() models.MatchBand {
	return BandFor(c.Result.ScorePct)
}

func (c *Comparison) ReportInput() ReportInput {
	return ReportInput{
		Result:     c.Result,
		JobText:    c.JobText,
		ResumeText: c.ResumeText,
	}
}

type matcherService struct {
	embedder    Embedder
	extractor   KeywordExtractor
	keywordTopN int
}

func NewMatcherService(embedder Embedder, extractor KeywordExtractor, keywordTopN int) MatcherService {
	if keywordTopN <= 0 {
		keywordTopN = DefaultKeywordTopN
	}
	return &matcherService{
		embedder:    embedder,
		extractor:   extractor,
		keywordTopN: keywordTopN,
	}
}

// Match normalizes both texts, scores them by embedding similarity and diffs
// their keyword sets. Blank input fails with ErrMissingInput before any model
// call is made.
func (m *matcherService) Match(ctx context.Context, resumeText, jobText string) (*Comparison, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return nil, ErrMissingInput
	}

	resumeClean := NormalizeText(resumeText)
	jobClean := NormalizeText(jobText)

	vectors, err := m.embedder.Embed(ctx, []string{resumeClean, jobClean})
	if err != nil {
		return nil, fmt.Errorf("failed to embed texts: %w", err)
	}
	if len(vectors) != 2 {
		return nil, fmt.Errorf("%w: got %d embeddings for 2 texts", ErrModelUnavailable, len(vectors))
	}

	similarity, err := CosineSimilarity(vectors[0], vectors[1])
	if err != nil {
		return nil, fmt.Errorf("failed to compare embeddings: %w", err)
	}
	score := ScorePercent(similarity)

	resumeKeywords, err := m.extractor.ExtractKeywords(ctx, resumeClean, m.keywordTopN)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume keywords: %w", err)
	}
	jobKeywords, err := m.extractor.ExtractKeywords(ctx, jobClean, m.keywordTopN)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job description keywords: %w", err)
	}

	resumeSet := KeywordSet(resumeKeywords)
	jobSet := KeywordSet(jobKeywords)
	matched, missing := DiffKeywords(resumeSet, jobSet)

	comparison := &Comparison{
		ID: uuid.New(),
		Result: models.MatchResult{
			ScorePct: score,
			Matched:  matched,
			Missing:  missing,
		},
		ResumeText:     resumeClean,
		JobText:        jobClean,
		ResumeKeywords: SortedKeys(resumeSet),
		JobKeywords:    SortedKeys(jobSet),
		JobEmbedding:   vectors[1],
	}

	log.Printf("📊 Match %s: score %s%% (%s), %d matched, %d missing\n",
		comparison.ID, FormatScore(score), comparison.Band(), len(matched), len(missing))

	return comparison, nil
}
