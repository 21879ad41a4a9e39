package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/smartmatch/internal/models"
)

func newTestMatcher(embedder Embedder) MatcherService {
	return NewMatcherService(embedder, NewKeywordExtractor(embedder), DefaultKeywordTopN)
}

func TestMatch_EndToEndScenario(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{})

	comparison, err := matcher.Match(context.Background(),
		"Python developer with SQL and AWS experience",
		"Looking for a Python and AWS engineer with Docker skills",
	)
	require.NoError(t, err)

	assert.Subset(t, comparison.Result.Matched, []string{"python", "aws"})
	assert.Contains(t, comparison.Result.Missing, "docker")
	assert.NotContains(t, comparison.Result.Missing, "python")
	assert.Greater(t, comparison.Result.ScorePct, 0.0)
	assert.LessOrEqual(t, comparison.Result.ScorePct, 100.0)
}

func TestMatch_IdenticalTextsScoreHundred(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{})
	text := "Senior Go engineer with Kubernetes, Postgres and gRPC experience"

	comparison, err := matcher.Match(context.Background(), text, text)
	require.NoError(t, err)

	assert.Equal(t, 100.0, comparison.Result.ScorePct)
	assert.Equal(t, models.BandStrong, comparison.Band())
	assert.Empty(t, comparison.Result.Missing)
	assert.Equal(t, comparison.ResumeKeywords, comparison.Result.Matched)
}

func TestMatch_Symmetric(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{})
	a := "Python developer with SQL and AWS experience"
	b := "Looking for a Python and AWS engineer with Docker skills"

	ab, err := matcher.Match(context.Background(), a, b)
	require.NoError(t, err)
	ba, err := matcher.Match(context.Background(), b, a)
	require.NoError(t, err)

	assert.Equal(t, ab.Result.ScorePct, ba.Result.ScorePct)
	assert.Equal(t, ab.Result.Matched, ba.Result.Matched)
}

func TestMatch_SetInvariants(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{})

	comparison, err := matcher.Match(context.Background(),
		"Backend engineer: Go, Rust, Kafka, PostgreSQL, Redis, Terraform, AWS, observability",
		"We need Go and Kafka experience, Kubernetes, Terraform, GCP, incident response, mentoring",
	)
	require.NoError(t, err)

	resume := map[string]bool{}
	for _, kw := range comparison.ResumeKeywords {
		resume[kw] = true
	}
	job := map[string]bool{}
	for _, kw := range comparison.JobKeywords {
		job[kw] = true
	}

	assert.True(t, sort.StringsAreSorted(comparison.Result.Matched))
	assert.True(t, sort.StringsAreSorted(comparison.Result.Missing))
	for _, kw := range comparison.Result.Matched {
		assert.True(t, resume[kw] && job[kw])
		assert.NotContains(t, comparison.Result.Missing, kw)
	}
	for _, kw := range comparison.Result.Missing {
		assert.True(t, job[kw])
		assert.False(t, resume[kw])
	}
	assert.LessOrEqual(t, len(comparison.JobKeywords), DefaultKeywordTopN)
}

func TestMatch_NormalizesBeforeScoring(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{})

	comparison, err := matcher.Match(context.Background(),
		"• Python — AWS 🚀",
		"“Python” → AWS",
	)
	require.NoError(t, err)

	assert.Equal(t, "- Python - AWS ", comparison.ResumeText)
	assert.Equal(t, `"Python" -> AWS`, comparison.JobText)
	assert.Equal(t, []string{"aws", "python"}, comparison.Result.Matched)
}

func TestMatch_MissingInput(t *testing.T) {
	embedder := &hashingEmbedder{}
	matcher := newTestMatcher(embedder)

	tests := []struct {
		name, resume, job string
	}{
		{name: "empty resume", resume: "", job: "Go engineer"},
		{name: "blank resume", resume: " \n\t ", job: "Go engineer"},
		{name: "empty job", resume: "Go engineer", job: ""},
		{name: "blank job", resume: "Go engineer", job: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparison, err := matcher.Match(context.Background(), tt.resume, tt.job)
			assert.ErrorIs(t, err, ErrMissingInput)
			assert.Nil(t, comparison)
		})
	}
	assert.Zero(t, embedder.calls, "no model call may happen for missing input")
}

func TestMatch_NegativeSimilarityIsNotClamped(t *testing.T) {
	resume := "alpha"
	job := "omega"
	matcher := newTestMatcher(&fixedEmbedder{vectors: map[string][]float32{
		resume: {1, 0, 0},
		job:    {-1, 0.5, 0},
	}})

	comparison, err := matcher.Match(context.Background(), resume, job)
	require.NoError(t, err)

	assert.Less(t, comparison.Result.ScorePct, 0.0)
	assert.Equal(t, -89.44, comparison.Result.ScorePct)
	assert.Equal(t, models.BandWeak, comparison.Band())
}

func TestMatch_ModelUnavailable(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{err: fmt.Errorf("%w: %v", ErrModelUnavailable, errModelDown)})

	_, err := matcher.Match(context.Background(), "Go", "Go")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestMatch_EmptyKeywordSets(t *testing.T) {
	matcher := newTestMatcher(&hashingEmbedder{})

	comparison, err := matcher.Match(context.Background(), "the and of", "Docker")
	require.NoError(t, err)

	assert.Empty(t, comparison.Result.Matched)
	assert.Equal(t, []string{"docker"}, comparison.Result.Missing)
	assert.Equal(t, "None", JoinOrNone(comparison.Result.Matched))
}
