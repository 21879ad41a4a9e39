package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keywordTexts(keywords []Keyword) []string {
	texts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		texts = append(texts, kw.Text)
	}
	return texts
}

func TestExtractKeywords_StopWordsAndCase(t *testing.T) {
	extractor := NewKeywordExtractor(&hashingEmbedder{})

	keywords, err := extractor.ExtractKeywords(context.Background(), "The Python developer and the PYTHON team with AWS", 20)
	require.NoError(t, err)

	texts := keywordTexts(keywords)
	sort.Strings(texts)
	assert.Equal(t, []string{"aws", "developer", "python", "team"}, texts)
}

func TestExtractKeywords_RespectsTopN(t *testing.T) {
	extractor := NewKeywordExtractor(&hashingEmbedder{})

	var words []string
	for i := 0; i < 30; i++ {
		words = append(words, fmt.Sprintf("skill%02d", i))
	}

	keywords, err := extractor.ExtractKeywords(context.Background(), strings.Join(words, " "), 20)
	require.NoError(t, err)
	assert.Len(t, keywords, 20)

	keywords, err = extractor.ExtractKeywords(context.Background(), strings.Join(words, " "), 0)
	require.NoError(t, err)
	assert.Len(t, keywords, DefaultKeywordTopN)
}

func TestExtractKeywords_OrderedByRelevance(t *testing.T) {
	doc := "kubernetes docker"
	extractor := NewKeywordExtractor(&fixedEmbedder{vectors: map[string][]float32{
		doc:          {1, 0, 0},
		"kubernetes": {1, 0.1, 0},
		"docker":     {0.2, 1, 0},
	}})

	keywords, err := extractor.ExtractKeywords(context.Background(), doc, 20)
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, "kubernetes", keywords[0].Text)
	assert.Equal(t, "docker", keywords[1].Text)
	assert.Greater(t, keywords[0].Relevance, keywords[1].Relevance)
}

func TestExtractKeywords_EmptyVocabulary(t *testing.T) {
	embedder := &hashingEmbedder{}
	extractor := NewKeywordExtractor(embedder)

	for _, text := range []string{"", "the and of", "a b c !!"} {
		keywords, err := extractor.ExtractKeywords(context.Background(), text, 20)
		require.NoError(t, err)
		assert.Empty(t, keywords)
	}
	assert.Zero(t, embedder.calls)
}

func TestExtractKeywords_ModelError(t *testing.T) {
	extractor := NewKeywordExtractor(&hashingEmbedder{err: fmt.Errorf("%w: %v", ErrModelUnavailable, errModelDown)})

	_, err := extractor.ExtractKeywords(context.Background(), "python developer", 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestKeywordSet_LowercasesAndCollapses(t *testing.T) {
	set := KeywordSet([]Keyword{{Text: "Python"}, {Text: "python"}, {Text: "AWS"}})

	assert.Equal(t, map[string]bool{"python": true, "aws": true}, set)
}

func TestDiffKeywords(t *testing.T) {
	resume := map[string]bool{"python": true, "sql": true, "aws": true, "developer": true}
	job := map[string]bool{"python": true, "aws": true, "docker": true, "engineer": true}

	matched, missing := DiffKeywords(resume, job)

	assert.Equal(t, []string{"aws", "python"}, matched)
	assert.Equal(t, []string{"docker", "engineer"}, missing)
}

func TestDiffKeywords_SetLaws(t *testing.T) {
	cases := []struct {
		resume, job map[string]bool
	}{
		{resume: map[string]bool{}, job: map[string]bool{}},
		{resume: map[string]bool{"go": true}, job: map[string]bool{}},
		{resume: map[string]bool{}, job: map[string]bool{"rust": true, "c": true}},
		{
			resume: map[string]bool{"b": true, "a": true, "z": true, "m": true},
			job:    map[string]bool{"m": true, "y": true, "a": true, "c": true, "b": true},
		},
	}

	for _, tc := range cases {
		matched, missing := DiffKeywords(tc.resume, tc.job)

		assert.True(t, sort.StringsAreSorted(matched))
		assert.True(t, sort.StringsAreSorted(missing))
		assert.NotNil(t, matched)
		assert.NotNil(t, missing)

		for _, kw := range matched {
			assert.True(t, tc.resume[kw] && tc.job[kw], "matched %q not in both sets", kw)
		}
		for _, kw := range missing {
			assert.True(t, tc.job[kw], "missing %q not in job set", kw)
			assert.False(t, tc.resume[kw], "missing %q is in resume set", kw)
			assert.NotContains(t, matched, kw)
		}
		assert.Equal(t, len(tc.job), len(matched)+len(missing))
	}
}

func TestJoinOrNone(t *testing.T) {
	assert.Equal(t, "None", JoinOrNone(nil))
	assert.Equal(t, "None", JoinOrNone([]string{}))
	assert.Equal(t, "aws, python", JoinOrNone([]string{"aws", "python"}))
}
