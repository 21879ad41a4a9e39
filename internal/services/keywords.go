package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// DefaultKeywordTopN is the number of keywords kept per text unless configured.
const DefaultKeywordTopN = 20

type Keyword struct {
	Text      string
	Relevance float64
}

type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text string, topN int) ([]Keyword, error)
}

// candidateTokenRe matches words of two or more letters, digits or underscores.
var candidateTokenRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// embeddingKeywordExtractor ranks single-word candidates by how close their
// embedding is to the embedding of the whole document.
type embeddingKeywordExtractor struct {
	embedder  Embedder
	stopWords map[string]bool
}

func NewKeywordExtractor(embedder Embedder) KeywordExtractor {
	return &embeddingKeywordExtractor{
		embedder:  embedder,
		stopWords: englishStopWords,
	}
}

// ExtractKeywords implements KeywordExtractor. A text without any candidate
// word yields no keywords and no error.
func (e *embeddingKeywordExtractor) ExtractKeywords(ctx context.Context, text string, topN int) ([]Keyword, error) {
	if topN <= 0 {
		topN = DefaultKeywordTopN
	}

	candidates := e.candidates(text)
	if len(candidates) == 0 {
		return []Keyword{}, nil
	}

	vectors, err := e.embedder.Embed(ctx, append([]string{text}, candidates...))
	if err != nil {
		return nil, fmt.Errorf("failed to embed keyword candidates: %w", err)
	}
	if len(vectors) != len(candidates)+1 {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs", ErrModelUnavailable, len(vectors), len(candidates)+1)
	}

	docVector := vectors[0]
	keywords := make([]Keyword, 0, len(candidates))
	for i, candidate := range candidates {
		sim, err := CosineSimilarity(docVector, vectors[i+1])
		if err != nil {
			return nil, fmt.Errorf("failed to score keyword %q: %w", candidate, err)
		}
		keywords = append(keywords, Keyword{
			Text:      candidate,
			Relevance: math.Round(sim*10000) / 10000,
		})
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Relevance != keywords[j].Relevance {
			return keywords[i].Relevance > keywords[j].Relevance
		}
		return keywords[i].Text < keywords[j].Text
	})

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords, nil
}

// candidates returns the unique lower-cased non-stop-words of text in
// alphabetical order.
func (e *embeddingKeywordExtractor) candidates(text string) []string {
	seen := make(map[string]bool)
	var words []string

	for _, token := range candidateTokenRe.FindAllString(strings.ToLower(text), -1) {
		if e.stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		words = append(words, token)
	}

	sort.Strings(words)
	return words
}

// KeywordSet lower-cases keywords and collapses duplicates.
func KeywordSet(keywords []Keyword) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		set[strings.ToLower(kw.Text)] = true
	}
	return set
}

// DiffKeywords returns the keywords present in both sets and the job keywords
// absent from the resume, each sorted ascending.
func DiffKeywords(resumeSet, jobSet map[string]bool) (matched, missing []string) {
	matched = []string{}
	missing = []string{}

	for kw := range jobSet {
		if resumeSet[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

// SortedKeys returns the members of a keyword set in ascending order.
func SortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for kw := range set {
		keys = append(keys, kw)
	}
	sort.Strings(keys)
	return keys
}

// JoinOrNone joins items with ", " and renders an empty list as "None".
func JoinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
