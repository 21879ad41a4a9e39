package services

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
)

const fakeDimension = 64

// hashingEmbedder is a deterministic bag-of-words stand-in for the real model.
type hashingEmbedder struct {
	calls int
	err   error
}

func (h *hashingEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	h.calls++
	if h.err != nil {
		return nil, h.err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, fakeDimension)
		for _, token := range candidateTokenRe.FindAllString(strings.ToLower(text), -1) {
			hasher := fnv.New32a()
			hasher.Write([]byte(token))
			vec[hasher.Sum32()%fakeDimension]++
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (h *hashingEmbedder) Dimension() int    { return fakeDimension }
func (h *hashingEmbedder) ModelName() string { return "hashing-test" }

// fixedEmbedder returns preset vectors keyed by input text.
type fixedEmbedder struct {
	vectors map[string][]float32
}

func (f *fixedEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			vec = []float32{0, 0, 1}
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fixedEmbedder) Dimension() int    { return 3 }
func (f *fixedEmbedder) ModelName() string { return "fixed-test" }

var errModelDown = errors.New("model down")
