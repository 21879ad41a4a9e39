package services

import (
	"fmt"
	"math"

	"alfredoptarigan/smartmatch/internal/models"
)

const (
	strongMatchThreshold   = 75.0
	moderateMatchThreshold = 50.0
)

// CosineSimilarity returns (a·b)/(‖a‖‖b‖). A zero vector has similarity 0
// with everything.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// ScorePercent scales a similarity to a percentage rounded to 2 decimals.
// Negative similarities stay negative.
func ScorePercent(similarity float64) float64 {
	return math.Round(similarity*100*100) / 100
}

// BandFor classifies a percentage score: above 75 is strong, above 50 is
// moderate, anything else is weak.
func BandFor(scorePct float64) models.MatchBand {
	switch {
	case scorePct > strongMatchThreshold:
		return models.BandStrong
	case scorePct > moderateMatchThreshold:
		return models.BandModerate
	default:
		return models.BandWeak
	}
}

// BandLabel is the on-screen heading for a band.
func BandLabel(band models.MatchBand) string {
	switch band {
	case models.BandStrong:
		return "Strong Match"
	case models.BandModerate:
		return "Moderate Match"
	default:
		return "Weak Match"
	}
}

// BandFeedback is the advice sentence shown for a band in every report.
func BandFeedback(band models.MatchBand) string {
	switch band {
	case models.BandStrong:
		return "Strong Match! Your resume aligns well with the job description."
	case models.BandModerate:
		return "Moderate Match. Consider updating your resume to match more skills."
	default:
		return "Weak Match. Add more relevant skills to your resume to increase the match score."
	}
}

// FormatScore renders a percentage with two decimals.
func FormatScore(scorePct float64) string {
	return fmt.Sprintf("%.2f", scorePct)
}
