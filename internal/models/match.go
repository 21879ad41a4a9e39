package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchBand string

const (
	BandStrong   MatchBand = "strong"
	BandModerate MatchBand = "moderate"
	BandWeak     MatchBand = "weak"
)

// MatchResult is the outcome of one resume / job description comparison.
// Matched and Missing are sorted ascending.
type MatchResult struct {
	ScorePct float64  `json:"score"`
	Matched  []string `json:"matched"`
	Missing  []string `json:"missing"`
}

// MatchRecord is the persisted summary of a comparison, written only when
// match history is enabled.
type MatchRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ScorePct      float64   `gorm:"type:decimal(5,2);not null" json:"score"`
	Band          MatchBand `gorm:"type:text;not null" json:"band"`
	MatchedSkills []string  `gorm:"type:jsonb;serializer:json" json:"matched"`
	MissingSkills []string  `gorm:"type:jsonb;serializer:json" json:"missing"`
	JobSnippet    string    `gorm:"type:text" json:"jd_snippet"`
	ResumeSnippet string    `gorm:"type:text" json:"resume_snippet"`
	ResumeName    string    `gorm:"type:text" json:"resume_name"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (MatchRecord) TableName() string {
	return "match_records"
}
