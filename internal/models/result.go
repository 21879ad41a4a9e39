package models

import "time"

type MatchResponse struct {
	ID             string            `json:"id"`
	Score          float64           `json:"score"`
	Band           MatchBand         `json:"band"`
	Summary        string            `json:"summary"`
	Feedback       string            `json:"feedback"`
	Matched        []string          `json:"matched"`
	Missing        []string          `json:"missing"`
	MatchedDisplay string            `json:"matched_display"`
	MissingDisplay string            `json:"missing_display"`
	Downloads      map[string]string `json:"downloads,omitempty"`
}

type ResultResponse struct {
	ID            string    `json:"id"`
	Score         float64   `json:"score"`
	Band          MatchBand `json:"band"`
	Matched       []string  `json:"matched"`
	Missing       []string  `json:"missing"`
	JobSnippet    string    `json:"jd_snippet"`
	ResumeSnippet string    `json:"resume_snippet"`
	ResumeName    string    `json:"resume_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SimilarJob struct {
	MatchID    string  `json:"match_id,omitempty"`
	Source     string  `json:"source,omitempty"`
	Score      float64 `json:"score"`
	JobSnippet string  `json:"jd_snippet"`
}

type SimilarJobsResponse struct {
	Results []SimilarJob `json:"results"`
}
