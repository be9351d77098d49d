package service

import (
	"bytes"
	"encoding/json"
)

// ScoreInput is one weight as received from a caller.
type ScoreInput struct {
	AnswerID  int64      `json:"answer_id"`
	ProgramID int64      `json:"program_id"`
	Points    PointsText `json:"points"`
}

// PointsText holds points as the caller wrote them, so that non-numeric input
// reaches ParsePoints and is rejected as a validation error instead of a decode error.
// It accepts a JSON number or a JSON string.
type PointsText string

func (p *PointsText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PointsText(s)
	default:
		*p = PointsText(data)
	}
	return nil
}

// BatchSummary reports how many weights a batch wrote.
type BatchSummary struct {
	Updated int `json:"updated"`
}

// Cache keys shared by the read-through caches of every transport, so a write
// through one transport invalidates reads through the other.
const (
	CacheKeyScores    = "scoring:all"
	CacheKeyPrograms  = "catalog:programs"
	CacheKeyQuestions = "catalog:questions"
)
