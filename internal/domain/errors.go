package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced survey, question, answer or program does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed input such as non-numeric points.
	ErrValidation = errors.New("validation failed")
	// ErrBatchWrite is returned when a batch score upsert was rolled back.
	ErrBatchWrite = errors.New("batch write failed")
	// ErrSurveyCompleted is returned when a response is submitted to a completed survey.
	ErrSurveyCompleted = errors.New("survey already completed")
	// ErrStaleReference marks a response whose question or answer was removed from the catalog.
	// It is logged by the aggregator and never returned to callers.
	ErrStaleReference = errors.New("stale catalog reference")
)
