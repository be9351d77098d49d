package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/program-recommender/internal/service"
	"github.com/godilite/program-recommender/pkg/cache"
)

// ScoringHandler handles the answer-to-program weight endpoints
type ScoringHandler struct {
	scoring ScoringService
	cache   cache.Cacher
	sf      *singleflight.Group
	ttl     time.Duration
	logger  *zap.Logger
}

func NewScoringHandler(scoring ScoringService, c cache.Cacher, sf *singleflight.Group, ttl time.Duration, logger *zap.Logger) *ScoringHandler {
	return &ScoringHandler{scoring: scoring, cache: c, sf: sf, ttl: ttl, logger: logger}
}

// UpsertScoreRequest is the request body for a single weight
type UpsertScoreRequest struct {
	Points service.PointsText `json:"points"`
}

// BatchUpsertRequest is the request body for a batch of weights
type BatchUpsertRequest struct {
	Scores []service.ScoreInput `json:"scores"`
}

// List handles GET /v1/scoring
func (h *ScoringHandler) List(w http.ResponseWriter, r *http.Request) {
	scores, err := cache.FindAndCache(r.Context(), h.cache, h.sf, service.CacheKeyScores, h.ttl, h.logger, h.scoring.GetAllScores)
	if err != nil {
		handleError(w, r, h.logger, "list scores", err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

// Upsert handles PUT /v1/scoring/{answerId}/{programId}
func (h *ScoringHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	answerID, ok := pathID(r, "answerId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid answer id")
		return
	}
	programID, ok := pathID(r, "programId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	var req UpsertScoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.scoring.UpsertScore(r.Context(), service.ScoreInput{
		AnswerID:  answerID,
		ProgramID: programID,
		Points:    req.Points,
	})
	if err != nil {
		handleError(w, r, h.logger, "upsert score", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyScores)
	writeJSON(w, http.StatusOK, score)
}

// Batch handles POST /v1/scoring/batch
func (h *ScoringHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchUpsertRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.scoring.BatchUpsertScores(r.Context(), req.Scores)
	if err != nil {
		handleError(w, r, h.logger, "batch upsert scores", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyScores)
	writeJSON(w, http.StatusOK, summary)
}
