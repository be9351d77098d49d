package handler

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/service"
	"github.com/godilite/program-recommender/pkg/cache"
)

// CatalogHandler serves the program and question catalog and its admin writes
type CatalogHandler struct {
	catalog CatalogService
	cache   cache.Cacher
	sf      *singleflight.Group
	ttl     time.Duration
	logger  *zap.Logger
}

func NewCatalogHandler(catalog CatalogService, c cache.Cacher, sf *singleflight.Group, ttl time.Duration, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cache: c, sf: sf, ttl: ttl, logger: logger}
}

// Programs handles GET /v1/programs
func (h *CatalogHandler) Programs(w http.ResponseWriter, r *http.Request) {
	programs, err := cache.FindAndCache(r.Context(), h.cache, h.sf, service.CacheKeyPrograms, h.ttl, h.logger, h.catalog.ListPrograms)
	if err != nil {
		handleError(w, r, h.logger, "list programs", err)
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

// Questions handles GET /v1/questions
func (h *CatalogHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := cache.FindAndCache(r.Context(), h.cache, h.sf, service.CacheKeyQuestions, h.ttl, h.logger, h.catalog.ListQuestions)
	if err != nil {
		handleError(w, r, h.logger, "list questions", err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// GetProgram handles GET /v1/programs/{programId}
func (h *CatalogHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "programId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	p, err := h.catalog.GetProgram(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, "get program", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreateProgram handles POST /v1/programs
func (h *CatalogHandler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req domain.Program
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.catalog.CreateProgram(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, "create program", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyPrograms)
	writeJSON(w, http.StatusCreated, p)
}

// UpdateProgram handles PUT /v1/programs/{programId}
func (h *CatalogHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "programId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}
	var req domain.Program
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.catalog.UpdateProgram(r.Context(), id, req)
	if err != nil {
		handleError(w, r, h.logger, "update program", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyPrograms)
	writeJSON(w, http.StatusOK, p)
}

// DeleteProgram handles DELETE /v1/programs/{programId}
func (h *CatalogHandler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "programId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid program id")
		return
	}

	if err := h.catalog.DeleteProgram(r.Context(), id); err != nil {
		handleError(w, r, h.logger, "delete program", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyPrograms, service.CacheKeyScores)
	w.WriteHeader(http.StatusNoContent)
}

// Sections handles GET /v1/sections
func (h *CatalogHandler) Sections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.catalog.ListSections(r.Context())
	if err != nil {
		handleError(w, r, h.logger, "list sections", err)
		return
	}
	writeJSON(w, http.StatusOK, sections)
}

// CreateSection handles POST /v1/sections
func (h *CatalogHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req domain.QuestionSection
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.catalog.CreateSection(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, "create section", err)
		return
	}
	writeJSON(w, http.StatusCreated, sec)
}

// UpdateSection handles PUT /v1/sections/{sectionId}
func (h *CatalogHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "sectionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid section id")
		return
	}
	var req domain.QuestionSection
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.catalog.UpdateSection(r.Context(), id, req)
	if err != nil {
		handleError(w, r, h.logger, "update section", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions)
	writeJSON(w, http.StatusOK, sec)
}

// DeleteSection handles DELETE /v1/sections/{sectionId}
func (h *CatalogHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "sectionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid section id")
		return
	}

	if err := h.catalog.DeleteSection(r.Context(), id); err != nil {
		handleError(w, r, h.logger, "delete section", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions, service.CacheKeyScores)
	w.WriteHeader(http.StatusNoContent)
}

// GetQuestion handles GET /v1/questions/{questionId}
func (h *CatalogHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "questionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	q, err := h.catalog.GetQuestion(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, "get question", err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// CreateQuestion handles POST /v1/questions
func (h *CatalogHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req domain.Question
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = 0
	h.upsertQuestion(w, r, req)
}

// UpsertQuestion handles PUT /v1/questions: 201 when a row was created, 200 when replaced.
func (h *CatalogHandler) UpsertQuestion(w http.ResponseWriter, r *http.Request) {
	var req domain.Question
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.upsertQuestion(w, r, req)
}

func (h *CatalogHandler) upsertQuestion(w http.ResponseWriter, r *http.Request, req domain.Question) {
	q, created, err := h.catalog.UpsertQuestion(r.Context(), req)
	if err != nil {
		handleError(w, r, h.logger, "upsert question", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions)
	writeJSON(w, createdStatus(created), q)
}

// UpdateQuestion handles PUT /v1/questions/{questionId}
func (h *CatalogHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "questionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}
	var req domain.Question
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.catalog.UpdateQuestion(r.Context(), id, req)
	if err != nil {
		handleError(w, r, h.logger, "update question", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions)
	writeJSON(w, http.StatusOK, q)
}

// DeleteQuestion handles DELETE /v1/questions/{questionId}
func (h *CatalogHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "questionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	if err := h.catalog.DeleteQuestion(r.Context(), id); err != nil {
		handleError(w, r, h.logger, "delete question", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions, service.CacheKeyScores)
	w.WriteHeader(http.StatusNoContent)
}

// UpsertAnswer handles PUT /v1/questions/{questionId}/answers
func (h *CatalogHandler) UpsertAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r, "questionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}
	var req domain.Answer
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, created, err := h.catalog.UpsertAnswer(r.Context(), questionID, req)
	if err != nil {
		handleError(w, r, h.logger, "upsert answer", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions)
	writeJSON(w, createdStatus(created), a)
}

// DeleteAnswer handles DELETE /v1/questions/{questionId}/answers/{answerId}
func (h *CatalogHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r, "questionId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}
	answerID, ok := pathID(r, "answerId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid answer id")
		return
	}

	if err := h.catalog.DeleteAnswer(r.Context(), questionID, answerID); err != nil {
		handleError(w, r, h.logger, "delete answer", err)
		return
	}
	cache.Invalidate(r.Context(), h.cache, h.logger, service.CacheKeyQuestions, service.CacheKeyScores)
	w.WriteHeader(http.StatusNoContent)
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
