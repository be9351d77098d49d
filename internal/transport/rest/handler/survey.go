package handler

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveys SurveyService
	logger  *zap.Logger
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveys SurveyService, logger *zap.Logger) *SurveyHandler {
	return &SurveyHandler{surveys: surveys, logger: logger}
}

// CreateSurveyRequest is the request body for creating a survey.
// student_name is accepted for older clients.
type CreateSurveyRequest struct {
	UserName    string `json:"user_name"`
	StudentName string `json:"student_name"`
}

// AddResponseRequest is the request body for recording an answer
type AddResponseRequest struct {
	QuestionID int64 `json:"question_id"`
	AnswerID   int64 `json:"answer_id"`
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSurveyRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := req.UserName
	if name == "" {
		name = req.StudentName
	}

	survey, err := h.surveys.CreateSurvey(r.Context(), name)
	if err != nil {
		handleError(w, r, h.logger, "create survey", err)
		return
	}
	writeJSON(w, http.StatusCreated, survey)
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveys.ListSurveys(r.Context())
	if err != nil {
		handleError(w, r, h.logger, "list surveys", err)
		return
	}
	writeJSON(w, http.StatusOK, surveys)
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "surveyId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid survey id")
		return
	}

	survey, err := h.surveys.GetSurvey(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, "get survey", err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// AddResponse handles POST /v1/surveys/{surveyId}/responses
func (h *SurveyHandler) AddResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "surveyId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid survey id")
		return
	}

	var req AddResponseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.surveys.AddResponse(r.Context(), id, req.QuestionID, req.AnswerID)
	if err != nil {
		handleError(w, r, h.logger, "add response", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Complete handles POST /v1/surveys/{surveyId}/complete
func (h *SurveyHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "surveyId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid survey id")
		return
	}

	results, err := h.surveys.CompleteSurvey(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, "complete survey", err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
