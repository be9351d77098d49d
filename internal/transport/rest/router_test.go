package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/repository"
	"github.com/godilite/program-recommender/internal/service"
	ts "github.com/godilite/program-recommender/internal/testsupport"
	"github.com/godilite/program-recommender/internal/transport/rest"
	"github.com/godilite/program-recommender/pkg/cache"
)

func newTestServer(t *testing.T) (*httptest.Server, *miniredis.Miniredis) {
	t.Helper()

	db := ts.NewDB(t)
	ts.SeedCatalog(t, db)
	logger := zap.NewNop()

	mr := miniredis.RunT(t)
	c, err := cache.New(context.Background(), cache.WithAddress(mr.Addr()), cache.WithPrefix("test:"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	router := rest.NewRouter(&rest.Container{
		Surveys:  service.NewSurveyService(repository.NewSurveyRepository(db), service.NewAggregator(logger), logger),
		Scoring:  service.NewScoringService(repository.NewAnswerScoreRepository(db), logger),
		Catalog:  service.NewCatalogService(repository.NewCatalogRepository(db), logger),
		Cache:    c,
		CacheTTL: time.Minute,
		Logger:   logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, mr
}

func do(t *testing.T, method, url, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/health", "")

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/v1/surveys", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
}

func TestRouter_SurveyFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, http.MethodPost, srv.URL+"/v1/surveys", `{"user_name":"Alva"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	var survey domain.Survey
	require.NoError(t, json.Unmarshal(body, &survey))
	base := srv.URL + "/v1/surveys/" + strconv.FormatInt(survey.ID, 10)

	for _, r := range []string{
		`{"question_id":1,"answer_id":1}`,
		`{"question_id":2,"answer_id":3}`,
		`{"question_id":3,"answer_id":5}`,
	} {
		status, body = do(t, http.MethodPost, base+"/responses", r)
		require.Equal(t, http.StatusOK, status, string(body))
	}

	status, body = do(t, http.MethodPost, base+"/complete", "")
	require.Equal(t, http.StatusOK, status, string(body))

	var results domain.Results
	require.NoError(t, json.Unmarshal(body, &results))
	require.Len(t, results.Programs, 3)
	assert.Equal(t, ts.ProgramScience, results.Programs[0].ProgramID)
	assert.Equal(t, "5.5", results.Programs[0].Score.String())
	assert.Equal(t, 1, results.Programs[0].Rank)

	status, _ = do(t, http.MethodPost, base+"/responses", `{"question_id":3,"answer_id":6}`)
	assert.Equal(t, http.StatusConflict, status)

	status, body = do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, status)
	var got domain.Survey
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Completed)
	require.NotNil(t, got.Results)
	assert.Len(t, got.Responses, 3)

	status, _ = do(t, http.MethodGet, srv.URL+"/v1/surveys/999", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, http.MethodGet, srv.URL+"/v1/surveys", "")
	require.Equal(t, http.StatusOK, status)
	var list []domain.Survey
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)
}

func TestRouter_ScoringWriteInvalidatesCache(t *testing.T) {
	srv, mr := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/v1/scoring", "")
	require.Equal(t, http.StatusOK, status)
	var scores []domain.AnswerScore
	require.NoError(t, json.Unmarshal(body, &scores))
	assert.Len(t, scores, 7)
	assert.True(t, mr.Exists("test:"+service.CacheKeyScores))

	status, body = do(t, http.MethodPut, srv.URL+"/v1/scoring/2/3", `{"points":"4.5"}`)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.False(t, mr.Exists("test:"+service.CacheKeyScores))

	status, body = do(t, http.MethodGet, srv.URL+"/v1/scoring", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &scores))
	assert.Len(t, scores, 8)
}

func TestRouter_ScoringErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	status, _ := do(t, http.MethodPut, srv.URL+"/v1/scoring/1/1", `{"points":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodPut, srv.URL+"/v1/scoring/999/1", `{"points":1}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := do(t, http.MethodPost, srv.URL+"/v1/scoring/batch",
		`{"scores":[{"answer_id":2,"program_id":1,"points":1},{"answer_id":999,"program_id":1,"points":1}]}`)
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	status, body = do(t, http.MethodGet, srv.URL+"/v1/scoring", "")
	require.Equal(t, http.StatusOK, status)
	var scores []domain.AnswerScore
	require.NoError(t, json.Unmarshal(body, &scores))
	assert.Len(t, scores, 7)
}

func TestRouter_Catalog(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/v1/programs", "")
	require.Equal(t, http.StatusOK, status)
	var programs []domain.Program
	require.NoError(t, json.Unmarshal(body, &programs))
	assert.Len(t, programs, 3)

	status, body = do(t, http.MethodGet, srv.URL+"/v1/questions", "")
	require.Equal(t, http.StatusOK, status)
	var questions []domain.Question
	require.NoError(t, json.Unmarshal(body, &questions))
	assert.Len(t, questions, 3)
}

func TestRouter_CatalogAdmin(t *testing.T) {
	srv, mr := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/v1/programs", "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, mr.Exists("test:"+service.CacheKeyPrograms))

	status, body = do(t, http.MethodPost, srv.URL+"/v1/programs", `{"name":"Estetik","description":"Arts track"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	var created domain.Program
	require.NoError(t, json.Unmarshal(body, &created))
	assert.False(t, mr.Exists("test:"+service.CacheKeyPrograms))

	status, body = do(t, http.MethodGet, srv.URL+"/v1/programs", "")
	require.Equal(t, http.StatusOK, status)
	var programs []domain.Program
	require.NoError(t, json.Unmarshal(body, &programs))
	assert.Len(t, programs, 4)

	programURL := srv.URL + "/v1/programs/" + strconv.FormatInt(created.ID, 10)
	status, _ = do(t, http.MethodPut, programURL, `{"name":"Estetiska programmet"}`)
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, http.MethodPut, srv.URL+"/v1/programs/999", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = do(t, http.MethodPost, srv.URL+"/v1/sections", `{"title":"Framtid","order":2}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	var section domain.QuestionSection
	require.NoError(t, json.Unmarshal(body, &section))

	status, body = do(t, http.MethodPut, srv.URL+"/v1/questions",
		`{"text":"Vill du plugga vidare?","section_id":`+strconv.FormatInt(section.ID, 10)+`}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	var question domain.Question
	require.NoError(t, json.Unmarshal(body, &question))
	questionURL := srv.URL + "/v1/questions/" + strconv.FormatInt(question.ID, 10)

	status, body = do(t, http.MethodPut, srv.URL+"/v1/questions",
		`{"id":`+strconv.FormatInt(question.ID, 10)+`,"text":"Vill du studera vidare?","section_id":`+strconv.FormatInt(section.ID, 10)+`}`)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = do(t, http.MethodPut, questionURL+"/answers", `{"text":"Ja"}`)
	require.Equal(t, http.StatusCreated, status, string(body))
	var answer domain.Answer
	require.NoError(t, json.Unmarshal(body, &answer))
	assert.Equal(t, question.ID, answer.QuestionID)

	status, body = do(t, http.MethodGet, questionURL, "")
	require.Equal(t, http.StatusOK, status)
	var got domain.Question
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Vill du studera vidare?", got.Text)
	require.Len(t, got.Answers, 1)

	status, _ = do(t, http.MethodPut, srv.URL+"/v1/scoring/"+
		strconv.FormatInt(answer.ID, 10)+"/"+strconv.FormatInt(created.ID, 10), `{"points":"4"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = do(t, http.MethodGet, srv.URL+"/v1/scoring", "")
	require.Equal(t, http.StatusOK, status)
	require.True(t, mr.Exists("test:"+service.CacheKeyScores))

	wrongQuestion := srv.URL + "/v1/questions/" + strconv.FormatInt(ts.QuestionLab, 10) + "/answers/" + strconv.FormatInt(answer.ID, 10)
	status, _ = do(t, http.MethodDelete, wrongQuestion, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodDelete, questionURL+"/answers/"+strconv.FormatInt(answer.ID, 10), "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.False(t, mr.Exists("test:"+service.CacheKeyScores))

	status, body = do(t, http.MethodGet, srv.URL+"/v1/scoring", "")
	require.Equal(t, http.StatusOK, status)
	var scores []domain.AnswerScore
	require.NoError(t, json.Unmarshal(body, &scores))
	assert.Len(t, scores, 7)

	status, _ = do(t, http.MethodDelete, questionURL, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, http.MethodDelete, srv.URL+"/v1/sections/"+strconv.FormatInt(section.ID, 10), "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, http.MethodDelete, programURL, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, http.MethodGet, programURL, "")
	assert.Equal(t, http.StatusNotFound, status)
}
