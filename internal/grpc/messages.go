package grpc

import (
	"github.com/godilite/program-recommender/internal/domain"
	"github.com/godilite/program-recommender/internal/service"
)

// Messages are carried as JSON (see pkg/grpc/codec).

type CreateSurveyRequest struct {
	UserName string `json:"user_name"`
}

type AddResponseRequest struct {
	SurveyID   int64 `json:"survey_id"`
	QuestionID int64 `json:"question_id"`
	AnswerID   int64 `json:"answer_id"`
}

type SurveyIDRequest struct {
	SurveyID int64 `json:"survey_id"`
}

type Empty struct{}

type SurveyReply struct {
	Survey domain.Survey `json:"survey"`
}

type ResponseReply struct {
	Response domain.Response `json:"response"`
}

type ResultsReply struct {
	Results domain.Results `json:"results"`
}

type ListSurveysReply struct {
	Surveys []domain.Survey `json:"surveys"`
}

type UpsertScoreRequest = service.ScoreInput

type BatchUpsertScoresRequest struct {
	Scores []service.ScoreInput `json:"scores"`
}

type ScoreReply struct {
	Score domain.AnswerScore `json:"score"`
}

type BatchUpsertScoresReply struct {
	Updated int `json:"updated"`
}

type ListScoresReply struct {
	Scores []domain.AnswerScore `json:"scores"`
}

type ListProgramsReply struct {
	Programs []domain.Program `json:"programs"`
}

type ListQuestionsReply struct {
	Questions []domain.Question `json:"questions"`
}

// IDRequest addresses a program, section or question by id.
type IDRequest struct {
	ID int64 `json:"id"`
}

type ProgramRequest struct {
	Program domain.Program `json:"program"`
}

type ProgramReply struct {
	Program domain.Program `json:"program"`
}

type SectionRequest struct {
	Section domain.QuestionSection `json:"section"`
}

type SectionReply struct {
	Section domain.QuestionSection `json:"section"`
}

type ListSectionsReply struct {
	Sections []domain.QuestionSection `json:"sections"`
}

type QuestionRequest struct {
	Question domain.Question `json:"question"`
}

type QuestionReply struct {
	Question domain.Question `json:"question"`
	Created  bool            `json:"created,omitempty"`
}

type UpsertAnswerRequest struct {
	QuestionID int64         `json:"question_id"`
	Answer     domain.Answer `json:"answer"`
}

type AnswerReply struct {
	Answer  domain.Answer `json:"answer"`
	Created bool          `json:"created,omitempty"`
}

type DeleteAnswerRequest struct {
	QuestionID int64 `json:"question_id"`
	AnswerID   int64 `json:"answer_id"`
}
