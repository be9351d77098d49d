package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/godilite/program-recommender/pkg/grpc/codec"
)

// Client calls recommender.v1.SurveyService using the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{codec.CallOption()}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSurvey(ctx context.Context, in *CreateSurveyRequest, opts ...grpc.CallOption) (*SurveyReply, error) {
	return invoke[SurveyReply](ctx, c.cc, "CreateSurvey", in, opts)
}

func (c *Client) AddResponse(ctx context.Context, in *AddResponseRequest, opts ...grpc.CallOption) (*ResponseReply, error) {
	return invoke[ResponseReply](ctx, c.cc, "AddResponse", in, opts)
}

func (c *Client) CompleteSurvey(ctx context.Context, in *SurveyIDRequest, opts ...grpc.CallOption) (*ResultsReply, error) {
	return invoke[ResultsReply](ctx, c.cc, "CompleteSurvey", in, opts)
}

func (c *Client) GetSurvey(ctx context.Context, in *SurveyIDRequest, opts ...grpc.CallOption) (*SurveyReply, error) {
	return invoke[SurveyReply](ctx, c.cc, "GetSurvey", in, opts)
}

func (c *Client) ListSurveys(ctx context.Context, opts ...grpc.CallOption) (*ListSurveysReply, error) {
	return invoke[ListSurveysReply](ctx, c.cc, "ListSurveys", &Empty{}, opts)
}

func (c *Client) ListScores(ctx context.Context, opts ...grpc.CallOption) (*ListScoresReply, error) {
	return invoke[ListScoresReply](ctx, c.cc, "ListScores", &Empty{}, opts)
}

func (c *Client) UpsertScore(ctx context.Context, in *UpsertScoreRequest, opts ...grpc.CallOption) (*ScoreReply, error) {
	return invoke[ScoreReply](ctx, c.cc, "UpsertScore", in, opts)
}

func (c *Client) BatchUpsertScores(ctx context.Context, in *BatchUpsertScoresRequest, opts ...grpc.CallOption) (*BatchUpsertScoresReply, error) {
	return invoke[BatchUpsertScoresReply](ctx, c.cc, "BatchUpsertScores", in, opts)
}

func (c *Client) ListPrograms(ctx context.Context, opts ...grpc.CallOption) (*ListProgramsReply, error) {
	return invoke[ListProgramsReply](ctx, c.cc, "ListPrograms", &Empty{}, opts)
}

func (c *Client) ListQuestions(ctx context.Context, opts ...grpc.CallOption) (*ListQuestionsReply, error) {
	return invoke[ListQuestionsReply](ctx, c.cc, "ListQuestions", &Empty{}, opts)
}

func (c *Client) GetProgram(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*ProgramReply, error) {
	return invoke[ProgramReply](ctx, c.cc, "GetProgram", in, opts)
}

func (c *Client) CreateProgram(ctx context.Context, in *ProgramRequest, opts ...grpc.CallOption) (*ProgramReply, error) {
	return invoke[ProgramReply](ctx, c.cc, "CreateProgram", in, opts)
}

func (c *Client) UpdateProgram(ctx context.Context, in *ProgramRequest, opts ...grpc.CallOption) (*ProgramReply, error) {
	return invoke[ProgramReply](ctx, c.cc, "UpdateProgram", in, opts)
}

func (c *Client) DeleteProgram(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteProgram", in, opts)
}

func (c *Client) ListSections(ctx context.Context, opts ...grpc.CallOption) (*ListSectionsReply, error) {
	return invoke[ListSectionsReply](ctx, c.cc, "ListSections", &Empty{}, opts)
}

func (c *Client) CreateSection(ctx context.Context, in *SectionRequest, opts ...grpc.CallOption) (*SectionReply, error) {
	return invoke[SectionReply](ctx, c.cc, "CreateSection", in, opts)
}

func (c *Client) UpdateSection(ctx context.Context, in *SectionRequest, opts ...grpc.CallOption) (*SectionReply, error) {
	return invoke[SectionReply](ctx, c.cc, "UpdateSection", in, opts)
}

func (c *Client) DeleteSection(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteSection", in, opts)
}

func (c *Client) GetQuestion(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*QuestionReply, error) {
	return invoke[QuestionReply](ctx, c.cc, "GetQuestion", in, opts)
}

func (c *Client) UpsertQuestion(ctx context.Context, in *QuestionRequest, opts ...grpc.CallOption) (*QuestionReply, error) {
	return invoke[QuestionReply](ctx, c.cc, "UpsertQuestion", in, opts)
}

func (c *Client) UpdateQuestion(ctx context.Context, in *QuestionRequest, opts ...grpc.CallOption) (*QuestionReply, error) {
	return invoke[QuestionReply](ctx, c.cc, "UpdateQuestion", in, opts)
}

func (c *Client) DeleteQuestion(ctx context.Context, in *IDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteQuestion", in, opts)
}

func (c *Client) UpsertAnswer(ctx context.Context, in *UpsertAnswerRequest, opts ...grpc.CallOption) (*AnswerReply, error) {
	return invoke[AnswerReply](ctx, c.cc, "UpsertAnswer", in, opts)
}

func (c *Client) DeleteAnswer(ctx context.Context, in *DeleteAnswerRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "DeleteAnswer", in, opts)
}
