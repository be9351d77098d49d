package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "recommender.v1.SurveyService"

// SurveyServiceServer is the server API for recommender.v1.SurveyService.
type SurveyServiceServer interface {
	CreateSurvey(context.Context, *CreateSurveyRequest) (*SurveyReply, error)
	AddResponse(context.Context, *AddResponseRequest) (*ResponseReply, error)
	CompleteSurvey(context.Context, *SurveyIDRequest) (*ResultsReply, error)
	GetSurvey(context.Context, *SurveyIDRequest) (*SurveyReply, error)
	ListSurveys(context.Context, *Empty) (*ListSurveysReply, error)
	ListScores(context.Context, *Empty) (*ListScoresReply, error)
	UpsertScore(context.Context, *UpsertScoreRequest) (*ScoreReply, error)
	BatchUpsertScores(context.Context, *BatchUpsertScoresRequest) (*BatchUpsertScoresReply, error)
	ListPrograms(context.Context, *Empty) (*ListProgramsReply, error)
	ListQuestions(context.Context, *Empty) (*ListQuestionsReply, error)

	GetProgram(context.Context, *IDRequest) (*ProgramReply, error)
	CreateProgram(context.Context, *ProgramRequest) (*ProgramReply, error)
	UpdateProgram(context.Context, *ProgramRequest) (*ProgramReply, error)
	DeleteProgram(context.Context, *IDRequest) (*Empty, error)
	ListSections(context.Context, *Empty) (*ListSectionsReply, error)
	CreateSection(context.Context, *SectionRequest) (*SectionReply, error)
	UpdateSection(context.Context, *SectionRequest) (*SectionReply, error)
	DeleteSection(context.Context, *IDRequest) (*Empty, error)
	GetQuestion(context.Context, *IDRequest) (*QuestionReply, error)
	UpsertQuestion(context.Context, *QuestionRequest) (*QuestionReply, error)
	UpdateQuestion(context.Context, *QuestionRequest) (*QuestionReply, error)
	DeleteQuestion(context.Context, *IDRequest) (*Empty, error)
	UpsertAnswer(context.Context, *UpsertAnswerRequest) (*AnswerReply, error)
	DeleteAnswer(context.Context, *DeleteAnswerRequest) (*Empty, error)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](method string, call func(SurveyServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SurveyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SurveyServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SurveyServiceDesc describes recommender.v1.SurveyService for grpc.ServiceRegistrar.
var SurveyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SurveyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateSurvey", Handler: unaryHandler("CreateSurvey", SurveyServiceServer.CreateSurvey)},
		{MethodName: "AddResponse", Handler: unaryHandler("AddResponse", SurveyServiceServer.AddResponse)},
		{MethodName: "CompleteSurvey", Handler: unaryHandler("CompleteSurvey", SurveyServiceServer.CompleteSurvey)},
		{MethodName: "GetSurvey", Handler: unaryHandler("GetSurvey", SurveyServiceServer.GetSurvey)},
		{MethodName: "ListSurveys", Handler: unaryHandler("ListSurveys", SurveyServiceServer.ListSurveys)},
		{MethodName: "ListScores", Handler: unaryHandler("ListScores", SurveyServiceServer.ListScores)},
		{MethodName: "UpsertScore", Handler: unaryHandler("UpsertScore", SurveyServiceServer.UpsertScore)},
		{MethodName: "BatchUpsertScores", Handler: unaryHandler("BatchUpsertScores", SurveyServiceServer.BatchUpsertScores)},
		{MethodName: "ListPrograms", Handler: unaryHandler("ListPrograms", SurveyServiceServer.ListPrograms)},
		{MethodName: "ListQuestions", Handler: unaryHandler("ListQuestions", SurveyServiceServer.ListQuestions)},
		{MethodName: "GetProgram", Handler: unaryHandler("GetProgram", SurveyServiceServer.GetProgram)},
		{MethodName: "CreateProgram", Handler: unaryHandler("CreateProgram", SurveyServiceServer.CreateProgram)},
		{MethodName: "UpdateProgram", Handler: unaryHandler("UpdateProgram", SurveyServiceServer.UpdateProgram)},
		{MethodName: "DeleteProgram", Handler: unaryHandler("DeleteProgram", SurveyServiceServer.DeleteProgram)},
		{MethodName: "ListSections", Handler: unaryHandler("ListSections", SurveyServiceServer.ListSections)},
		{MethodName: "CreateSection", Handler: unaryHandler("CreateSection", SurveyServiceServer.CreateSection)},
		{MethodName: "UpdateSection", Handler: unaryHandler("UpdateSection", SurveyServiceServer.UpdateSection)},
		{MethodName: "DeleteSection", Handler: unaryHandler("DeleteSection", SurveyServiceServer.DeleteSection)},
		{MethodName: "GetQuestion", Handler: unaryHandler("GetQuestion", SurveyServiceServer.GetQuestion)},
		{MethodName: "UpsertQuestion", Handler: unaryHandler("UpsertQuestion", SurveyServiceServer.UpsertQuestion)},
		{MethodName: "UpdateQuestion", Handler: unaryHandler("UpdateQuestion", SurveyServiceServer.UpdateQuestion)},
		{MethodName: "DeleteQuestion", Handler: unaryHandler("DeleteQuestion", SurveyServiceServer.DeleteQuestion)},
		{MethodName: "UpsertAnswer", Handler: unaryHandler("UpsertAnswer", SurveyServiceServer.UpsertAnswer)},
		{MethodName: "DeleteAnswer", Handler: unaryHandler("DeleteAnswer", SurveyServiceServer.DeleteAnswer)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSurveyServiceServer(s grpc.ServiceRegistrar, srv SurveyServiceServer) {
	s.RegisterService(&SurveyServiceDesc, srv)
}
