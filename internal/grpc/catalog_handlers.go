package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/godilite/program-recommender/internal/service"
	"github.com/godilite/program-recommender/pkg/cache"
)

func requireID(name string, id int64) error {
	if id <= 0 {
		return status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	return nil
}

func (s *GRPCHandlers) GetProgram(ctx context.Context, req *IDRequest) (*ProgramReply, error) {
	if err := requireID("id", req.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	p, err := s.catalog.GetProgram(ctx, req.ID)
	if err != nil {
		return nil, s.handleError(ctx, "GetProgram", err)
	}
	return &ProgramReply{Program: p}, nil
}

func (s *GRPCHandlers) CreateProgram(ctx context.Context, req *ProgramRequest) (*ProgramReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	p, err := s.catalog.CreateProgram(ctx, req.Program)
	if err != nil {
		return nil, s.handleError(ctx, "CreateProgram", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyPrograms)
	return &ProgramReply{Program: p}, nil
}

func (s *GRPCHandlers) UpdateProgram(ctx context.Context, req *ProgramRequest) (*ProgramReply, error) {
	if err := requireID("program.id", req.Program.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	p, err := s.catalog.UpdateProgram(ctx, req.Program.ID, req.Program)
	if err != nil {
		return nil, s.handleError(ctx, "UpdateProgram", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyPrograms)
	return &ProgramReply{Program: p}, nil
}

// DeleteProgram also clears the weight cache, since the program's weights go with it.
func (s *GRPCHandlers) DeleteProgram(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := requireID("id", req.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	if err := s.catalog.DeleteProgram(ctx, req.ID); err != nil {
		return nil, s.handleError(ctx, "DeleteProgram", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyPrograms, service.CacheKeyScores)
	return &Empty{}, nil
}

func (s *GRPCHandlers) ListSections(ctx context.Context, _ *Empty) (*ListSectionsReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	sections, err := s.catalog.ListSections(ctx)
	if err != nil {
		return nil, s.handleError(ctx, "ListSections", err)
	}
	return &ListSectionsReply{Sections: sections}, nil
}

func (s *GRPCHandlers) CreateSection(ctx context.Context, req *SectionRequest) (*SectionReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	sec, err := s.catalog.CreateSection(ctx, req.Section)
	if err != nil {
		return nil, s.handleError(ctx, "CreateSection", err)
	}
	return &SectionReply{Section: sec}, nil
}

func (s *GRPCHandlers) UpdateSection(ctx context.Context, req *SectionRequest) (*SectionReply, error) {
	if err := requireID("section.id", req.Section.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	sec, err := s.catalog.UpdateSection(ctx, req.Section.ID, req.Section)
	if err != nil {
		return nil, s.handleError(ctx, "UpdateSection", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions)
	return &SectionReply{Section: sec}, nil
}

func (s *GRPCHandlers) DeleteSection(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := requireID("id", req.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	if err := s.catalog.DeleteSection(ctx, req.ID); err != nil {
		return nil, s.handleError(ctx, "DeleteSection", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions, service.CacheKeyScores)
	return &Empty{}, nil
}

func (s *GRPCHandlers) GetQuestion(ctx context.Context, req *IDRequest) (*QuestionReply, error) {
	if err := requireID("id", req.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	q, err := s.catalog.GetQuestion(ctx, req.ID)
	if err != nil {
		return nil, s.handleError(ctx, "GetQuestion", err)
	}
	return &QuestionReply{Question: q}, nil
}

func (s *GRPCHandlers) UpsertQuestion(ctx context.Context, req *QuestionRequest) (*QuestionReply, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	q, created, err := s.catalog.UpsertQuestion(ctx, req.Question)
	if err != nil {
		return nil, s.handleError(ctx, "UpsertQuestion", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions)
	return &QuestionReply{Question: q, Created: created}, nil
}

func (s *GRPCHandlers) UpdateQuestion(ctx context.Context, req *QuestionRequest) (*QuestionReply, error) {
	if err := requireID("question.id", req.Question.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	q, err := s.catalog.UpdateQuestion(ctx, req.Question.ID, req.Question)
	if err != nil {
		return nil, s.handleError(ctx, "UpdateQuestion", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions)
	return &QuestionReply{Question: q}, nil
}

func (s *GRPCHandlers) DeleteQuestion(ctx context.Context, req *IDRequest) (*Empty, error) {
	if err := requireID("id", req.ID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	if err := s.catalog.DeleteQuestion(ctx, req.ID); err != nil {
		return nil, s.handleError(ctx, "DeleteQuestion", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions, service.CacheKeyScores)
	return &Empty{}, nil
}

func (s *GRPCHandlers) UpsertAnswer(ctx context.Context, req *UpsertAnswerRequest) (*AnswerReply, error) {
	if err := requireID("question_id", req.QuestionID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	a, created, err := s.catalog.UpsertAnswer(ctx, req.QuestionID, req.Answer)
	if err != nil {
		return nil, s.handleError(ctx, "UpsertAnswer", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions)
	return &AnswerReply{Answer: a, Created: created}, nil
}

func (s *GRPCHandlers) DeleteAnswer(ctx context.Context, req *DeleteAnswerRequest) (*Empty, error) {
	if err := requireID("question_id", req.QuestionID); err != nil {
		return nil, err
	}
	if err := requireID("answer_id", req.AnswerID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	if err := s.catalog.DeleteAnswer(ctx, req.QuestionID, req.AnswerID); err != nil {
		return nil, s.handleError(ctx, "DeleteAnswer", err)
	}
	cache.Invalidate(ctx, s.cache, s.logger, service.CacheKeyQuestions, service.CacheKeyScores)
	return &Empty{}, nil
}
