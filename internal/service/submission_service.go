package service

import (
	"context"

	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/repository/specification"
	"ref-intake-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISubmissionService interface {
	GetAll(ctx context.Context, formId *uuid.UUID, limit, offset int) ([]*dto.SubmissionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SubmissionResponse, error)
	Transcript(ctx context.Context, sessionId uuid.UUID) ([]*dto.TranscriptMessageResponse, error)
}

type submissionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSubmissionService(uowFactory unitofwork.RepositoryFactory) ISubmissionService {
	return &submissionService{uowFactory: uowFactory}
}

func (s *submissionService) GetAll(ctx context.Context, formId *uuid.UUID, limit, offset int) ([]*dto.SubmissionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if formId != nil {
		specs = append(specs, specification.ByFormID{FormID: *formId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	submissions, err := uow.SubmissionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		result = append(result, &dto.SubmissionResponse{
			Id:        sub.Id,
			SessionId: sub.SessionId,
			FormId:    sub.FormId,
			Records:   sub.State.Committed,
			CreatedAt: sub.CreatedAt,
		})
	}
	return result, nil
}

func (s *submissionService) Show(ctx context.Context, id uuid.UUID) (*dto.SubmissionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubmissionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, &dto.NotFoundError{Resource: "submission"}
	}

	return &dto.SubmissionResponse{
		Id:        sub.Id,
		SessionId: sub.SessionId,
		FormId:    sub.FormId,
		Records:   sub.State.Committed,
		CreatedAt: sub.CreatedAt,
	}, nil
}

func (s *submissionService) Transcript(ctx context.Context, sessionId uuid.UUID) ([]*dto.TranscriptMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.IntakeMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TranscriptMessageResponse, 0, len(messages))
	for _, msg := range messages {
		result = append(result, &dto.TranscriptMessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Body:      msg.Body,
			CreatedAt: msg.CreatedAt,
		})
	}
	return result, nil
}
