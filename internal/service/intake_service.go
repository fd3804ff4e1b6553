package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ref-intake-be/internal/constant"
	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/pkg/logger"
	"ref-intake-be/internal/repository/contract"
	"ref-intake-be/internal/repository/specification"
	"ref-intake-be/internal/repository/unitofwork"
	"ref-intake-be/pkg/intake/engine"
	"ref-intake-be/pkg/store"

	"github.com/google/uuid"
)

type IIntakeService interface {
	// Turn applies one user turn and returns the next prompt, the review
	// payload or the terminal done message.
	Turn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error)

	// UploadAck feeds the file subsystem's stored-file callback into the
	// session as if the user had answered the pending file field.
	UploadAck(ctx context.Context, req *dto.UploadAckRequest) (*dto.TurnResponse, error)
}

type intakeService struct {
	uowFactory       unitofwork.RepositoryFactory
	cache            contract.SessionCache
	formService      IFormService
	publisherService IPublisherService
	engine           *engine.Engine
	logger           logger.ILogger
}

func NewIntakeService(
	uowFactory unitofwork.RepositoryFactory,
	cache contract.SessionCache,
	formService IFormService,
	publisherService IPublisherService,
	eng *engine.Engine,
	log logger.ILogger,
) IIntakeService {
	return &intakeService{
		uowFactory:       uowFactory,
		cache:            cache,
		formService:      formService,
		publisherService: publisherService,
		engine:           eng,
		logger:           log,
	}
}

func classifyCommand(raw string) engine.Input {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constant.CommandStart:
		return engine.Input{Command: engine.CmdStart}
	case constant.CommandBack:
		return engine.Input{Command: engine.CmdBack}
	case constant.CommandRestart:
		return engine.Input{Command: engine.CmdRestart}
	case constant.CommandSubmit:
		return engine.Input{Command: engine.CmdSubmit}
	default:
		return engine.Input{Command: engine.CmdAnswer, Text: raw}
	}
}

func (s *intakeService) Turn(ctx context.Context, req *dto.TurnRequest) (*dto.TurnResponse, error) {
	form, err := s.formService.LoadSpec(ctx, req.FormId)
	if err != nil {
		return nil, err
	}

	sess, created, err := s.resolveSession(ctx, form, req.SessionId, req.Recovery)
	if err != nil {
		return nil, err
	}

	res := s.engine.Step(form, sess, classifyCommand(req.Command))

	// A submitted session is frozen; replayed turns against it write nothing.
	if res.Phase == store.PhaseSubmitted && !res.Finalized {
		return s.toTurnResponse(sess, res), nil
	}

	if err := s.persistTurn(ctx, form, sess, created, req.Command, res); err != nil {
		return nil, err
	}

	return s.toTurnResponse(sess, res), nil
}

func (s *intakeService) UploadAck(ctx context.Context, req *dto.UploadAckRequest) (*dto.TurnResponse, error) {
	form, err := s.formService.LoadSpec(ctx, req.FormId)
	if err != nil {
		return nil, err
	}

	sess, err := s.loadSession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, &dto.NotFoundError{Resource: "session"}
	}
	if sess.FormId != form.Id {
		return nil, &dto.ConflictError{Reason: "session does not belong to this form"}
	}

	fileId := uuid.New()
	if req.File.FileId != nil {
		fileId = *req.File.FileId
	}

	// The file subsystem already stored the bytes; record the metadata row
	// regardless of whether the engine accepts the ack.
	upload := &entity.Upload{
		Id:           fileId,
		SessionId:    sess.Id,
		OriginalName: req.File.OriginalName,
		Mime:         req.File.Mime,
		SizeBytes:    req.File.SizeBytes,
		CreatedAt:    time.Now(),
	}

	in := engine.Input{
		Command: engine.CmdUploadAck,
		Upload: &store.FileValue{
			FileId:    fileId.String(),
			Name:      req.File.OriginalName,
			Mime:      req.File.Mime,
			SizeBytes: req.File.SizeBytes,
		},
		UploadFieldId: req.FieldId,
	}
	res := s.engine.Step(form, sess, in)

	// Acks arriving after submission are answered but not recorded; the
	// session row and transcript are frozen.
	if res.Phase == store.PhaseSubmitted && !res.Finalized {
		return s.toTurnResponse(sess, res), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UploadRepository().Create(ctx, upload); err != nil {
		return nil, err
	}
	if err := uow.IntakeSessionRepository().Update(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.appendTranscript(ctx, uow, sess.Id, "[file] "+req.File.OriginalName, res.Message); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Save(sess)
	return s.toTurnResponse(sess, res), nil
}

// resolveSession finds the session to run the turn against: cache, then DB,
// then the client's recovery snapshot, then a fresh session. The snapshot is
// honored only when the server has genuinely lost the record; a live session
// always wins over whatever the client is holding.
func (s *intakeService) resolveSession(ctx context.Context, form *entity.Form, id *uuid.UUID, recovery *dto.RecoverySnapshot) (*entity.IntakeSession, bool, error) {
	if id == nil {
		return entity.NewIntakeSession(form.Id), true, nil
	}

	sess, err := s.loadSession(ctx, *id)
	if err != nil {
		return nil, false, err
	}
	if sess != nil {
		if sess.FormId != form.Id {
			return nil, false, &dto.ConflictError{Reason: "session does not belong to this form"}
		}
		return sess, false, nil
	}

	if recovery != nil {
		s.logger.Info("intake", "rebuilding lost session from recovery snapshot", map[string]interface{}{
			"session_id": id.String(),
		})
		return rebuildFromSnapshot(form, *id, recovery), true, nil
	}

	fresh := entity.NewIntakeSession(form.Id)
	fresh.Id = *id
	return fresh, true, nil
}

func (s *intakeService) loadSession(ctx context.Context, id uuid.UUID) (*entity.IntakeSession, error) {
	if sess, ok := s.cache.Get(id); ok {
		return sess, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.IntakeSessionRepository().FindOne(ctx, specification.ByID{ID: id})
}

// rebuildFromSnapshot sanitizes a client-held snapshot before trusting it:
// unknown draft keys are dropped, the committed list is truncated to the
// target, a draft alongside a full committed list is discarded and the
// cursor clamped into the field range.
func rebuildFromSnapshot(form *entity.Form, id uuid.UUID, recovery *dto.RecoverySnapshot) *entity.IntakeSession {
	sess := entity.NewIntakeSession(form.Id)
	sess.Id = id

	var st store.EngineState
	if err := json.Unmarshal(recovery.State, &st); err == nil {
		if st.Committed == nil {
			st.Committed = []store.Record{}
		}
		if len(st.Committed) > form.TargetRecordCount {
			st.Committed = st.Committed[:form.TargetRecordCount]
		}
		if st.Draft == nil {
			st.Draft = store.Record{}
		}
		known := make(map[string]bool, len(form.Fields))
		for _, f := range form.Fields {
			known[f.Id] = true
		}
		for k := range st.Draft {
			if !known[k] {
				delete(st.Draft, k)
			}
		}
		// A full committed list leaves no slot for a draft; committing one
		// would push the session past the target.
		if len(st.Committed) >= form.TargetRecordCount {
			st.Draft = store.Record{}
		}
		sess.State = &st
	}

	cursor := recovery.FieldCursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(form.Fields) {
		cursor = len(form.Fields) - 1
	}
	sess.FieldCursor = cursor

	return sess
}

func (s *intakeService) persistTurn(ctx context.Context, form *entity.Form, sess *entity.IntakeSession, created bool, userBody string, res engine.Result) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	var err error
	if created {
		err = uow.IntakeSessionRepository().Create(ctx, sess)
	} else {
		err = uow.IntakeSessionRepository().Update(ctx, sess)
	}
	if err != nil {
		return err
	}

	if err := s.appendTranscript(ctx, uow, sess.Id, userBody, res.Message); err != nil {
		return err
	}

	var submission *entity.Submission
	if res.Finalized {
		submission, err = s.finalize(ctx, uow, form, sess)
		if err != nil {
			return err
		}
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.Save(sess)

	if submission != nil {
		s.announce(ctx, submission)
	}
	return nil
}

// finalize writes the submission snapshot. The lookup keeps the operation
// idempotent across retried turns; the unique index on session_id is the
// backstop for two instances racing past the lookup.
func (s *intakeService) finalize(ctx context.Context, uow unitofwork.UnitOfWork, form *entity.Form, sess *entity.IntakeSession) (*entity.Submission, error) {
	existing, err := uow.SubmissionRepository().FindOne(ctx, specification.BySessionID{SessionID: sess.Id})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	submission := &entity.Submission{
		Id:        uuid.New(),
		SessionId: sess.Id,
		FormId:    form.Id,
		State:     sess.State.Clone(),
		CreatedAt: time.Now(),
	}
	if err := uow.SubmissionRepository().Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *intakeService) announce(ctx context.Context, submission *entity.Submission) {
	payload, err := json.Marshal(dto.SubmissionCreatedMessage{
		SubmissionId: submission.Id,
		SessionId:    submission.SessionId,
		FormId:       submission.FormId,
	})
	if err != nil {
		return
	}

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("intake", "failed to publish submission event", map[string]interface{}{
			"submission_id": submission.Id.String(),
			"error":         err.Error(),
		})
	}
}

func (s *intakeService) appendTranscript(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, userBody, assistantBody string) error {
	now := time.Now()
	userMsg := &entity.IntakeMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      entity.MessageRoleUser,
		Body:      userBody,
		CreatedAt: now,
	}
	if err := uow.IntakeMessageRepository().Create(ctx, userMsg); err != nil {
		return err
	}

	assistantMsg := &entity.IntakeMessage{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      entity.MessageRoleAssistant,
		Body:      assistantBody,
		CreatedAt: now.Add(time.Millisecond),
	}
	return uow.IntakeMessageRepository().Create(ctx, assistantMsg)
}

func (s *intakeService) toTurnResponse(sess *entity.IntakeSession, res engine.Result) *dto.TurnResponse {
	resp := &dto.TurnResponse{
		SessionId: sess.Id,
		Message:   res.Message,
	}

	switch res.Phase {
	case store.PhaseReviewing:
		resp.Type = constant.TurnTypeReview
		resp.Records = res.Records
		order := make([]dto.FieldLabelDTO, 0, len(res.FieldOrder))
		for _, fl := range res.FieldOrder {
			order = append(order, dto.FieldLabelDTO{Id: fl.Id, Label: fl.Label})
		}
		resp.FieldOrder = order
		resp.Progress = &dto.ProgressDTO{Done: res.Progress.Done, Total: res.Progress.Total}
	case store.PhaseSubmitted:
		resp.Type = constant.TurnTypeDone
	default:
		resp.Type = constant.TurnTypeAsk
		resp.FieldId = res.FieldId
		resp.InputHint = res.InputHint
		resp.Progress = &dto.ProgressDTO{Done: res.Progress.Done, Total: res.Progress.Total}
	}
	return resp
}
