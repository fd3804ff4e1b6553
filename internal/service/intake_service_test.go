package service

import (
	"context"
	"encoding/json"
	"testing"

	"ref-intake-be/internal/constant"
	"ref-intake-be/internal/dto"
	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/contract"
	"ref-intake-be/internal/repository/specification"
	"ref-intake-be/internal/repository/unitofwork"
	"ref-intake-be/pkg/intake/engine"
	"ref-intake-be/pkg/intake/phrase"
	"ref-intake-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// In-memory doubles for the persistence surface. They understand just the
// specifications the intake path uses.

type fakeFormRepo struct {
	forms map[uuid.UUID]*entity.Form
}

func (r *fakeFormRepo) Create(ctx context.Context, form *entity.Form) error {
	r.forms[form.Id] = form
	return nil
}

func (r *fakeFormRepo) Update(ctx context.Context, form *entity.Form) error {
	r.forms[form.Id] = form
	return nil
}

func (r *fakeFormRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.forms, id)
	return nil
}

func (r *fakeFormRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Form, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.forms[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeFormRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Form, error) {
	out := make([]*entity.Form, 0, len(r.forms))
	for _, f := range r.forms {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFormRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.forms)), nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.IntakeSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, sess *entity.IntakeSession) error {
	r.sessions[sess.Id] = sess
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, sess *entity.IntakeSession) error {
	r.sessions[sess.Id] = sess
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IntakeSession, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.sessions[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.sessions)), nil
}

type fakeSubmissionRepo struct {
	submissions []*entity.Submission
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, sub *entity.Submission) error {
	r.submissions = append(r.submissions, sub)
	return nil
}

func (r *fakeSubmissionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Submission, error) {
	for _, spec := range specs {
		if bySession, ok := spec.(specification.BySessionID); ok {
			for _, sub := range r.submissions {
				if sub.SessionId == bySession.SessionID {
					return sub, nil
				}
			}
		}
		if byId, ok := spec.(specification.ByID); ok {
			for _, sub := range r.submissions {
				if sub.Id == byId.ID {
					return sub, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeSubmissionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Submission, error) {
	return r.submissions, nil
}

func (r *fakeSubmissionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.submissions)), nil
}

type fakeUploadRepo struct {
	uploads []*entity.Upload
}

func (r *fakeUploadRepo) Create(ctx context.Context, up *entity.Upload) error {
	r.uploads = append(r.uploads, up)
	return nil
}

func (r *fakeUploadRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error) {
	return nil, nil
}

func (r *fakeUploadRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error) {
	return r.uploads, nil
}

type fakeMessageRepo struct {
	messages []*entity.IntakeMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *entity.IntakeMessage) error {
	r.messages = append(r.messages, msg)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IntakeMessage, error) {
	return r.messages, nil
}

type fakeUow struct {
	forms       *fakeFormRepo
	sessions    *fakeSessionRepo
	submissions *fakeSubmissionRepo
	uploads     *fakeUploadRepo
	messages    *fakeMessageRepo

	commits int
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { u.commits++; return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) FormRepository() contract.FormRepository { return u.forms }
func (u *fakeUow) IntakeSessionRepository() contract.IntakeSessionRepository {
	return u.sessions
}
func (u *fakeUow) SubmissionRepository() contract.SubmissionRepository { return u.submissions }
func (u *fakeUow) UploadRepository() contract.UploadRepository         { return u.uploads }
func (u *fakeUow) IntakeMessageRepository() contract.IntakeMessageRepository {
	return u.messages
}

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeCache struct {
	sessions map[uuid.UUID]*entity.IntakeSession
}

func (c *fakeCache) Get(id uuid.UUID) (*entity.IntakeSession, bool) {
	sess, ok := c.sessions[id]
	return sess, ok
}

func (c *fakeCache) Save(sess *entity.IntakeSession) { c.sessions[sess.Id] = sess }
func (c *fakeCache) Delete(id uuid.UUID)             { delete(c.sessions, id) }

type fakePublisher struct {
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fixture struct {
	svc       IIntakeService
	form      *entity.Form
	uow       *fakeUow
	cache     *fakeCache
	publisher *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	form := &entity.Form{
		Id:                uuid.New(),
		Title:             "Reference check",
		TargetRecordCount: 1,
		Fields: []entity.FormField{
			{Id: "name", Kind: entity.FieldKindText, Label: "Name", Required: true},
			{Id: "years", Kind: entity.FieldKindNumber, Label: "Years known", Required: true},
		},
	}

	uow := &fakeUow{
		forms:       &fakeFormRepo{forms: map[uuid.UUID]*entity.Form{form.Id: form}},
		sessions:    &fakeSessionRepo{sessions: map[uuid.UUID]*entity.IntakeSession{}},
		submissions: &fakeSubmissionRepo{},
		uploads:     &fakeUploadRepo{},
		messages:    &fakeMessageRepo{},
	}
	factory := &fakeFactory{uow: uow}
	cache := &fakeCache{sessions: map[uuid.UUID]*entity.IntakeSession{}}
	publisher := &fakePublisher{}

	svc := NewIntakeService(
		factory,
		cache,
		NewFormService(factory),
		publisher,
		engine.New(phrase.Static("Got it.")),
		nopLogger{},
	)

	return &fixture{svc: svc, form: form, uow: uow, cache: cache, publisher: publisher}
}

func (f *fixture) turn(t *testing.T, sessionId *uuid.UUID, command string) *dto.TurnResponse {
	t.Helper()
	res, err := f.svc.Turn(context.Background(), &dto.TurnRequest{
		FormId:    f.form.Id,
		SessionId: sessionId,
		Command:   command,
	})
	assert.NoError(t, err)
	return res
}

func TestTurnStartCreatesSession(t *testing.T) {
	f := newFixture(t)

	res := f.turn(t, nil, "start")

	assert.Equal(t, constant.TurnTypeAsk, res.Type)
	assert.Equal(t, "name", res.FieldId)
	assert.NotEqual(t, uuid.Nil, res.SessionId)

	// Persisted in both tiers, transcript holds the exchange.
	assert.Contains(t, f.uow.sessions.sessions, res.SessionId)
	assert.Contains(t, f.cache.sessions, res.SessionId)
	assert.Len(t, f.uow.messages.messages, 2)
	assert.Equal(t, entity.MessageRoleUser, f.uow.messages.messages[0].Role)
	assert.Equal(t, entity.MessageRoleAssistant, f.uow.messages.messages[1].Role)
}

func TestTurnUnknownFormRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Turn(context.Background(), &dto.TurnRequest{
		FormId:  uuid.New(),
		Command: "start",
	})

	var notFound *dto.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestFinalizeWritesSubmissionOnceAndPublishes(t *testing.T) {
	f := newFixture(t)

	res := f.turn(t, nil, "start")
	sid := res.SessionId
	f.turn(t, &sid, "Ada Lovelace")
	review := f.turn(t, &sid, "12")
	assert.Equal(t, constant.TurnTypeReview, review.Type)

	done := f.turn(t, &sid, "submit")
	assert.Equal(t, constant.TurnTypeDone, done.Type)
	assert.Len(t, f.uow.submissions.submissions, 1)
	assert.Len(t, f.publisher.payloads, 1)

	var msg dto.SubmissionCreatedMessage
	assert.NoError(t, json.Unmarshal(f.publisher.payloads[0], &msg))
	assert.Equal(t, sid, msg.SessionId)
	assert.Equal(t, f.form.Id, msg.FormId)

	// Replaying submit changes nothing: same response, no second snapshot,
	// no second event.
	again := f.turn(t, &sid, "submit")
	assert.Equal(t, constant.TurnTypeDone, again.Type)
	assert.Equal(t, done.Message, again.Message)
	assert.Len(t, f.uow.submissions.submissions, 1)
	assert.Len(t, f.publisher.payloads, 1)
}

func TestSubmittedSessionReplayIsReadOnly(t *testing.T) {
	f := newFixture(t)

	res := f.turn(t, nil, "start")
	sid := res.SessionId
	f.turn(t, &sid, "Ada Lovelace")
	f.turn(t, &sid, "12")
	done := f.turn(t, &sid, "submit")

	msgs := len(f.uow.messages.messages)
	commits := f.uow.commits

	// Turns after submission only re-read; no transcript rows, no commits.
	for _, command := range []string{"submit", "restart", "another answer"} {
		again := f.turn(t, &sid, command)
		assert.Equal(t, constant.TurnTypeDone, again.Type)
		assert.Equal(t, done.Message, again.Message)
	}
	assert.Len(t, f.uow.messages.messages, msgs)
	assert.Equal(t, commits, f.uow.commits)
}

func TestLiveSessionWinsOverRecoverySnapshot(t *testing.T) {
	f := newFixture(t)

	res := f.turn(t, nil, "start")
	sid := res.SessionId
	f.turn(t, &sid, "Ada Lovelace")

	// A stale client snapshot claims nothing was answered.
	snapshot, _ := json.Marshal(store.NewEngineState())
	resp, err := f.svc.Turn(context.Background(), &dto.TurnRequest{
		FormId:    f.form.Id,
		SessionId: &sid,
		Command:   "start",
		Recovery:  &dto.RecoverySnapshot{FieldCursor: 0, State: snapshot},
	})
	assert.NoError(t, err)

	// Still on the second field; the server record was not overwritten.
	assert.Equal(t, "years", resp.FieldId)
	assert.Equal(t, "Ada Lovelace", f.uow.sessions.sessions[sid].State.Draft["name"])
}

func TestRecoverySnapshotRestoresLostSession(t *testing.T) {
	f := newFixture(t)
	lostId := uuid.New()

	st := store.NewEngineState()
	st.Draft["name"] = "Ada Lovelace"
	st.Draft["ghost_field"] = "dropped on sanitize"
	snapshot, _ := json.Marshal(st)

	resp, err := f.svc.Turn(context.Background(), &dto.TurnRequest{
		FormId:    f.form.Id,
		SessionId: &lostId,
		Command:   "start",
		Recovery:  &dto.RecoverySnapshot{FieldCursor: 1, State: snapshot},
	})
	assert.NoError(t, err)

	assert.Equal(t, lostId, resp.SessionId)
	assert.Equal(t, "years", resp.FieldId)

	rebuilt := f.uow.sessions.sessions[lostId]
	assert.Equal(t, "Ada Lovelace", rebuilt.State.Draft["name"])
	assert.NotContains(t, rebuilt.State.Draft, "ghost_field")
}

func TestRecoverySnapshotWithFullCommittedDropsDraft(t *testing.T) {
	f := newFixture(t)
	lostId := uuid.New()

	// The snapshot already holds every target record plus a leftover draft;
	// honoring the draft would push the session past the target on commit.
	st := store.NewEngineState()
	st.Committed = []store.Record{{"name": "Ada Lovelace", "years": float64(12)}}
	st.Draft["name"] = "Second Person"
	snapshot, _ := json.Marshal(st)

	resp, err := f.svc.Turn(context.Background(), &dto.TurnRequest{
		FormId:    f.form.Id,
		SessionId: &lostId,
		Command:   "start",
		Recovery:  &dto.RecoverySnapshot{FieldCursor: 1, State: snapshot},
	})
	assert.NoError(t, err)

	// The rebuilt session lands on review with the draft gone.
	assert.Equal(t, constant.TurnTypeReview, resp.Type)
	rebuilt := f.uow.sessions.sessions[lostId]
	assert.Empty(t, rebuilt.State.Draft)

	done := f.turn(t, &lostId, "submit")
	assert.Equal(t, constant.TurnTypeDone, done.Type)
	assert.Len(t, f.uow.submissions.submissions, 1)
	assert.Len(t, f.uow.submissions.submissions[0].State.Committed, 1)
}

func TestLostSessionWithoutSnapshotStartsFresh(t *testing.T) {
	f := newFixture(t)
	lostId := uuid.New()

	resp, err := f.svc.Turn(context.Background(), &dto.TurnRequest{
		FormId:    f.form.Id,
		SessionId: &lostId,
		Command:   "start",
	})
	assert.NoError(t, err)

	assert.Equal(t, lostId, resp.SessionId)
	assert.Equal(t, "name", resp.FieldId)
	assert.Equal(t, 0, resp.Progress.Done)
}

func TestUploadAckRecordsMetadataAndAdvances(t *testing.T) {
	f := newFixture(t)
	f.form.Fields = []entity.FormField{
		{Id: "name", Kind: entity.FieldKindText, Label: "Name", Required: true},
		{Id: "photo", Kind: entity.FieldKindFile, Label: "Photo", Required: true},
	}

	res := f.turn(t, nil, "start")
	sid := res.SessionId
	f.turn(t, &sid, "Ada Lovelace")

	ack, err := f.svc.UploadAck(context.Background(), &dto.UploadAckRequest{
		FormId:    f.form.Id,
		SessionId: sid,
		FieldId:   "photo",
		File: dto.UploadMetadata{
			OriginalName: "ada.png",
			Mime:         "image/png",
			SizeBytes:    2048,
		},
	})
	assert.NoError(t, err)

	assert.Equal(t, constant.TurnTypeReview, ack.Type)
	assert.Len(t, f.uow.uploads.uploads, 1)
	assert.Equal(t, "ada.png", f.uow.uploads.uploads[0].OriginalName)
}

func TestUploadAckUnknownSessionRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UploadAck(context.Background(), &dto.UploadAckRequest{
		FormId:    f.form.Id,
		SessionId: uuid.New(),
		FieldId:   "photo",
		File:      dto.UploadMetadata{OriginalName: "ada.png"},
	})

	var notFound *dto.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
