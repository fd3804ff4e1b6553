package engine

import (
	"testing"

	"ref-intake-be/internal/entity"
	"ref-intake-be/pkg/intake/phrase"
	"ref-intake-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func twoFieldForm(target int) *entity.Form {
	return &entity.Form{
		TargetRecordCount: target,
		Fields: []entity.FormField{
			{Id: "name", Kind: entity.FieldKindText, Label: "Name", Required: true},
			{Id: "years", Kind: entity.FieldKindNumber, Label: "Years known", Required: true},
		},
	}
}

func fileForm() *entity.Form {
	return &entity.Form{
		TargetRecordCount: 1,
		Fields: []entity.FormField{
			{Id: "name", Kind: entity.FieldKindText, Label: "Name", Required: true},
			{Id: "photo", Kind: entity.FieldKindFile, Label: "Photo", Required: true},
		},
	}
}

func newEngine() *Engine {
	return New(phrase.Static("Got it."))
}

func answer(text string) Input {
	return Input{Command: CmdAnswer, Text: text}
}

func TestFullWalkthroughTwoRecords(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(2)
	sess := entity.NewIntakeSession(form.Id)

	// Opening prompt names the record position.
	res := eng.Step(form, sess, Input{Command: CmdStart})
	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Equal(t, "name", res.FieldId)
	assert.Contains(t, res.Message, "Record 1 of 2.")
	assert.Equal(t, 0, res.Progress.Done)
	assert.Equal(t, 4, res.Progress.Total)

	// First field moves the cursor, not the committed count.
	res = eng.Step(form, sess, answer("Ada Lovelace"))
	assert.Equal(t, "years", res.FieldId)
	assert.Contains(t, res.Message, "Got it.")
	assert.Equal(t, 1, res.Progress.Done)
	assert.Equal(t, "Ada Lovelace", sess.State.Draft["name"])

	// Last field of the record commits it and opens record 2.
	res = eng.Step(form, sess, answer("12"))
	assert.Equal(t, "name", res.FieldId)
	assert.Contains(t, res.Message, "Record 2 of 2.")
	assert.Len(t, sess.State.Committed, 1)
	assert.Empty(t, sess.State.Draft)
	assert.Equal(t, 2, res.Progress.Done)

	eng.Step(form, sess, answer("Grace Hopper"))
	res = eng.Step(form, sess, answer("8"))

	// All records in: review.
	assert.Equal(t, store.PhaseReviewing, res.Phase)
	assert.Contains(t, res.Message, "Here is everything you've entered:")
	assert.Contains(t, res.Message, "Ada Lovelace")
	assert.Contains(t, res.Message, "Grace Hopper")
	assert.Len(t, res.Records, 2)
	assert.Len(t, res.FieldOrder, 2)
	assert.False(t, res.Finalized)

	// Submit finalizes exactly once.
	res = eng.Step(form, sess, Input{Command: CmdSubmit})
	assert.Equal(t, store.PhaseSubmitted, res.Phase)
	assert.True(t, res.Finalized)
	assert.Contains(t, res.Message, "All done, thank you!")
	assert.Equal(t, entity.SessionStatusSubmitted, sess.Status)
}

func TestValidationFailureKeepsCursorAndState(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(1)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	before := sess.State.Clone()

	res := eng.Step(form, sess, answer("not a number"))
	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Equal(t, "years", res.FieldId)
	assert.Contains(t, res.Message, "not a number")
	assert.Equal(t, 1, sess.FieldCursor)
	assert.Equal(t, before, sess.State)

	// The corrective answer lands normally afterwards.
	res = eng.Step(form, sess, answer("5"))
	assert.Equal(t, store.PhaseReviewing, res.Phase)
}

func TestBackWithinRecordForgetsAnswer(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(1)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	res := eng.Step(form, sess, Input{Command: CmdBack})

	assert.Equal(t, "name", res.FieldId)
	assert.Equal(t, 0, sess.FieldCursor)
	assert.NotContains(t, sess.State.Draft, "name")
}

func TestBackFromReviewReopensLastRecord(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(1)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	eng.Step(form, sess, answer("12"))
	assert.Len(t, sess.State.Committed, 1)

	res := eng.Step(form, sess, Input{Command: CmdBack})

	// The last record is back in the draft with its last field cleared and
	// re-asked.
	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Equal(t, "years", res.FieldId)
	assert.Empty(t, sess.State.Committed)
	assert.Equal(t, "Ada", sess.State.Draft["name"])
	assert.NotContains(t, sess.State.Draft, "years")
	assert.Equal(t, 1, sess.FieldCursor)

	// back is a left-inverse of answer: re-answering restores review.
	res = eng.Step(form, sess, answer("12"))
	assert.Equal(t, store.PhaseReviewing, res.Phase)
}

func TestBackAtRecordBoundaryReopensPreviousRecord(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(2)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ann"))
	res := eng.Step(form, sess, answer("5"))
	assert.Contains(t, res.Message, "Record 2 of 2.")
	assert.Len(t, sess.State.Committed, 1)
	assert.Equal(t, 0, sess.FieldCursor)

	// Backing out of record 2's first field pops record 1 into the draft
	// with its last field cleared and re-asked.
	res = eng.Step(form, sess, Input{Command: CmdBack})

	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Equal(t, "years", res.FieldId)
	assert.Empty(t, sess.State.Committed)
	assert.Equal(t, store.Record{"name": "Ann"}, sess.State.Draft)
	assert.Equal(t, 1, sess.FieldCursor)
	assert.Equal(t, 1, res.Progress.Done)
	assert.Equal(t, 4, res.Progress.Total)
}

func TestBackAtStartIsNoop(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(1)
	sess := entity.NewIntakeSession(form.Id)

	res := eng.Step(form, sess, Input{Command: CmdBack})
	assert.Equal(t, "name", res.FieldId)
	assert.Equal(t, 0, sess.FieldCursor)
	assert.Empty(t, sess.State.Committed)
}

func TestRestartClearsEverything(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(2)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	eng.Step(form, sess, answer("12"))
	eng.Step(form, sess, answer("Grace"))

	res := eng.Step(form, sess, Input{Command: CmdRestart})
	assert.Equal(t, "name", res.FieldId)
	assert.Contains(t, res.Message, "Record 1 of 2.")
	assert.Empty(t, sess.State.Committed)
	assert.Empty(t, sess.State.Draft)
	assert.Equal(t, 0, sess.FieldCursor)
}

func TestPrematureSubmitRepromptsPendingField(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(2)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	res := eng.Step(form, sess, Input{Command: CmdSubmit})

	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Contains(t, res.Message, "Not everything is filled in yet. ")
	assert.Equal(t, "years", res.FieldId)
	assert.False(t, res.Finalized)
}

func TestSubmitCommitsCompleteFinalDraft(t *testing.T) {
	eng := newEngine()
	form := &entity.Form{
		TargetRecordCount: 1,
		Fields: []entity.FormField{
			{Id: "name", Kind: entity.FieldKindText, Label: "Name", Required: true},
			{Id: "note", Kind: entity.FieldKindText, Label: "Note"},
		},
	}
	sess := entity.NewIntakeSession(form.Id)

	// The required field is in the draft; the optional one is pending.
	eng.Step(form, sess, answer("Ada"))
	res := eng.Step(form, sess, Input{Command: CmdSubmit})

	assert.Equal(t, store.PhaseSubmitted, res.Phase)
	assert.True(t, res.Finalized)
	assert.Len(t, sess.State.Committed, 1)
}

func TestSubmittedSessionIsTerminal(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(1)
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	eng.Step(form, sess, answer("12"))
	first := eng.Step(form, sess, Input{Command: CmdSubmit})
	assert.True(t, first.Finalized)

	// Every later turn, restart included, replays done without finalizing
	// again.
	for _, in := range []Input{
		{Command: CmdSubmit},
		{Command: CmdRestart},
		{Command: CmdBack},
		answer("something"),
	} {
		res := eng.Step(form, sess, in)
		assert.Equal(t, store.PhaseSubmitted, res.Phase)
		assert.Equal(t, first.Message, res.Message)
		assert.False(t, res.Finalized)
	}
	assert.Len(t, sess.State.Committed, 1)
}

func TestUploadAckFillsPendingFileField(t *testing.T) {
	eng := newEngine()
	form := fileForm()
	sess := entity.NewIntakeSession(form.Id)

	eng.Step(form, sess, answer("Ada"))
	res := eng.Step(form, sess, Input{
		Command:       CmdUploadAck,
		Upload:        &store.FileValue{FileId: "f1", Name: "ada.png", Mime: "image/png", SizeBytes: 100},
		UploadFieldId: "photo",
	})

	assert.Equal(t, store.PhaseReviewing, res.Phase)
	fv, ok := store.AsFileValue(sess.State.Committed[0]["photo"])
	assert.True(t, ok)
	assert.Equal(t, "ada.png", fv.Name)
}

func TestStaleUploadAckIsIgnored(t *testing.T) {
	eng := newEngine()
	form := fileForm()
	sess := entity.NewIntakeSession(form.Id)

	// Pending field is "name", not the file field.
	res := eng.Step(form, sess, Input{
		Command:       CmdUploadAck,
		Upload:        &store.FileValue{FileId: "f1", Name: "ada.png"},
		UploadFieldId: "photo",
	})

	assert.Equal(t, store.PhaseCollecting, res.Phase)
	assert.Equal(t, "name", res.FieldId)
	assert.Empty(t, sess.State.Draft)

	// Mismatched field id while a file field is pending is ignored too.
	eng.Step(form, sess, answer("Ada"))
	res = eng.Step(form, sess, Input{
		Command:       CmdUploadAck,
		Upload:        &store.FileValue{FileId: "f1", Name: "ada.png"},
		UploadFieldId: "other",
	})
	assert.Equal(t, "photo", res.FieldId)
	assert.NotContains(t, sess.State.Draft, "photo")
}

func TestChoicePromptEnumeratesOptions(t *testing.T) {
	eng := newEngine()
	form := &entity.Form{
		TargetRecordCount: 1,
		Fields: []entity.FormField{
			{Id: "rel", Kind: entity.FieldKindChoice, Label: "Relationship", Options: []string{"Friend", "Colleague"}},
		},
	}
	sess := entity.NewIntakeSession(form.Id)

	res := eng.Step(form, sess, Input{Command: CmdStart})
	assert.Contains(t, res.Message, "1) Friend")
	assert.Contains(t, res.Message, "2) Colleague")
	assert.Equal(t, "choice", res.InputHint)
}

func TestEmailFieldHint(t *testing.T) {
	eng := newEngine()
	form := &entity.Form{
		TargetRecordCount: 1,
		Fields: []entity.FormField{
			{Id: "email", Kind: entity.FieldKindText, Label: "Email", IsEmail: true},
		},
	}
	sess := entity.NewIntakeSession(form.Id)

	res := eng.Step(form, sess, Input{Command: CmdStart})
	assert.Equal(t, "email", res.InputHint)
}

func TestSingleRecordFormSkipsRecordPrefix(t *testing.T) {
	eng := newEngine()
	form := twoFieldForm(1)
	sess := entity.NewIntakeSession(form.Id)

	res := eng.Step(form, sess, Input{Command: CmdStart})
	assert.NotContains(t, res.Message, "Record 1 of")
}
