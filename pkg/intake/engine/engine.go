// Package engine is the session state machine: it decides what to ask next,
// applies answers and upload acknowledgments, walks backward, detects
// completion and produces the review and terminal payloads. It mutates only
// the session passed in; persistence, transcripts and event publishing are
// the caller's business.
package engine

import (
	"fmt"
	"strings"

	"ref-intake-be/internal/entity"
	"ref-intake-be/pkg/intake/phrase"
	"ref-intake-be/pkg/intake/progress"
	"ref-intake-be/pkg/intake/summary"
	"ref-intake-be/pkg/intake/validate"
	"ref-intake-be/pkg/store"
)

type CommandKind int

const (
	CmdStart CommandKind = iota
	CmdAnswer
	CmdBack
	CmdRestart
	CmdSubmit
	CmdUploadAck
)

// Input is one classified user turn.
type Input struct {
	Command       CommandKind
	Text          string
	Upload        *store.FileValue
	UploadFieldId string
}

// Result is the outgoing side of a turn. Phase is one of the store.Phase
// constants; Records and FieldOrder are only populated for the review phase.
type Result struct {
	Phase      string
	FieldId    string
	Message    string
	InputHint  string
	Progress   progress.Progress
	Records    []store.Record
	FieldOrder []summary.FieldLabel

	// Finalized is true on the single turn that crossed into the submitted
	// phase. The caller writes the Submission snapshot on that turn only.
	Finalized bool
}

type Engine struct {
	phrases phrase.Picker
}

func New(phrases phrase.Picker) *Engine {
	return &Engine{phrases: phrases}
}

// Step applies one turn to the session. Validation failures produce a
// corrective Result at the same cursor with no state mutation.
func (e *Engine) Step(form *entity.Form, sess *entity.IntakeSession, in Input) Result {
	if sess.Status == entity.SessionStatusSubmitted {
		// Terminal. Every command, restart included, replays the same
		// response; nothing mutates anymore.
		return e.done(form, sess, false)
	}

	switch in.Command {
	case CmdBack:
		return e.back(form, sess)
	case CmdRestart:
		sess.State.Committed = []store.Record{}
		sess.State.Draft = store.Record{}
		sess.FieldCursor = 0
		return e.prompt(form, sess, "")
	case CmdSubmit:
		return e.submit(form, sess)
	case CmdUploadAck:
		return e.uploadAck(form, sess, in)
	case CmdAnswer:
		return e.answer(form, sess, in.Text)
	default: // CmdStart resumes wherever the session stands
		return e.prompt(form, sess, "")
	}
}

func (e *Engine) reviewing(form *entity.Form, sess *entity.IntakeSession) bool {
	return len(sess.State.Committed) >= form.TargetRecordCount && len(sess.State.Draft) == 0
}

func (e *Engine) answer(form *entity.Form, sess *entity.IntakeSession, text string) Result {
	if e.reviewing(form, sess) {
		return e.review(form, sess)
	}

	field := form.FieldAt(sess.FieldCursor)
	if field == nil {
		return e.review(form, sess)
	}

	value, err := validate.Field(field, text)
	if err != nil {
		// Stay on the same field, surface the corrective message, touch
		// nothing.
		return Result{
			Phase:     store.PhaseCollecting,
			FieldId:   field.Id,
			Message:   err.Error(),
			InputHint: hintFor(field),
			Progress:  progress.Compute(form, len(sess.State.Committed), sess.FieldCursor),
		}
	}

	sess.State.Draft[field.Id] = value
	return e.advance(form, sess)
}

func (e *Engine) uploadAck(form *entity.Form, sess *entity.IntakeSession, in Input) Result {
	field := form.FieldAt(sess.FieldCursor)
	if field == nil || field.Kind != entity.FieldKindFile ||
		in.Upload == nil || in.UploadFieldId != field.Id {
		// Stale or mismatched ack: silently re-derive the current prompt.
		return e.prompt(form, sess, "")
	}

	sess.State.Draft[field.Id] = *in.Upload
	return e.advance(form, sess)
}

// advance moves past the field just answered: next field of the same record,
// or commit and start the next record, or hand over to review.
func (e *Engine) advance(form *entity.Form, sess *entity.IntakeSession) Result {
	st := sess.State

	if sess.FieldCursor+1 < len(form.Fields) {
		sess.FieldCursor++
		return e.prompt(form, sess, e.ack(form, st.Draft))
	}

	st.Committed = append(st.Committed, st.Draft)
	st.Draft = store.Record{}
	sess.FieldCursor = 0

	if len(st.Committed) < form.TargetRecordCount {
		return e.prompt(form, sess, e.ack(form, nil))
	}
	return e.review(form, sess)
}

func (e *Engine) back(form *entity.Form, sess *entity.IntakeSession) Result {
	st := sess.State

	if e.reviewing(form, sess) || sess.FieldCursor == 0 {
		if len(st.Committed) == 0 {
			// Nothing behind us; settle on the initial prompt.
			st.Draft = store.Record{}
			sess.FieldCursor = 0
			return e.prompt(form, sess, "")
		}
		// Pop the last committed record back into the draft and re-ask its
		// last field.
		last := st.Committed[len(st.Committed)-1]
		st.Committed = st.Committed[:len(st.Committed)-1]
		st.Draft = last
		sess.FieldCursor = len(form.Fields) - 1
		delete(st.Draft, form.Fields[sess.FieldCursor].Id)
		return e.prompt(form, sess, "")
	}

	prev := form.Fields[sess.FieldCursor-1]
	delete(st.Draft, prev.Id)
	sess.FieldCursor--
	return e.prompt(form, sess, "")
}

func (e *Engine) submit(form *entity.Form, sess *entity.IntakeSession) Result {
	st := sess.State

	if !e.reviewing(form, sess) {
		// Safety net: when exactly one record is outstanding and the draft
		// already satisfies every required field, commit it opportunistically
		// instead of rejecting the call.
		if len(st.Committed) == form.TargetRecordCount-1 && draftComplete(form, st.Draft) {
			st.Committed = append(st.Committed, st.Draft)
			st.Draft = store.Record{}
			sess.FieldCursor = 0
		} else {
			return e.prompt(form, sess, "Not everything is filled in yet. ")
		}
	}

	sess.Status = entity.SessionStatusSubmitted
	return e.done(form, sess, true)
}

func draftComplete(form *entity.Form, draft store.Record) bool {
	for _, f := range form.Fields {
		if _, ok := draft[f.Id]; !ok && f.Required {
			return false
		}
	}
	return true
}

// prompt re-derives the outward response for wherever the session currently
// stands: the pending field, or the review block when all records are in.
func (e *Engine) prompt(form *entity.Form, sess *entity.IntakeSession, prefix string) Result {
	if e.reviewing(form, sess) {
		return e.review(form, sess)
	}

	field := form.FieldAt(sess.FieldCursor)
	if field == nil {
		return e.review(form, sess)
	}

	msg := prefix + promptFor(form, field, len(sess.State.Committed), sess.FieldCursor)
	return Result{
		Phase:     store.PhaseCollecting,
		FieldId:   field.Id,
		Message:   msg,
		InputHint: hintFor(field),
		Progress:  progress.Compute(form, len(sess.State.Committed), sess.FieldCursor),
	}
}

func (e *Engine) review(form *entity.Form, sess *entity.IntakeSession) Result {
	text := summary.Build(form, sess.State.Committed)
	return Result{
		Phase: store.PhaseReviewing,
		Message: "Here is everything you've entered:\n\n" + text +
			"\n\nReply \"submit\" to finish, or \"back\" to make changes.",
		Progress:   progress.Compute(form, len(sess.State.Committed), sess.FieldCursor),
		Records:    sess.State.Committed,
		FieldOrder: summary.FieldOrder(form),
	}
}

// done renders the terminal response. It is replayed verbatim on every turn
// after submission.
func (e *Engine) done(form *entity.Form, sess *entity.IntakeSession, finalized bool) Result {
	text := summary.Build(form, sess.State.Committed)
	return Result{
		Phase:     store.PhaseSubmitted,
		Message:   "All done, thank you! Here is what was submitted:\n\n" + text,
		Finalized: finalized,
	}
}

// ack builds the acknowledgment prefix for a forward transition,
// personalized with the first token of a name-like draft value when present.
func (e *Engine) ack(form *entity.Form, draft store.Record) string {
	name := ""
	if draft != nil {
		for _, id := range []string{"name", "full_name", "first_name"} {
			if v, ok := draft[id].(string); ok {
				if tokens := strings.Fields(v); len(tokens) > 0 {
					name = tokens[0]
					break
				}
			}
		}
	}
	return e.phrases.Ack(name) + " "
}

func promptFor(form *entity.Form, field *entity.FormField, committed, cursor int) string {
	var b strings.Builder
	if cursor == 0 && form.TargetRecordCount > 1 {
		fmt.Fprintf(&b, "Record %d of %d. ", committed+1, form.TargetRecordCount)
	}

	switch field.Kind {
	case entity.FieldKindChoice:
		fmt.Fprintf(&b, "%s. Pick one of: ", field.Label)
		for i, opt := range field.Options {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d) %s", i+1, opt)
		}
		b.WriteString(". You can answer with the option or its number.")
	case entity.FieldKindFile:
		fmt.Fprintf(&b, "Please upload %s using the upload button.", field.Label)
		if field.Accept != "" {
			fmt.Fprintf(&b, " (%s)", field.Accept)
		}
	default:
		fmt.Fprintf(&b, "Please enter %s.", field.Label)
	}
	return b.String()
}

func hintFor(field *entity.FormField) string {
	if field.Kind == entity.FieldKindText && field.IsEmail {
		return "email"
	}
	return string(field.Kind)
}
