package store

// Record holds the validated answers of one reference entry, keyed by field id.
// Values are the canonical forms produced by validation: string, float64,
// "YYYY-MM-DD" date string, canonical option string, or a FileValue.
type Record map[string]any

// FileValue is the metadata the file subsystem hands over once a file has
// been durably stored. The engine never sees file bytes.
type FileValue struct {
	FileId    string `json:"file_id"`
	Name      string `json:"name"`
	Mime      string `json:"mime"`
	SizeBytes int64  `json:"size_bytes"`
}

// EngineState is the serialized heart of an intake session.
type EngineState struct {
	// Committed records have answered every field of the schema.
	Committed []Record `json:"committed"`

	// Draft is the record currently being filled. It only ever holds keys
	// for fields already answered in the current record.
	Draft Record `json:"draft"`
}

// Session phases. The phase is an explicit value, not an implicit property
// re-derived ad hoc at every call site.
const (
	PhaseCollecting = "COLLECTING"
	PhaseReviewing  = "REVIEWING"
	PhaseSubmitted  = "SUBMITTED"
)

func NewEngineState() *EngineState {
	return &EngineState{
		Committed: []Record{},
		Draft:     Record{},
	}
}

// AsFileValue recovers a FileValue from a record value. After a JSON
// round-trip through the session store the value arrives as a generic map,
// so both representations are accepted.
func AsFileValue(v any) (FileValue, bool) {
	switch fv := v.(type) {
	case FileValue:
		return fv, true
	case map[string]any:
		fileId, ok := fv["file_id"].(string)
		if !ok {
			return FileValue{}, false
		}
		name, _ := fv["name"].(string)
		mime, _ := fv["mime"].(string)
		size, _ := fv["size_bytes"].(float64)
		return FileValue{FileId: fileId, Name: name, Mime: mime, SizeBytes: int64(size)}, true
	}
	return FileValue{}, false
}

// Clone returns a deep copy of the state. Transitions that may need to roll
// back work on a copy.
func (s *EngineState) Clone() *EngineState {
	out := &EngineState{
		Committed: make([]Record, 0, len(s.Committed)),
		Draft:     Record{},
	}
	for _, rec := range s.Committed {
		out.Committed = append(out.Committed, cloneRecord(rec))
	}
	for k, v := range s.Draft {
		out.Draft[k] = v
	}
	return out
}

func cloneRecord(rec Record) Record {
	out := Record{}
	for k, v := range rec {
		out[k] = v
	}
	return out
}
