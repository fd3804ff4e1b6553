// Package phrase supplies the short acknowledgment prefixes that make
// forward transitions feel conversational. The random choice lives behind
// Picker so the state machine itself stays deterministic under test.
package phrase

import (
	"fmt"
	"math/rand"
	"sync"
)

type Picker interface {
	// Ack returns a short acknowledgment. name, when non-empty, is the
	// first name of the person the draft is about and may be woven in.
	Ack(name string) string
}

var acks = []string{
	"Got it.",
	"Thanks!",
	"Noted.",
	"Perfect.",
	"Alright.",
}

var namedAcks = []string{
	"Got it, thanks for the details on %s.",
	"Noted, still on %s.",
	"Thanks! Continuing with %s.",
}

type randomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom(seed int64) Picker {
	return &randomPicker{rnd: rand.New(rand.NewSource(seed))}
}

func (p *randomPicker) Ack(name string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if name != "" && p.rnd.Intn(2) == 0 {
		return fmt.Sprintf(namedAcks[p.rnd.Intn(len(namedAcks))], name)
	}
	return acks[p.rnd.Intn(len(acks))]
}

type staticPicker struct {
	text string
}

// Static returns a Picker that always answers the same string. Tests use it
// to keep engine output byte-stable.
func Static(text string) Picker {
	return staticPicker{text: text}
}

func (p staticPicker) Ack(string) string {
	return p.text
}
