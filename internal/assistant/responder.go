package assistant

import "math/rand"

// Picker draws a uniform index in [0, n)
type Picker interface {
	Intn(n int) int
}

type globalPicker struct{}

// Intn uses the auto-seeded package source, which is safe for concurrent use
func (globalPicker) Intn(n int) int {
	return rand.Intn(n)
}

// Reply is the outcome of one classification-and-response cycle
type Reply struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Responder selects canned replies for user messages
type Responder struct {
	picker Picker
}

// NewResponder creates a responder. A nil picker uses math/rand.
func NewResponder(picker Picker) *Responder {
	if picker == nil {
		picker = globalPicker{}
	}
	return &Responder{picker: picker}
}

// Respond classifies a message and returns a random reply from its category,
// with the disclaimer appended where required
func (r *Responder) Respond(message string) Reply {
	category := Classify(message)
	row := responses[category]
	text := row[r.picker.Intn(len(row))]

	if category.NeedsDisclaimer() {
		text += Disclaimer
	}

	return Reply{Category: category, Text: text}
}

// RespondToTranscript replies to the most recent user message in a transcript
func (r *Responder) RespondToTranscript(transcript []Message) Reply {
	return r.Respond(LastUserMessage(transcript))
}

// LastUserMessage returns the content of the last message authored by the
// user, or an empty string if there is none
func LastUserMessage(transcript []Message) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == RoleUser {
			return transcript[i].Content
		}
	}
	return ""
}
