package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ppdsupport/companion/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

// scriptedSource replays lines and then reports end of input
type scriptedSource struct {
	lines []string
	err   error
}

func (s *scriptedSource) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newTestSession(out io.Writer) *chatSession {
	return &chatSession{
		responder: assistant.NewResponder(firstPicker{}),
		out:       out,
	}
}

func TestSessionGreets(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newTestSession(&out).Run(&scriptedSource{}))

	text := out.String()
	assert.Contains(t, text, assistantPrompt+assistant.WelcomeMessage)
	for i, q := range assistant.SuggestedQuestions() {
		assert.Contains(t, text, fmt.Sprintf("%d. %s", i+1, q))
	}
	assert.True(t, strings.HasSuffix(text, "Take care.\n"))
}

func TestSessionAnswers(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
		absent   []string
	}{
		{
			name:     "Greeting",
			lines:    []string{"hello"},
			expected: []string{assistantPrompt + assistant.Responses(assistant.CategoryGreeting)[0]},
		},
		{
			name:  "Suggestion by number",
			lines: []string{"4"},
			expected: []string{
				"you> " + assistant.SuggestedQuestions()[3],
				assistantPrompt + assistant.Responses(assistant.CategoryResources)[0],
			},
		},
		{
			name:     "Out of range number is a message",
			lines:    []string{"9"},
			expected: []string{assistantPrompt + assistant.Responses(assistant.CategoryGeneral)[0]},
		},
		{
			name:   "Exit stops before later lines",
			lines:  []string{"quit", "hello"},
			absent: []string{assistant.Responses(assistant.CategoryGreeting)[0]},
		},
		{
			name:   "Blank lines are skipped",
			lines:  []string{"", "   "},
			absent: []string{assistantPrompt + assistant.Responses(assistant.CategoryGeneral)[0]},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, newTestSession(&out).Run(&scriptedSource{lines: tt.lines}))

			for _, e := range tt.expected {
				assert.Contains(t, out.String(), e)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out.String(), a)
			}
		})
	}
}

func TestSessionTypingDelay(t *testing.T) {
	var out bytes.Buffer
	var slept []time.Duration

	s := newTestSession(&out)
	s.delay = 250 * time.Millisecond
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, s.Run(&scriptedSource{lines: []string{"hello", "thanks"}}))

	assert.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, slept)
	assert.Equal(t, 2, strings.Count(out.String(), "companion is typing..."))
}

func TestSessionReadError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("terminal gone")

	err := newTestSession(&out).Run(&scriptedSource{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "companion-chat", cmd.Use)

	require.NoError(t, cmd.ParseFlags([]string{"--delay", "0s"}))
	delay, err := cmd.Flags().GetDuration("delay")
	require.NoError(t, err)
	assert.Zero(t, delay)
}
