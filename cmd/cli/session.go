package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ppdsupport/companion/internal/assistant"
)

const assistantPrompt = "companion> "

// LineSource yields one line of user input per call and io.EOF when done
type LineSource interface {
	ReadLine() (string, error)
}

type chatSession struct {
	responder *assistant.Responder
	out       io.Writer
	delay     time.Duration
	sleep     func(time.Duration)
}

// Run prints the welcome and suggestions, then answers lines until the user
// leaves with exit, quit or end of input
func (s *chatSession) Run(in LineSource) error {
	s.greet()

	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out, "Take care.")
			return nil
		}
		if err != nil {
			return err
		}

		message := strings.TrimSpace(line)
		if message == "" {
			continue
		}

		switch strings.ToLower(message) {
		case "exit", "quit":
			fmt.Fprintln(s.out, "Take care.")
			return nil
		}

		if q, ok := suggestion(message); ok {
			fmt.Fprintf(s.out, "you> %s\n", q)
			message = q
		}

		s.answer(message)
	}
}

func (s *chatSession) greet() {
	fmt.Fprintln(s.out, assistantPrompt+assistant.WelcomeMessage)
	fmt.Fprintln(s.out, "Suggested questions:")
	for i, q := range assistant.SuggestedQuestions() {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, q)
	}
}

func (s *chatSession) answer(message string) {
	if s.delay > 0 {
		fmt.Fprintln(s.out, "companion is typing...")
		sleep := s.sleep
		if sleep == nil {
			sleep = time.Sleep
		}
		sleep(s.delay)
	}

	reply := s.responder.Respond(message)
	fmt.Fprintln(s.out, assistantPrompt+reply.Text)
}

// suggestion resolves a bare number to the matching suggested question
func suggestion(input string) (string, bool) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return "", false
	}

	questions := assistant.SuggestedQuestions()
	if n < 1 || n > len(questions) {
		return "", false
	}
	return questions[n-1], true
}
