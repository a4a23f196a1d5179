// Package llmtest provides a deterministic llm.Engine for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"
)

// Scripted replays canned completions in call order and records prompts.
type Scripted struct {
	name  string
	model string

	mu      sync.Mutex
	replies []reply
	prompts []string
}

type reply struct {
	text string
	err  error
}

func NewScripted(replies ...string) *Scripted {
	s := &Scripted{name: "scripted", model: "scripted-1"}
	for _, r := range replies {
		s.replies = append(s.replies, reply{text: r})
	}
	return s
}

func (s *Scripted) WithName(name string) *Scripted {
	s.name = name
	return s
}

// Then queues another successful completion.
func (s *Scripted) Then(text string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply{text: text})
	return s
}

// ThenFail queues a failing call.
func (s *Scripted) ThenFail(err error) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, reply{err: err})
	return s
}

func (s *Scripted) Name() string     { return s.name }
func (s *Scripted) GetModel() string { return s.model }

func (s *Scripted) Complete(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	if n >= len(s.replies) {
		return "", fmt.Errorf("llmtest: no scripted response for call %d", n+1)
	}
	r := s.replies[n]
	return r.text, r.err
}

// Prompts returns the prompts received so far.
func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Calls is len(Prompts()).
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
