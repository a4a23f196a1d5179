package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrUnknownEngine = errors.New("unknown llm_name; use 'gemini' or 'gpt'")
	ErrEmptyResponse = errors.New("empty response")
)

// Engine is a text-completion backend: prompt in, completion text out.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine

	Default string // engine used for an empty llm_name; "" means gemini
}

// GetEngine resolves a client-supplied llm_name.
func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := strings.ToLower(strings.TrimSpace(llmName))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(e.Default))
	}
	var eng Engine
	switch name {
	case "", "gemini":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("%w: %q is not configured", ErrUnknownEngine, llmName)
	}
	return eng, nil
}

// All returns configured engines, Gemini first.
func (e *Engines) All() []Engine {
	var out []Engine
	if e.Gemini != nil {
		out = append(out, e.Gemini)
	}
	if e.OpenAI != nil {
		out = append(out, e.OpenAI)
	}
	return out
}

// Manager keeps per-chat engine choice.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
