package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"tutor-bot/api/internal/constants"
	"tutor-bot/api/internal/llm"
	"tutor-bot/api/internal/runner"
)

type Handle struct {
	engs    *llm.Engines
	run     *runner.Runner
	table   *constants.Table
	timeout time.Duration
}

// New builds the HTTP handlers. timeout is the default per-query deadline.
func New(engs *llm.Engines, run *runner.Runner, timeout time.Duration) *Handle {
	if timeout <= 0 {
		timeout = 70 * time.Second
	}
	return &Handle{
		engs:    engs,
		run:     run,
		table:   run.Table,
		timeout: timeout,
	}
}

// Routes registers every endpoint on mux.
func (h *Handle) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Healthz)
	mux.HandleFunc("/api/query", h.Query)
	mux.HandleFunc("/api/constants", h.Constants)
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorBody{Detail: detail})
}
