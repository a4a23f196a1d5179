package handle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tutor-bot/api/internal/runner"
	"tutor-bot/api/internal/tutor"
)

type QueryRequest struct {
	Text    string `json:"text"`
	LLMName string `json:"llm_name,omitempty"`
}

// Query answers POST /api/query.
func (h *Handle) Query(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	defer r.Body.Close()

	var req QueryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if err := tutor.ValidateQuery(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, err := h.engs.GetEngine(req.LLMName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.deadline(r))
	defer cancel()

	res, err := h.run.Ask(ctx, runner.SourceHTTP, engine, req.Text)
	if err != nil {
		if errors.Is(err, tutor.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// deadline honours X-Request-Timeout (seconds), then ?timeoutSec=. Values that
// are not positive integers are skipped.
func (h *Handle) deadline(r *http.Request) time.Duration {
	for _, ts := range []string{
		r.Header.Get("X-Request-Timeout"),
		r.URL.Query().Get("timeoutSec"),
	} {
		if v, _ := strconv.Atoi(strings.TrimSpace(ts)); v > 0 {
			return time.Duration(v) * time.Second
		}
	}
	return h.timeout
}
