package handle

import (
	"net/http"
	"strings"
)

// Constants serves GET /api/constants and GET /api/constants?name=<name>.
func (h *Handle) Constants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeJSON(w, http.StatusOK, h.table.All())
		return
	}
	e, ok := h.table.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown constant: "+name)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
