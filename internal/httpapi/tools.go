package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	errx "github.com/beautique-shop/storefront/internal/core/error"
)

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	infos, err := s.deps.Tools.Infos(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// invokeTool runs a tool with the request body as its JSON arguments and
// relays the tool's JSON output.
func (s *Server) invokeTool(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, ok := s.deps.Tools.Get(name); !ok {
		writeError(w, r, errx.New(errx.ErrNotFound, http.StatusNotFound, fmt.Sprintf("unknown tool %q", name)))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, errx.Invalid("invalid request body"))
		return
	}
	args := string(bytes.TrimSpace(body))
	if args != "" && !json.Valid(body) {
		writeError(w, r, errx.Invalid("arguments must be a JSON object"))
		return
	}

	out, err := s.deps.Tools.Invoke(r.Context(), name, args)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(out))
}
