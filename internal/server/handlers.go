package server

import (
	"net/http"

	"github.com/matzehuels/rocrate/pkg/crate"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/render"
	"github.com/matzehuels/rocrate/pkg/validation"
	"github.com/matzehuels/rocrate/pkg/value"
)

func (s *Server) listCrates(w http.ResponseWriter, r *http.Request) {
	paths, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"crates": paths})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*crate.Crate, bool) {
	c, err := s.store.Get(r.Context(), r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return c, true
}

func (s *Server) document(w http.ResponseWriter, r *http.Request) {
	c, ok := s.load(w, r)
	if !ok {
		return
	}
	data, err := value.Codec{Indent: "  "}.Marshal(c.Document().Value())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode metadata"))
		return
	}
	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type summaryResponse struct {
	Path string `json:"path"`
	crate.Summary
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	c, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Path:    r.URL.Query().Get("path"),
		Summary: crate.Summarize(c),
	})
}

func (s *Server) entity(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "id is required"))
		return
	}
	c, ok := s.load(w, r)
	if !ok {
		return
	}
	e, found := c.Entity(id)
	if !found {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no entity %q", id))
		return
	}
	writeJSON(w, http.StatusOK, e.Node())
}

type problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type validateResponse struct {
	Valid    bool      `json:"valid"`
	Problems []problem `json:"problems"`
}

func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.load(w, r)
	if !ok {
		return
	}
	resp := validateResponse{Valid: true, Problems: []problem{}}
	for _, p := range validation.Problems(validation.Default().Validate(c)) {
		resp.Valid = false
		resp.Problems = append(resp.Problems, problem{
			Code:    string(errors.GetCode(p)),
			Message: errors.UserMessage(p),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

var contentTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	if _, ok := contentTypes[format]; !ok {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "format must be svg or dot"))
		return
	}
	c, ok := s.load(w, r)
	if !ok {
		return
	}
	opts := render.Options{
		Detailed:   boolParam(r, "detailed"),
		References: boolParam(r, "references"),
	}
	out, hit, err := render.Diagram(r.Context(), s.cache, s.keyer, c, format, opts, s.ttl)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	cacheStatus := "miss"
	if hit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
