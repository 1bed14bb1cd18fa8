package server

import (
	"fmt"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/topnews/pkg/aggregator"
	"github.com/umputun/topnews/pkg/render"
)

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":   "ok",
		"version":  s.version,
		"time":     time.Now().UTC(),
		"sections": s.config.Table().Sections(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// newsHandler runs aggregation and renders the list.
// GET /api/v1/news?format=json&max=20&section=ai,world&flat=true
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format := render.FormatJSON
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			RenderError(w, r, err, http.StatusBadRequest)
			return
		}
		format = f
	}

	limit := aggregator.DefaultLimit
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			RenderError(w, r, fmt.Errorf("invalid max %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}

	mode := aggregator.ModePriority
	if v := q.Get("flat"); v != "" {
		flat, err := strconv.ParseBool(v)
		if err != nil {
			RenderError(w, r, fmt.Errorf("invalid flat %q", v), http.StatusBadRequest)
			return
		}
		if flat {
			mode = aggregator.ModeFlat
		}
	}

	sections, err := s.sections(q["section"])
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	entries := s.aggregator.Run(r.Context(), aggregator.Request{Sections: sections, Limit: limit, Mode: mode})
	if len(sections) == 0 {
		sections = aggregator.DefaultSections
	}
	out, err := render.Render(format, entries, aggregator.Title(sections))
	if err != nil {
		log.Printf("[ERROR] failed to render %s: %v", format, err)
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// feedsHandler returns the feed table as OPML
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	out, err := render.OPML(s.config.Table(), "Top News Feeds")
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(out)); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

// sections collects section names from repeated and comma-separated params,
// keeping request order and dropping repeats. Names match the table ignoring case
// and come back spelled as in the table. Unknown sections are rejected.
func (s *Server) sections(params []string) ([]string, error) {
	known := s.config.Table().Sections()
	var res []string
	for _, p := range params {
		for _, name := range strings.Split(p, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			idx := slices.IndexFunc(known, func(k string) bool { return strings.EqualFold(k, name) })
			if idx < 0 {
				return nil, fmt.Errorf("unknown section %q", name)
			}
			if !slices.Contains(res, known[idx]) {
				res = append(res, known[idx])
			}
		}
	}
	return res, nil
}
