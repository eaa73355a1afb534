package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/session"
)

// bodyOverhead is the JSON envelope allowance on top of the text limit.
const bodyOverhead = 64 << 10

// textRequest is the body of every text endpoint.
type textRequest struct {
	Text    string           `json:"text"`
	Options pipeline.Options `json:"options"`
}

// sessionResponse describes a session.
type sessionResponse struct {
	ID        string       `json:"id"`
	Revision  int          `json:"revision"`
	ExpiresAt time.Time    `json:"expires_at"`
	Layout    cloud.Layout `json:"layout"`
}

// textResponse is returned after applying text to a session.
type textResponse struct {
	ID       string       `json:"id"`
	Revision int          `json:"revision"`
	Plan     cloud.Plan   `json:"plan"`
	Layout   cloud.Layout `json:"layout"`
}

// =============================================================================
// Stateless endpoints
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Get().Version})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeText(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Options.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), req.Text, req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, pipeline.FormatJSON, result.Artifacts[pipeline.FormatJSON], result.CacheInfo.LayoutHit)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	req, err := s.decodeText(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.Options.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), req.Text, req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, format, result.Artifacts[format], result.CacheInfo.LayoutHit)
}

// =============================================================================
// Sessions
// =============================================================================

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New(s.sessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}
	w.Header().Set("Location", "/v1/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, describe(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describe(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		if stderrors.Is(err, session.ErrNotFound) {
			writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id))
			return
		}
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionText computes the layout for new text, diffs it against the
// session's rendered state and replaces that state. The response is the
// plan as JSON, or the animated SVG with ?format=svg.
func (s *Server) handleSessionText(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatPlan
	}
	if format != pipeline.FormatPlan && format != pipeline.FormatSVG {
		writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "session output must be plan or svg (got %q)", format))
		return
	}

	req, err := s.decodeText(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.sessMu.Lock()
	defer s.sessMu.Unlock()

	sess, err := s.loadSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	result, _, err := s.runner.Animate(ctx, sess.State(), req.Text, req.Options)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sess.Replace(result.Layout)
	if err := s.store.Set(ctx, sess); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}

	if format == pipeline.FormatSVG {
		req.Options.Formats = []string{pipeline.FormatSVG}
		artifacts, err := s.runner.Render(ctx, result, req.Options)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeArtifact(w, format, artifacts[format], false)
		return
	}

	writeJSON(w, http.StatusOK, textResponse{
		ID:       sess.ID,
		Revision: sess.Revision,
		Plan:     cloud.ExportPlan(*result.Plan),
		Layout:   sess.Layout,
	})
}

func (s *Server) loadSession(r *http.Request) (*session.Session, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSessionID(id); err != nil {
		return nil, err
	}
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load session")
	}
	if sess == nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	return sess, nil
}

func describe(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID,
		Revision:  sess.Revision,
		ExpiresAt: sess.ExpiresAt,
		Layout:    sess.Layout,
	}
}

// =============================================================================
// Encoding
// =============================================================================

// decodeText reads a textRequest, seeding options from the server defaults.
func (s *Server) decodeText(w http.ResponseWriter, r *http.Request) (textRequest, error) {
	req := textRequest{Options: s.base}
	limit := req.Options.MaxTextBytes
	if limit <= 0 {
		limit = errors.DefaultMaxTextBytes
	}
	body := http.MaxBytesReader(w, r.Body, int64(limit+bodyOverhead))

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, errors.New(errors.ErrCodeTextTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if stderrors.Is(err, io.EOF) {
			return req, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	req.Options.MaxTextBytes = limit
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, cached bool) {
	switch format {
	case pipeline.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
