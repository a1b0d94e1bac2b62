package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/matzehuels/applyviz/pkg/buildinfo"
	"github.com/matzehuels/applyviz/pkg/chart"
	"github.com/matzehuels/applyviz/pkg/errors"
	"github.com/matzehuels/applyviz/pkg/pipeline"
	"github.com/matzehuels/applyviz/pkg/stats"
)

// renderRequest is the JSON envelope accepted by the render endpoints.
type renderRequest struct {
	Stats      json.RawMessage `json:"stats"`
	Config     json.RawMessage `json:"config,omitempty"`
	Static     bool            `json:"static,omitempty"`
	Hover      bool            `json:"hover,omitempty"`
	NoTooltips bool            `json:"no_tooltips,omitempty"`
	Highlight  string          `json:"highlight,omitempty"`
	Detailed   bool            `json:"detailed,omitempty"`
	Scale      float64         `json:"scale,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serve(w, r, format)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, pipeline.FormatJSON)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, format string) {
	opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	for _, warn := range res.Layout.Warnings {
		w.Header().Add("X-Applyviz-Warning", warn.String())
	}
	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// decode reads the request into pipeline options.
func (s *Server) decode(r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, s.maxBody))
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	cfg := chart.DefaultConfig()

	if isYAML(r.Header.Get("Content-Type")) {
		return pipeline.Options{Input: body, InputFormat: stats.FormatYAML, Chart: &cfg}, nil
	}

	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if len(req.Stats) == 0 {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "stats is required")
	}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
		}
	}
	return pipeline.Options{
		Input:       req.Stats,
		InputFormat: stats.FormatJSON,
		Chart:       &cfg,
		Static:      req.Static,
		Hover:       req.Hover,
		NoTooltips:  req.NoTooltips,
		Highlight:   req.Highlight,
		Detailed:    req.Detailed,
		Scale:       req.Scale,
	}, nil
}

func isYAML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasSuffix(mt, "yaml")
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
	recordError(r, err)
	writeJSON(w, status, errorBody{Error: errorDetail{Code: string(code), Message: errors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
