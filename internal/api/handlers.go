package api

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kisan-depin/dmrv/pkg/buildinfo"
	"github.com/kisan-depin/dmrv/pkg/errors"
	"github.com/kisan-depin/dmrv/pkg/evidence"
	"github.com/kisan-depin/dmrv/pkg/geo"
	"github.com/kisan-depin/dmrv/pkg/kb"
	"github.com/kisan-depin/dmrv/pkg/observability"
	"github.com/kisan-depin/dmrv/pkg/report"
	"github.com/kisan-depin/dmrv/pkg/verify"
)

// maxUploadBytes bounds photo uploads (multipart form memory included).
const maxUploadBytes = 10 << 20

// defaultListLimit bounds unpaginated report listings.
const defaultListLimit = 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// analyzeResponse pairs the classification outcome with its stored report.
type analyzeResponse struct {
	ReportID string        `json:"report_id"`
	Result   verify.Result `json:"result"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse multipart form"))
		return
	}

	coord, err := parseFormCoordinate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidImage, err, "missing photo upload"))
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if err := errors.ValidateFilename(filename); err != nil {
		writeError(w, err)
		return
	}

	photo, err := io.ReadAll(file)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidImage, err, "read photo upload"))
		return
	}
	if err := errors.ValidatePhoto(photo); err != nil {
		writeError(w, err)
		return
	}

	result := s.classifier.Classify(photo, filename, coord)
	observability.Pipeline().OnClassify(r.Context(), result.Status.String(), result.Confidence)

	rep := report.New(coord, result, report.Artifacts{})
	if err := s.reports.Put(r.Context(), rep); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store report"))
		return
	}

	s.logger.Info("photo analyzed",
		"filename", filename,
		"verdict", result.Status,
		"report_id", rep.ID)
	writeJSON(w, http.StatusOK, analyzeResponse{ReportID: rep.ID, Result: result})
}

// evidenceRequest is the JSON body of POST /api/v1/evidence.
type evidenceRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Verdict   string  `json:"verdict"`
	Size      int     `json:"size,omitempty"`
	Scale     int     `json:"scale,omitempty"`
}

func (s *Server) handleEvidence(w http.ResponseWriter, r *http.Request) {
	var req evidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	verdict, err := verify.ParseVerdict(req.Verdict)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Render(r.Context(), evidence.Options{
		Coordinate:   geo.Coordinate{Lat: req.Latitude, Lon: req.Longitude},
		Verdict:      verdict,
		Size:         req.Size,
		Scale:        req.Scale,
		OutputDir:    s.outputDir,
		QualifyNames: s.qualifyNames,
		Logger:       s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// askRequest is the JSON body of POST /api/v1/ask.
type askRequest struct {
	Question string `json:"question"`
	Language string `json:"language,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if err := errors.ValidateQuestion(req.Question); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.agent.Query(r.Context(), req.Question, req.Language)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "answer question"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleKnowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": kb.Documents,
		"count":     len(kb.Documents),
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit: %q", raw))
			return
		}
		limit = n
	}

	reports, err := s.reports.List(r.Context(), limit)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list reports"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reports": reports,
		"count":   len(reports),
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rep, err := s.reports.Get(r.Context(), id)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "get report"))
		return
	}
	if rep == nil {
		writeError(w, errors.New(errors.ErrCodeReportNotFound, "report not found: %s", id))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// parseFormCoordinate reads and validates latitude/longitude form fields.
func parseFormCoordinate(r *http.Request) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		return geo.Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate,
			"invalid latitude: %q", r.FormValue("latitude"))
	}
	lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		return geo.Coordinate{}, errors.New(errors.ErrCodeInvalidCoordinate,
			"invalid longitude: %q", r.FormValue("longitude"))
	}

	coord := geo.Coordinate{Lat: lat, Lon: lon}
	if err := coord.Validate(); err != nil {
		return geo.Coordinate{}, err
	}
	return coord, nil
}
