package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/firmtools/hexlint/pkg/archive"
	"github.com/firmtools/hexlint/pkg/scan"
)

// maxValidateBytes caps how much of a request body the validation
// endpoints will read.
const maxValidateBytes = 16 << 20

// Server holds the API server state
type Server struct {
	reports ReportStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(reports ReportStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		reports: reports,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleValidate godoc
//
//	@Summary		Validate hex records
//	@Description	Validate a body of Intel HEX records, one per line, and return a per-line report
//	@Tags			validate
//	@Accept			plain
//	@Produce		json
//	@Param			source	query		string	false	"Label describing where the records came from"
//	@Param			body	body		string	true	"Hex records, one per line"
//	@Success		200		{object}	archive.Report
//	@Failure		400		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validate [post]
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	report, err := s.validateBody(r)
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	sendSuccess(w, report)
}

// handleCreateReport godoc
//
//	@Summary		Validate and archive
//	@Description	Validate a body of Intel HEX records and persist the resulting report
//	@Tags			reports
//	@Accept			plain
//	@Produce		json
//	@Param			source	query		string	false	"Label describing where the records came from"
//	@Param			body	body		string	true	"Hex records, one per line"
//	@Success		200		{object}	archive.Report
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/reports [post]
func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	report, err := s.validateBody(r)
	if err != nil {
		s.metrics.RecordReportOperation("create", false, time.Since(start))
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	if _, err := s.reports.Save(report); err != nil {
		s.metrics.RecordReportOperation("create", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to store report: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordReportOperation("create", true, time.Since(start))
	sendSuccess(w, report)
}

// handleGetReport godoc
//
//	@Summary		Get a report
//	@Description	Retrieve an archived validation report by ID
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string	true	"Report ID"
//	@Success		200	{object}	archive.Report
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/reports/{id} [get]
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if id == "" {
		s.metrics.RecordReportOperation("get", false, time.Since(start))
		sendError(w, "Report ID is required", http.StatusBadRequest)
		return
	}

	report, err := s.reports.Get(id)
	if err != nil {
		s.metrics.RecordReportOperation("get", false, time.Since(start))
		if errors.Is(err, archive.ErrReportNotFound) {
			sendError(w, "Report not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to get report: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordReportOperation("get", true, time.Since(start))
	sendSuccess(w, report)
}

// handleDeleteReport godoc
//
//	@Summary		Delete a report
//	@Description	Delete an archived validation report by ID
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			id	path		string	true	"Report ID"
//	@Success		200	{object}	map[string]string
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/reports/{id} [delete]
func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if id == "" {
		s.metrics.RecordReportOperation("delete", false, time.Since(start))
		sendError(w, "Report ID is required", http.StatusBadRequest)
		return
	}

	if err := s.reports.Delete(id); err != nil {
		s.metrics.RecordReportOperation("delete", false, time.Since(start))
		if errors.Is(err, archive.ErrReportNotFound) {
			sendError(w, "Report not found", http.StatusNotFound)
			return
		}
		sendError(w, fmt.Sprintf("Failed to delete report: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordReportOperation("delete", true, time.Since(start))
	sendSuccess(w, map[string]string{"message": "Report deleted successfully"})
}

// validateBody scans the request body line by line and builds a report.
// The only error it can return is a failure to read the body itself;
// malformed hex records show up as invalid lines in the report.
func (s *Server) validateBody(r *http.Request) (*archive.Report, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxValidateBytes))
	if err != nil {
		return nil, err
	}

	collector := &scan.Collector{}
	scanner := scan.NewScanner(collector)
	stats, err := scanner.ScanReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLinesValidated(stats)

	return buildReport(r.URL.Query().Get("source"), collector.Results, stats), nil
}

// buildReport converts per-line scan results into an archivable report
func buildReport(source string, results []scan.Result, stats *scan.Stats) *archive.Report {
	report := &archive.Report{
		Source:  source,
		Lines:   stats.Lines,
		Valid:   stats.Valid,
		Invalid: stats.Invalid,
		ByType:  make(map[string]int, len(stats.ByType)),
		Records: make([]archive.LineOutcome, 0, len(results)),
	}

	for recordType, count := range stats.ByType {
		report.ByType[recordType.String()] = count
	}

	for _, result := range results {
		outcome := archive.LineOutcome{
			Line:  result.Line,
			Raw:   result.Raw,
			Valid: result.Err == nil,
		}
		if result.Err != nil {
			outcome.Error = result.Err.Error()
		} else {
			outcome.Type = result.Record.Type.String()
		}
		report.Records = append(report.Records, outcome)
	}

	return report
}
