package protocols

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"protocolkb/internal/core"
	"protocolkb/pkg/protocolapi"
)

const basePath = "/api/v1/protocols"

// Service is the read API the handler and export worker depend on.
// *core.Service satisfies it.
type Service interface {
	Protocol(ctx context.Context, id string) (protocolapi.Protocol, bool)
	Search(ctx context.Context, q core.Query) []protocolapi.Protocol
	Facets(ctx context.Context) core.Facets
	Recommend(ctx context.Context, req core.RecommendationRequest) []protocolapi.Recommendation
}

// Handler provides HTTP access to the protocol catalog, the recommender
// and protocol sheet exports.
type Handler struct {
	Service Service
	Exports ExportScheduler
	Logger  *zap.Logger
}

// NewHandler constructs a protocol HTTP handler. Exports stay disabled
// until a scheduler is assigned.
func NewHandler(s Service) *Handler {
	return &Handler{Service: s, Logger: zap.NewNop()}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusInternalServerError, "protocol service not configured")
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == basePath:
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		h.handleList(w, r)
	case path == basePath+"/facets":
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"facets": h.Service.Facets(r.Context())})
	case path == basePath+"/recommendations":
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		h.handleRecommend(w, r)
	case path == basePath+"/exports" || strings.HasPrefix(path, basePath+"/exports/"):
		if h.Exports == nil {
			http.NotFound(w, r)
			return
		}
		h.handleExports(w, r, path)
	case strings.HasPrefix(path, basePath+"/"):
		id := strings.TrimPrefix(path, basePath+"/")
		if strings.Contains(id, "/") {
			writeError(w, http.StatusNotFound, "protocol endpoint not found")
			return
		}
		if !allowMethod(w, r, http.MethodGet) {
			return
		}
		h.handleGet(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	protocols := h.Service.Search(r.Context(), core.Query{
		Ailment:   q.Get("ailment"),
		Intensity: q.Get("intensity"),
		Evidence:  q.Get("evidence"),
		Region:    q.Get("region"),
		Category:  q.Get("category"),
	})

	switch negotiateFormat(r) {
	case FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="protocols.csv"`)
		if err := WriteCSV(w, protocols); err != nil {
			h.logger().Warn("stream protocol csv", zap.Error(err))
		}
	case FormatJSON:
		writeJSON(w, http.StatusOK, map[string]any{"protocols": protocols})
	default:
		writeError(w, http.StatusNotAcceptable, "requested format not supported")
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	protocol, ok := h.Service.Protocol(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "protocol not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"protocol": protocol})
}

type recommendationRequest struct {
	Conditions []string `json:"conditions"`
	Region     string   `json:"region"`
	Exclusions []string `json:"exclusions"`
}

func (h *Handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid recommendation request payload")
		return
	}
	recs := h.Service.Recommend(r.Context(), core.RecommendationRequest{
		Conditions: req.Conditions,
		Region:     req.Region,
		Exclusions: req.Exclusions,
	})
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}

type exportRequest struct {
	ProtocolIDs    []string               `json:"protocol_ids"`
	Recommendation *recommendationRequest `json:"recommendation"`
	Formats        []string               `json:"formats"`
	RequestedBy    string                 `json:"requested_by"`
	Reason         string                 `json:"reason"`
}

func (h *Handler) handleExports(w http.ResponseWriter, r *http.Request, path string) {
	if path == basePath+"/exports" {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		h.handleExportCreate(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	id := strings.TrimPrefix(path, basePath+"/exports/")
	record, ok := h.Exports.GetExport(id)
	if !ok {
		writeError(w, http.StatusNotFound, "export not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"export": record})
}

func (h *Handler) handleExportCreate(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid export request payload")
		return
	}

	formats := make([]ExportFormat, 0, len(req.Formats))
	for _, f := range req.Formats {
		format, ok := ParseExportFormat(f)
		if !ok {
			writeError(w, http.StatusBadRequest, "unsupported export format")
			return
		}
		formats = append(formats, format)
	}

	input := ExportInput{
		ProtocolIDs: req.ProtocolIDs,
		Formats:     formats,
		RequestedBy: req.RequestedBy,
		Reason:      req.Reason,
	}
	if req.Recommendation != nil {
		input.Recommendation = &core.RecommendationRequest{
			Conditions: req.Recommendation.Conditions,
			Region:     req.Recommendation.Region,
			Exclusions: req.Recommendation.Exclusions,
		}
	}

	record, err := h.Exports.EnqueueExport(r.Context(), input)
	switch {
	case errors.Is(err, ErrQueueFull):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"export": record})
}

// decodeBody treats an empty body as an empty request.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func negotiateFormat(r *http.Request) ExportFormat {
	wanted := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if wanted == "" {
		if strings.Contains(r.Header.Get("Accept"), "text/csv") {
			return FormatCSV
		}
		return FormatJSON
	}
	switch ExportFormat(wanted) {
	case FormatCSV, FormatJSON:
		return ExportFormat(wanted)
	}
	return ""
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
