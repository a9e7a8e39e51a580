package protocols

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"protocolkb/internal/core"
	"protocolkb/pkg/protocolapi"
)

// ErrQueueFull is returned by EnqueueExport when the worker backlog is at capacity.
var ErrQueueFull = errors.New("export queue full")

// ExportFormat names a rendered protocol sheet encoding.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatHTML ExportFormat = "html"
)

// ParseExportFormat accepts json, csv and html in any case.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatHTML:
		return f, true
	}
	return "", false
}

func (f ExportFormat) contentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/json"
	}
}

// ExportStatus describes the lifecycle stage of an export request.
type ExportStatus string

const (
	ExportStatusQueued    ExportStatus = "queued"
	ExportStatusRunning   ExportStatus = "running"
	ExportStatusSucceeded ExportStatus = "succeeded"
	ExportStatusFailed    ExportStatus = "failed"
)

// AuditActionExport tags every export lifecycle audit entry.
const AuditActionExport = "protocol_export"

const defaultQueueSize = 32

// ExportArtifact captures a stored protocol sheet.
type ExportArtifact struct {
	ID          string         `json:"id"`
	Key         string         `json:"key,omitempty"`
	Format      ExportFormat   `json:"format"`
	ContentType string         `json:"content_type"`
	SizeBytes   int64          `json:"size_bytes"`
	URL         string         `json:"url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ExportRecord tracks an export request and its artifacts. Protocols holds
// the resolved protocol ids once the export has run.
type ExportRecord struct {
	ID             string                      `json:"id"`
	ProtocolIDs    []string                    `json:"protocol_ids,omitempty"`
	Recommendation *core.RecommendationRequest `json:"recommendation,omitempty"`
	Formats        []ExportFormat              `json:"formats"`
	Status         ExportStatus                `json:"status"`
	Error          string                      `json:"error,omitempty"`
	Protocols      []string                    `json:"protocols,omitempty"`
	Artifacts      []ExportArtifact            `json:"artifacts,omitempty"`
	RequestedBy    string                      `json:"requested_by"`
	Reason         string                      `json:"reason,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	CompletedAt    *time.Time                  `json:"completed_at,omitempty"`
}

// ExportInput selects the protocols to render: explicit ids, the result of a
// recommendation query, or both (ids first, duplicates dropped).
type ExportInput struct {
	ProtocolIDs    []string
	Recommendation *core.RecommendationRequest
	Formats        []ExportFormat
	RequestedBy    string
	Reason         string
}

// ExportScheduler queues export requests and exposes their status.
type ExportScheduler interface {
	EnqueueExport(ctx context.Context, input ExportInput) (ExportRecord, error)
	GetExport(id string) (ExportRecord, bool)
}

// ObjectStore persists export artifacts.
type ObjectStore interface {
	// Put stores a new immutable object and fails if key exists.
	Put(ctx context.Context, key string, payload []byte, contentType string, metadata map[string]any) (ExportArtifact, error)
	// Get returns the artifact metadata and full payload bytes.
	Get(ctx context.Context, key string) (ExportArtifact, []byte, error)
	// Delete removes the object; returns true if it existed.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns artifacts whose keys start with prefix.
	List(ctx context.Context, prefix string) ([]ExportArtifact, error)
}

// AuditLogger records export audit entries.
type AuditLogger interface {
	Record(ctx context.Context, entry protocolapi.AuditEntry)
}

// WorkerOption customizes a Worker.
type WorkerOption func(*Worker)

// WithWorkerLogger sets the worker's logger.
func WithWorkerLogger(l *zap.Logger) WorkerOption {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithQueueSize overrides the bounded queue capacity.
func WithQueueSize(n int) WorkerOption {
	return func(w *Worker) {
		if n > 0 {
			w.queue = make(chan exportTask, n)
		}
	}
}

// Worker renders protocol sheet exports asynchronously.
type Worker struct {
	service Service
	store   ObjectStore
	audit   AuditLogger
	logger  *zap.Logger

	queue chan exportTask
	mu    sync.RWMutex
	jobs  map[string]*ExportRecord

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type exportTask struct {
	id    string
	input ExportInput
}

type renderedArtifact struct {
	Artifact ExportArtifact
	Payload  []byte
}

// NewWorker constructs an export worker. store and audit may be nil; without
// a store artifacts are described but not persisted.
func NewWorker(svc Service, store ObjectStore, audit AuditLogger, opts ...WorkerOption) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		service: svc,
		store:   store,
		audit:   audit,
		logger:  zap.NewNop(),
		queue:   make(chan exportTask, defaultQueueSize),
		jobs:    make(map[string]*ExportRecord),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins processing export requests.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop signals the worker to halt and waits for completion. Queued tasks
// that have not started are abandoned in the queued state.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case task := <-w.queue:
			w.process(task)
		}
	}
}

// EnqueueExport validates the request and schedules it, returning the
// queued record.
func (w *Worker) EnqueueExport(ctx context.Context, input ExportInput) (ExportRecord, error) {
	if w.service == nil {
		return ExportRecord{}, fmt.Errorf("export service not configured")
	}
	if len(input.ProtocolIDs) == 0 && input.Recommendation == nil {
		return ExportRecord{}, fmt.Errorf("protocol ids or recommendation required")
	}
	for _, id := range input.ProtocolIDs {
		if _, ok := w.service.Protocol(ctx, id); !ok {
			return ExportRecord{}, fmt.Errorf("protocol %s not found", id)
		}
	}
	if input.Recommendation != nil && !hasCondition(input.Recommendation.Conditions) {
		return ExportRecord{}, fmt.Errorf("recommendation conditions required")
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = []ExportFormat{FormatJSON, FormatCSV}
	}
	uniqFormats := make([]ExportFormat, 0, len(formats))
	seen := make(map[ExportFormat]struct{})
	for _, format := range formats {
		if _, ok := ParseExportFormat(string(format)); !ok {
			return ExportRecord{}, fmt.Errorf("unsupported export format %s", format)
		}
		if _, duplicate := seen[format]; duplicate {
			continue
		}
		uniqFormats = append(uniqFormats, format)
		seen[format] = struct{}{}
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	record := ExportRecord{
		ID:          id,
		ProtocolIDs: append([]string(nil), input.ProtocolIDs...),
		Formats:     uniqFormats,
		Status:      ExportStatusQueued,
		RequestedBy: input.RequestedBy,
		Reason:      input.Reason,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.Recommendation != nil {
		req := cloneRequest(*input.Recommendation)
		record.Recommendation = &req
	}

	w.mu.Lock()
	w.jobs[id] = &record
	queuedSnapshot := record.copy()
	w.mu.Unlock()
	w.record(ctx, id, ExportStatusQueued, input.Reason, nil)

	select {
	case w.queue <- exportTask{id: id, input: input}:
	default:
		w.fail(id, ErrQueueFull.Error())
		return ExportRecord{}, ErrQueueFull
	}
	return queuedSnapshot, nil
}

// GetExport returns a snapshot of the export record.
func (w *Worker) GetExport(id string) (ExportRecord, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return ExportRecord{}, false
	}
	return record.copy(), true
}

func (w *Worker) process(task exportTask) {
	if _, ok := w.GetExport(task.id); !ok {
		return
	}
	w.updateStatus(task.id, ExportStatusRunning)

	protocols, err := w.resolve(task.input)
	if err != nil {
		w.fail(task.id, err.Error())
		return
	}
	if len(protocols) == 0 {
		w.fail(task.id, "no protocols matched the export request")
		return
	}

	record, _ := w.GetExport(task.id)
	artifacts := make([]ExportArtifact, 0, len(record.Formats))
	for _, format := range record.Formats {
		rendered, err := materialize(format, protocols)
		if err != nil {
			w.fail(task.id, err.Error())
			return
		}
		if w.store == nil {
			artifacts = append(artifacts, rendered.Artifact)
			continue
		}
		key := artifactKey(task.id, rendered.Artifact)
		stored, err := w.store.Put(w.ctx, key, rendered.Payload, rendered.Artifact.ContentType, rendered.Artifact.Metadata)
		if err != nil {
			w.fail(task.id, fmt.Sprintf("store artifact failed: %v", err))
			return
		}
		stored.ID = rendered.Artifact.ID
		stored.Key = key
		stored.Format = format
		if stored.ContentType == "" {
			stored.ContentType = rendered.Artifact.ContentType
		}
		if stored.SizeBytes == 0 {
			stored.SizeBytes = rendered.Artifact.SizeBytes
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = rendered.Artifact.CreatedAt
		}
		stored.Metadata = mergeMetadata(stored.Metadata, rendered.Artifact.Metadata)
		artifacts = append(artifacts, stored)
	}

	ids := make([]string, len(protocols))
	for i, p := range protocols {
		ids[i] = p.ID
	}
	w.complete(task.id, ids, artifacts)
}

func (w *Worker) resolve(input ExportInput) ([]protocolapi.Protocol, error) {
	var out []protocolapi.Protocol
	seen := make(map[string]struct{})
	add := func(p protocolapi.Protocol) {
		if _, dup := seen[p.ID]; dup {
			return
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	for _, id := range input.ProtocolIDs {
		p, ok := w.service.Protocol(w.ctx, id)
		if !ok {
			return nil, fmt.Errorf("protocol %s not found", id)
		}
		add(p)
	}
	if input.Recommendation != nil {
		for _, rec := range w.service.Recommend(w.ctx, *input.Recommendation) {
			add(rec.Protocol)
		}
	}
	return out, nil
}

func (w *Worker) updateStatus(id string, status ExportStatus) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.Error = ""
		record.UpdatedAt = now
	}
	w.mu.Unlock()
	w.record(w.ctx, id, status, "", nil)
}

// Terminal audit entries precede the status change so pollers never see a
// finished export without its trail.
func (w *Worker) complete(id string, protocols []string, artifacts []ExportArtifact) {
	w.record(w.ctx, id, ExportStatusSucceeded, "", map[string]any{"artifacts": len(artifacts), "protocols": len(protocols)})
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = ExportStatusSucceeded
		record.Error = ""
		record.Protocols = protocols
		record.Artifacts = artifacts
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.logger.Info("export succeeded", zap.String("export_id", id), zap.Int("artifacts", len(artifacts)))
}

func (w *Worker) fail(id, reason string) {
	w.record(w.ctx, id, ExportStatusFailed, "", map[string]any{"error": reason})
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = ExportStatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.logger.Warn("export failed", zap.String("export_id", id), zap.String("error", reason))
}

func (w *Worker) record(ctx context.Context, id string, status ExportStatus, reason string, metadata map[string]any) {
	if w.audit == nil {
		return
	}
	w.mu.RLock()
	actor := ""
	if record, ok := w.jobs[id]; ok {
		actor = record.RequestedBy
	}
	w.mu.RUnlock()
	w.audit.Record(ctx, protocolapi.AuditEntry{
		ID:         uuid.NewString(),
		Action:     AuditActionExport,
		Actor:      actor,
		Subject:    id,
		Status:     string(status),
		Reason:     reason,
		Metadata:   metadata,
		OccurredAt: time.Now().UTC(),
	})
}

func materialize(format ExportFormat, protocols []protocolapi.Protocol) (renderedArtifact, error) {
	buf := &bytes.Buffer{}
	switch format {
	case FormatJSON:
		if err := json.NewEncoder(buf).Encode(map[string]any{"protocols": protocols}); err != nil {
			return renderedArtifact{}, fmt.Errorf("marshal json: %w", err)
		}
	case FormatCSV:
		if err := WriteCSV(buf, protocols); err != nil {
			return renderedArtifact{}, fmt.Errorf("render csv: %w", err)
		}
	case FormatHTML:
		if err := writeProtocolHTML(buf, "Protocol sheet", protocols); err != nil {
			return renderedArtifact{}, fmt.Errorf("render html: %w", err)
		}
	default:
		return renderedArtifact{}, fmt.Errorf("unsupported export format %s", format)
	}
	payload := buf.Bytes()
	return renderedArtifact{
		Artifact: ExportArtifact{
			ID:          uuid.NewString(),
			Format:      format,
			ContentType: format.contentType(),
			SizeBytes:   int64(len(payload)),
			Metadata:    map[string]any{"protocols": len(protocols)},
			CreatedAt:   time.Now().UTC(),
		},
		Payload: payload,
	}, nil
}

func artifactKey(exportID string, artifact ExportArtifact) string {
	return fmt.Sprintf("exports/%s/%s.%s", exportID, artifact.ID, artifact.Format)
}

func hasCondition(conditions []string) bool {
	for _, c := range conditions {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

func cloneRequest(req core.RecommendationRequest) core.RecommendationRequest {
	req.Conditions = append([]string(nil), req.Conditions...)
	req.Exclusions = append([]string(nil), req.Exclusions...)
	return req
}

func mergeMetadata(base map[string]any, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func (r ExportRecord) copy() ExportRecord {
	dup := r
	dup.ProtocolIDs = append([]string(nil), r.ProtocolIDs...)
	dup.Formats = append([]ExportFormat(nil), r.Formats...)
	dup.Protocols = append([]string(nil), r.Protocols...)
	if r.Recommendation != nil {
		req := cloneRequest(*r.Recommendation)
		dup.Recommendation = &req
	}
	if len(r.Artifacts) > 0 {
		dup.Artifacts = make([]ExportArtifact, len(r.Artifacts))
		for i, a := range r.Artifacts {
			a.Metadata = protocolapi.CloneMetadata(a.Metadata)
			dup.Artifacts[i] = a
		}
	}
	return dup
}
