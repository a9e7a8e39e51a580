package protocols_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"protocolkb/internal/adapters/protocols"
	"protocolkb/internal/core"
	blobmemory "protocolkb/internal/infra/blob/memory"
	auditmemory "protocolkb/internal/infra/persistence/memory"
)

func waitForStatus(t *testing.T, w *protocols.Worker, id string, want protocols.ExportStatus) protocols.ExportRecord {
	t.Helper()
	var record protocols.ExportRecord
	require.Eventually(t, func() bool {
		var ok bool
		record, ok = w.GetExport(id)
		return ok && record.Status == want
	}, 2*time.Second, 5*time.Millisecond, "export %s never reached %s", id, want)
	return record
}

func stopWorker(t *testing.T, w *protocols.Worker) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))
}

func TestWorkerExportsProtocolSheets(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	ctx := context.Background()

	objects := protocols.NewBlobObjectStore(blobmemory.New(), 0)
	auditStore := auditmemory.NewAuditStore()
	worker := protocols.NewWorker(newService(t), objects,
		protocols.NewStoreAuditLogger(auditStore, zaptest.NewLogger(t)),
		protocols.WithWorkerLogger(zaptest.NewLogger(t)))
	worker.Start()
	defer stopWorker(t, worker)

	queued, err := worker.EnqueueExport(ctx, protocols.ExportInput{
		ProtocolIDs:    []string{"traditional-triple"},
		Recommendation: &core.RecommendationRequest{Conditions: []string{"fatigue"}},
		Formats:        []protocols.ExportFormat{protocols.FormatCSV, protocols.FormatHTML, protocols.FormatCSV},
		RequestedBy:    "ana",
		Reason:         "clinic handout",
	})
	require.NoError(t, err)
	assert.Equal(t, protocols.ExportStatusQueued, queued.Status)
	assert.Equal(t, []protocols.ExportFormat{protocols.FormatCSV, protocols.FormatHTML}, queued.Formats)
	require.Len(t, queued.ID, 36)

	done := waitForStatus(t, worker, queued.ID, protocols.ExportStatusSucceeded)
	assert.Equal(t, []string{
		"traditional-triple", "gentle-pumpkin-papaya", "modern-berberine",
		"intensive-artemisinin", "combination-comprehensive",
	}, done.Protocols)
	require.NotNil(t, done.CompletedAt)
	require.Len(t, done.Artifacts, 2)

	csvArtifact := done.Artifacts[0]
	assert.Equal(t, protocols.FormatCSV, csvArtifact.Format)
	assert.Equal(t, "text/csv", csvArtifact.ContentType)
	assert.True(t, strings.HasPrefix(csvArtifact.Key, "exports/"+queued.ID+"/"))
	assert.Equal(t, 5, csvArtifact.Metadata["protocols"])

	_, payload, err := objects.Get(ctx, csvArtifact.Key)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[1], "traditional-triple,"))

	_, html, err := objects.Get(ctx, done.Artifacts[1].Key)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Traditional Triple Herb Protocol</h1>")
	assert.Contains(t, string(html), "Juglans nigra")

	entries, err := auditStore.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	statuses := []string{entries[0].Status, entries[1].Status, entries[2].Status}
	assert.Equal(t, []string{"succeeded", "running", "queued"}, statuses)
	for _, e := range entries {
		assert.Equal(t, protocols.AuditActionExport, e.Action)
		assert.Equal(t, queued.ID, e.Subject)
		assert.Equal(t, "ana", e.Actor)
	}
	assert.Equal(t, "clinic handout", entries[2].Reason)
}

func TestWorkerEnqueueValidation(t *testing.T) {
	ctx := context.Background()
	worker := protocols.NewWorker(newService(t), nil, nil)

	cases := []struct {
		name  string
		input protocols.ExportInput
		want  string
	}{
		{"no source", protocols.ExportInput{}, "protocol ids or recommendation required"},
		{"unknown id", protocols.ExportInput{ProtocolIDs: []string{"nope"}}, "protocol nope not found"},
		{"blank conditions", protocols.ExportInput{Recommendation: &core.RecommendationRequest{Conditions: []string{" "}}}, "recommendation conditions required"},
		{"bad format", protocols.ExportInput{ProtocolIDs: []string{"liver-fluke"}, Formats: []protocols.ExportFormat{"pdf"}}, "unsupported export format pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := worker.EnqueueExport(ctx, tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	unconfigured := protocols.NewWorker(nil, nil, nil)
	_, err := unconfigured.EnqueueExport(ctx, protocols.ExportInput{ProtocolIDs: []string{"liver-fluke"}})
	assert.EqualError(t, err, "export service not configured")
}

func TestWorkerDefaultsFormatsAndSkipsStore(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	worker := protocols.NewWorker(newService(t), nil, nil)
	worker.Start()
	defer stopWorker(t, worker)

	queued, err := worker.EnqueueExport(context.Background(), protocols.ExportInput{ProtocolIDs: []string{"liver-fluke"}})
	require.NoError(t, err)
	assert.Equal(t, []protocols.ExportFormat{protocols.FormatJSON, protocols.FormatCSV}, queued.Formats)

	done := waitForStatus(t, worker, queued.ID, protocols.ExportStatusSucceeded)
	require.Len(t, done.Artifacts, 2)
	assert.Empty(t, done.Artifacts[0].Key)
	assert.Equal(t, "application/json", done.Artifacts[0].ContentType)
	assert.Positive(t, done.Artifacts[0].SizeBytes)
}

func TestWorkerFailsWhenNothingMatches(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	worker := protocols.NewWorker(newService(t), nil, nil)
	worker.Start()
	defer stopWorker(t, worker)

	queued, err := worker.EnqueueExport(context.Background(), protocols.ExportInput{
		Recommendation: &core.RecommendationRequest{Conditions: []string{"hiccups"}},
	})
	require.NoError(t, err)
	failed := waitForStatus(t, worker, queued.ID, protocols.ExportStatusFailed)
	assert.Equal(t, "no protocols matched the export request", failed.Error)
}

type failingObjectStore struct {
	protocols.ObjectStore
}

func (failingObjectStore) Put(context.Context, string, []byte, string, map[string]any) (protocols.ExportArtifact, error) {
	return protocols.ExportArtifact{}, errors.New("disk full")
}

func TestWorkerStoreFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	audit := auditmemory.NewAuditStore()
	worker := protocols.NewWorker(newService(t), failingObjectStore{}, protocols.NewStoreAuditLogger(audit, nil))
	worker.Start()
	defer stopWorker(t, worker)

	_, err := worker.EnqueueExport(context.Background(), protocols.ExportInput{ProtocolIDs: []string{"neem"}})
	require.Error(t, err)

	queued, err := worker.EnqueueExport(context.Background(), protocols.ExportInput{ProtocolIDs: []string{"ayurvedic-neem-turmeric"}})
	require.NoError(t, err)
	failed := waitForStatus(t, worker, queued.ID, protocols.ExportStatusFailed)
	assert.Equal(t, "store artifact failed: disk full", failed.Error)

	entries, err := audit.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "failed", entries[0].Status)
	assert.Equal(t, "store artifact failed: disk full", entries[0].Metadata["error"])
}

func TestWorkerQueueFull(t *testing.T) {
	audit := auditmemory.NewAuditStore()
	worker := protocols.NewWorker(newService(t), nil, protocols.NewStoreAuditLogger(audit, nil), protocols.WithQueueSize(1))

	first, err := worker.EnqueueExport(context.Background(), protocols.ExportInput{ProtocolIDs: []string{"liver-fluke"}})
	require.NoError(t, err)
	_, err = worker.EnqueueExport(context.Background(), protocols.ExportInput{ProtocolIDs: []string{"liver-fluke"}})
	require.ErrorIs(t, err, protocols.ErrQueueFull)

	still, ok := worker.GetExport(first.ID)
	require.True(t, ok)
	assert.Equal(t, protocols.ExportStatusQueued, still.Status)

	entries, err := audit.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "failed", entries[0].Status)
	require.NoError(t, worker.Stop(context.Background()))
}

func TestWorkerStopWithoutWork(t *testing.T) {
	worker := protocols.NewWorker(newService(t), nil, nil)
	worker.Start()
	require.NoError(t, worker.Stop(context.Background()))
	_, ok := worker.GetExport("missing")
	assert.False(t, ok)
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]protocols.ExportFormat{"JSON": protocols.FormatJSON, " csv ": protocols.FormatCSV, "html": protocols.FormatHTML} {
		got, ok := protocols.ParseExportFormat(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}
	_, ok := protocols.ParseExportFormat("pdf")
	assert.False(t, ok)
}
