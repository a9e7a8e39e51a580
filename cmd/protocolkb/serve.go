package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"protocolkb/internal/adapters/protocols"
	"protocolkb/internal/blob"
	"protocolkb/internal/config"
	"protocolkb/internal/core"
	"protocolkb/pkg/protocolapi"
)

const expvarName = "protocolkb_operations"

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the export worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				root.cfg.Server.Addr = addr
			}
			if err := root.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			var traces io.Writer
			if root.verbose {
				traces = cmd.ErrOrStderr()
			}
			return runServer(cmd.Context(), root.cfg, root.logger, traces)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}

// app wires the service, storage backends and export worker for serve.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	handler  *protocols.Handler
	worker   *protocols.Worker
	audit    protocolapi.AuditStore
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, traces io.Writer) (*app, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom, err := core.NewPrometheusMetricsRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	opts := []core.ServiceOption{
		core.WithLogger(logger),
		core.WithMetrics(core.MultiRecorder{prom, core.NewExpvarMetricsRecorder(expvarName)}),
	}
	if traces != nil {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(traces)))
	}
	svc := core.NewService(catalog, opts...)

	audit, err := core.OpenAuditStore(ctx, cfg.AuditOptions())
	if err != nil {
		return nil, err
	}
	store, err := blob.Open(ctx, cfg.BlobOptions())
	if err != nil {
		_ = audit.Close()
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	worker := protocols.NewWorker(svc,
		protocols.NewBlobObjectStore(store, cfg.URLExpiry()),
		protocols.NewStoreAuditLogger(audit, logger.Named("audit")),
		protocols.WithWorkerLogger(logger.Named("exports")),
		protocols.WithQueueSize(cfg.Exports.QueueSize),
	)
	handler := protocols.NewHandler(svc)
	handler.Exports = worker
	handler.Logger = logger.Named("http")

	logger.Info("protocol catalog loaded",
		zap.Int("protocols", catalog.Len()),
		zap.String("audit_driver", cfg.Audit.Driver),
		zap.String("blob_driver", string(store.Driver())),
	)
	return &app{cfg: cfg, logger: logger, registry: registry, handler: handler, worker: worker, audit: audit}, nil
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/protocols", a.handler)
	mux.Handle("/api/v1/protocols/", a.handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	if a.cfg.Server.Metrics {
		mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))
		mux.Handle("/debug/vars", expvar.Handler())
	}
	return mux
}

func (a *app) close() error {
	return a.audit.Close()
}

// runServer serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains HTTP connections and stops the export worker.
func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger, traces io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger, traces)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			logger.Warn("close audit store", zap.Error(err))
		}
	}()

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}
	srv := &http.Server{
		Handler:           a.routes(),
		ReadTimeout:       cfg.ReadTimeout(),
		ReadHeaderTimeout: cfg.ReadTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
	}

	a.worker.Start()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		return errors.Join(srv.Shutdown(shutdownCtx), a.worker.Stop(shutdownCtx))
	})
	return g.Wait()
}
