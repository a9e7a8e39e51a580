package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"protocolkb/pkg/protocolapi"
)

const (
	OpProtocolGet    = "protocol.get"
	OpProtocolSearch = "protocol.search"
	OpProtocolFacets = "protocol.facets"
	OpRecommend      = "protocol.recommend"
)

// Service is the instrumented read API consumed by adapters. It never
// returns errors for ordinary "no match" outcomes: lookups report absence
// with a boolean and queries return empty slices.
type Service struct {
	catalog     *Catalog
	recommender *Recommender
	metrics     MetricsRecorder
	tracer      Tracer
	logger      *zap.Logger
	now         func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithMetrics installs a metrics recorder.
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithLogger installs a zap logger; operations log at debug level.
func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecommender replaces the default recommender, e.g. to lower the limit.
func WithRecommender(r *Recommender) ServiceOption {
	return func(s *Service) {
		if r != nil {
			s.recommender = r
		}
	}
}

// NewService wraps catalog with a default recommender and no-op
// instrumentation.
func NewService(catalog *Catalog, opts ...ServiceOption) *Service {
	s := &Service{
		catalog:     catalog,
		recommender: NewRecommender(catalog),
		metrics:     noopMetrics{},
		tracer:      noopTracer{},
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog exposes the underlying catalog.
func (s *Service) Catalog() *Catalog { return s.catalog }

// Protocol looks up a protocol by id.
func (s *Service) Protocol(ctx context.Context, id string) (protocolapi.Protocol, bool) {
	done := s.begin(ctx, OpProtocolGet)
	p, ok := s.catalog.Get(id)
	done(zap.String("id", id), zap.Bool("found", ok))
	return p, ok
}

// Search filters the catalog by q.
func (s *Service) Search(ctx context.Context, q Query) []protocolapi.Protocol {
	done := s.begin(ctx, OpProtocolSearch)
	out := s.catalog.Search(q)
	done(zap.Any("query", q), zap.Int("results", len(out)))
	return out
}

// Facets summarizes the catalog's selectable values.
func (s *Service) Facets(ctx context.Context) Facets {
	done := s.begin(ctx, OpProtocolFacets)
	f := s.catalog.Facets()
	done(zap.Int("total", f.Total))
	return f
}

// Recommend ranks protocols for the request.
func (s *Service) Recommend(ctx context.Context, req RecommendationRequest) []protocolapi.Recommendation {
	done := s.begin(ctx, OpRecommend)
	out := s.recommender.RecommendFor(req)
	done(
		zap.Strings("conditions", req.Conditions),
		zap.String("region", req.Region),
		zap.Strings("exclusions", req.Exclusions),
		zap.Int("results", len(out)),
	)
	return out
}

func (s *Service) begin(ctx context.Context, op string) func(fields ...zap.Field) {
	ctx, span := s.tracer.Start(ctx, op)
	started := s.now()
	return func(fields ...zap.Field) {
		elapsed := s.now().Sub(started)
		span.End(nil)
		s.metrics.Observe(ctx, op, true, elapsed)
		if ce := s.logger.Check(zap.DebugLevel, op); ce != nil {
			ce.Write(append(fields, zap.Duration("elapsed", elapsed))...)
		}
	}
}
