// Package server exposes the projection engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rpgo/retireplan/internal/calculation"
	"github.com/rpgo/retireplan/internal/config"
	"github.com/rpgo/retireplan/internal/domain"
	"github.com/rpgo/retireplan/internal/output"
)

// MaxBodySize caps request bodies.
const MaxBodySize = 1 << 20

// errBadRequest marks request problems reported with 400.
var errBadRequest = errors.New("bad request")

// Server handles projection, comparison and sensitivity requests.
type Server struct {
	engine *calculation.CalculationEngine
	parser *config.InputParser
	logger *zap.Logger
	now    func() time.Time
	base   context.Context
}

// New creates a server backed by engine. A nil logger discards logs.
func New(engine *calculation.CalculationEngine, logger *zap.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine: engine,
		parser: config.NewInputParser(),
		logger: logger,
		now:    time.Now,
		base:   context.Background(),
	}
}

// Handler returns the request router.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.handle
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.base = ctx
	srv := &fasthttp.Server{
		Handler:            s.handle,
		Name:               "retireplan",
		MaxRequestBodySize: MaxBodySize,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		s.logger.Info("server stopped")
		return nil
	}
}

type route struct {
	method string
	run    func(ctx *fasthttp.RequestCtx) (any, error)
}

func (s *Server) routes() map[string]route {
	return map[string]route{
		"/v1/projection":  {fasthttp.MethodPost, s.projection},
		"/v1/compare":     {fasthttp.MethodPost, s.compare},
		"/v1/sensitivity": {fasthttp.MethodPost, s.sensitivity},
	}
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	started := s.now()
	path := string(ctx.Path())
	defer func() {
		s.logger.Info("request handled",
			zap.String("method", string(ctx.Method())),
			zap.String("path", path),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("duration", s.now().Sub(started)))
	}()

	if path == "/health" {
		if !ctx.IsGet() && !ctx.IsHead() {
			s.methodNotAllowed(ctx, fasthttp.MethodGet)
			return
		}
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":"ok"}`)
		return
	}

	r, ok := s.routes()[path]
	if !ok {
		s.writeJSON(ctx, fasthttp.StatusNotFound, Response{Error: &ErrorResponse{Status: fasthttp.StatusNotFound, Message: "no route for " + path}})
		return
	}
	if string(ctx.Method()) != r.method {
		s.methodNotAllowed(ctx, r.method)
		return
	}

	id := uuid.New()
	result, err := r.run(ctx)
	completed := s.now()
	if err != nil {
		status := statusFor(err)
		if status == fasthttp.StatusInternalServerError {
			s.logger.Error("calculation failed", zap.String("calculation_id", id.String()), zap.Error(err))
		}
		s.writeJSON(ctx, status, Response{
			CalculationMetadata: newMetadata(id, started, completed, OutcomeFailure),
			Error:               &ErrorResponse{Status: status, Message: err.Error()},
		})
		return
	}

	if format := string(ctx.QueryArgs().Peek("format")); format != "" && output.NormalizeFormatName(format) != "json" {
		s.writeRendered(ctx, result, format)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, Response{
		CalculationMetadata: newMetadata(id, started, completed, OutcomeSuccess),
		CalculationResult:   result,
	})
}

func (s *Server) projection(ctx *fasthttp.RequestCtx) (any, error) {
	plan, err := s.parsePlan(ctx.PostBody())
	if err != nil {
		return nil, err
	}
	return s.engine.Calculate(plan.Assumptions, plan.Accounts)
}

func (s *Server) compare(ctx *fasthttp.RequestCtx) (any, error) {
	plan, err := s.parsePlan(ctx.PostBody())
	if err != nil {
		return nil, err
	}
	return s.engine.CompareScenarios(s.base, plan)
}

type sensitivityRequest struct {
	Parameter domain.SensitivityParameter `json:"parameter"`
	Values    []decimal.Decimal           `json:"values"`
}

func (s *Server) sensitivity(ctx *fasthttp.RequestCtx) (any, error) {
	body := ctx.PostBody()
	plan, err := s.parsePlan(body)
	if err != nil {
		return nil, err
	}
	var req sensitivityRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return s.engine.RunSensitivity(s.base, plan.Assumptions, plan.Accounts, req.Parameter, req.Values)
}

func (s *Server) parsePlan(body []byte) (*domain.Plan, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty request body", errBadRequest)
	}
	plan, err := s.parser.Parse(body, config.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return plan, nil
}

func (s *Server) writeRendered(ctx *fasthttp.RequestCtx, result any, format string) {
	var (
		data []byte
		err  error
	)
	switch v := result.(type) {
	case *domain.RetirementResult:
		data, err = output.Render(output.SingleResult("", v), format)
	case *domain.ScenarioComparison:
		data, err = output.Render(v, format)
	case *domain.SensitivityReport:
		data, err = output.RenderSensitivity(v, format)
	default:
		err = fmt.Errorf("%w: %q", output.ErrUnsupportedFormat, format)
	}
	if err != nil {
		s.writeJSON(ctx, fasthttp.StatusBadRequest, Response{Error: &ErrorResponse{Status: fasthttp.StatusBadRequest, Message: err.Error()}})
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(contentType(format))
	ctx.SetBody(data)
}

func (s *Server) methodNotAllowed(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set("Allow", allow)
	s.writeJSON(ctx, fasthttp.StatusMethodNotAllowed, Response{Error: &ErrorResponse{Status: fasthttp.StatusMethodNotAllowed, Message: "method not allowed"}})
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
		ctx.Error(`{"error":{"status":500,"message":"encoding failed"}}`, fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, calculation.ErrInvalidInput), errors.Is(err, config.ErrMixedAccountFields):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

func contentType(format string) string {
	switch n := output.NormalizeFormatName(format); {
	case strings.Contains(n, "csv"):
		return "text/csv; charset=utf-8"
	case n == "pdf":
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}
