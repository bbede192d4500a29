// Package main implements the park read Lambda handler.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/parkreso/parkreso-api/internal/apiresponse"
	"github.com/parkreso/parkreso-api/internal/auth"
	"github.com/parkreso/parkreso-api/internal/config"
	"github.com/parkreso/parkreso-api/internal/park"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: logLevel,
}))

// ParkRepository defines the interface for reading parks.
type ParkRepository interface {
	Query(ctx context.Context, q park.Query) ([]park.Record, error)
}

// TokenVerifier defines the interface for bearer token checks.
type TokenVerifier interface {
	Verify(ctx context.Context, header string) (*auth.Claims, error)
}

// handler implements the park read logic.
type handler struct {
	repo     ParkRepository
	verifier TokenVerifier
}

// newHandler creates a new handler.
func newHandler(repo ParkRepository, verifier TokenVerifier) *handler {
	return &handler{
		repo:     repo,
		verifier: verifier,
	}
}

// handle processes a park read request.
func (h *handler) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	tracer := otel.Tracer("parkreso-park-read")
	ctx, span := tracer.Start(ctx, "ParkReadHandler", trace.WithAttributes(
		attribute.String("http.method", request.HTTPMethod),
	))
	defer span.End()

	if request.HTTPMethod == http.MethodOptions {
		return apiresponse.JSON(http.StatusOK, struct{}{}), nil
	}

	isAdmin := h.isAdmin(ctx, request.Headers)
	span.SetAttributes(attribute.Bool("park.admin", isAdmin))

	q, err := park.NewQueryFromParams(request.QueryStringParameters, isAdmin)
	if err != nil {
		logger.WarnContext(ctx, "Rejected request shape",
			slog.Int("param_count", len(request.QueryStringParameters)),
		)
		return apiresponse.JSON(http.StatusBadRequest, apiresponse.InvalidRequest), nil
	}
	span.SetAttributes(
		attribute.Bool("park.list", q.IsList()),
		attribute.String("park.id", q.ParkID),
	)

	records, err := h.repo.Query(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "Failed to query parks",
			slog.String("park_id", q.ParkID),
			slog.Bool("visible_only", q.VisibleOnly),
			slog.String("error", err.Error()),
		)
		return apiresponse.Error(http.StatusBadRequest, err), nil
	}

	// Ensure the body is an array even when nothing matched
	if records == nil {
		records = []park.Record{}
	}

	logger.InfoContext(ctx, "Park read completed",
		slog.String("park_id", q.ParkID),
		slog.Bool("admin", isAdmin),
		slog.Int("record_count", len(records)),
	)

	return apiresponse.JSON(http.StatusOK, records), nil
}

// isAdmin reports whether the request carries a valid admin token. Any
// verification failure falls back to the public view.
func (h *handler) isAdmin(ctx context.Context, headers map[string]string) bool {
	header, ok := authorizationHeader(headers)
	if !ok || h.verifier == nil {
		return false
	}

	claims, err := h.verifier.Verify(ctx, header)
	if err != nil {
		level := slog.LevelInfo
		if errors.Is(err, auth.ErrKeySet) {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "Token not accepted as admin", slog.String("reason", err.Error()))
		return false
	}

	logger.DebugContext(ctx, "Admin token verified", slog.String("subject", claims.Subject))
	return true
}

// authorizationHeader finds the Authorization header regardless of case.
func authorizationHeader(headers map[string]string) (string, bool) {
	if v, ok := headers["Authorization"]; ok {
		return v, true
	}
	for k, v := range headers {
		if strings.EqualFold(k, "Authorization") {
			return v, true
		}
	}
	return "", false
}

func main() {
	ctx := context.Background()

	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to initialize tracer provider", slog.String("error", err.Error()))
		panic(err)
	}
	otel.SetTracerProvider(tp)

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		logger.Error("FATAL: Invalid configuration", slog.String("error", err.Error()))
		panic(err)
	}
	logLevel.Set(cfg.LogLevel)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("FATAL: Failed to load AWS config", slog.String("error", err.Error()))
		panic(err)
	}

	// Instrument AWS SDK clients with OTel tracing
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	repo := park.NewDynamoDBRepository(dynamoClient, cfg.TableName)

	jwksClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	verifier := auth.NewVerifier(cfg.JWKSURL, cfg.Issuer, cfg.CacheTTL, auth.NewHTTPKeySetFetcher(jwksClient))

	logger.Info("Park read handler starting",
		slog.String("table", cfg.TableName),
		slog.String("issuer", cfg.Issuer),
	)

	h := newHandler(repo, verifier)
	lambda.Start(otellambda.InstrumentHandler(h.handle, xrayconfig.WithRecommendedOptions(tp)...))
}
