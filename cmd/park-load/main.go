// Package main implements park-load, which restores a DynamoDB JSON export
// (as produced by "aws dynamodb scan") into a table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/parkreso/parkreso-api/internal/export"
)

var logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// defaultTable is used when neither -table nor TABLE_NAME is set.
const defaultTable = "parkreso"

// ItemLoader defines the interface for writing decoded items.
type ItemLoader interface {
	Load(ctx context.Context, items []export.Item) (int, error)
}

// run decodes the export in r and loads it with loader.
func run(ctx context.Context, r io.Reader, loader ItemLoader) (int, error) {
	items, err := export.Decode(r)
	if err != nil {
		return 0, err
	}
	logger.InfoContext(ctx, "Export decoded", slog.Int("item_count", len(items)))

	return loader.Load(ctx, items)
}

func main() {
	tableDefault := os.Getenv("TABLE_NAME")
	if tableDefault == "" {
		tableDefault = defaultTable
	}

	file := flag.String("file", "./dump.json", "path to the export file")
	table := flag.String("table", tableDefault, "destination table name")
	concurrency := flag.Int("concurrency", export.DefaultConcurrency, "PutItem calls in flight")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("Failed to open export", slog.String("file", *file), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("Failed to load AWS config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loader := export.NewLoader(dynamodb.NewFromConfig(cfg), *table, *concurrency)
	n, err := run(ctx, f, loader)
	if err != nil {
		logger.Error("Load failed",
			slog.String("table", *table),
			slog.Int("written", n),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("Load completed", slog.String("table", *table), slog.Int("written", n))
	fmt.Println(n)
}
