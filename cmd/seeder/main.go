package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/medcite"
	"github.com/poiesic/medcite/ai"
	"github.com/poiesic/medcite/source"
)

var (
	dbPath         = flag.String("db", "./medcite_db", "path to BadgerDB database directory")
	embeddingHost  = flag.String("embedding-host", "http://localhost:11434/v1", "embedding service host URL")
	embeddingModel = flag.String("embedding-model", "embeddinggemma", "embedding model name")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// Seeds the curated knowledge base into a database so the engine can answer
// queries before any external source has been reached.
func main() {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(*embeddingHost),
		ai.WithEmbeddingModel(*embeddingModel),
	)

	curated := source.NewCuratedFetcher()

	engine, err := medcite.NewEngine(*dbPath,
		medcite.WithAIConfig(aiConfig),
		medcite.WithFetchers(curated),
	)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()
	for _, condition := range curated.Conditions() {
		stats, err := engine.Ingest(ctx, condition)
		if err != nil {
			panic(err)
		}
		slog.Info("seeded condition", "condition", condition, "stored", stats.Stored)
	}
}
