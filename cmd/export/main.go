package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mindflow/mindflow/internal/config"
	"github.com/mindflow/mindflow/internal/db"
	"github.com/mindflow/mindflow/internal/repository/sqlite"
	"github.com/mindflow/mindflow/internal/store"
)

// Exports the full recorded history (players, test sessions, game sessions)
// to a JSON file, for sharing with a specialist or moving between machines.
func main() {
	output := flag.String("output", "", "Output file path (default: mindflow_YYYYMMDD_HHMMSS.json)")
	flag.Parse()

	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	aggregator := store.New(
		sqlite.NewPlayerRepository(database),
		sqlite.NewTestSessionRepository(database),
		sqlite.NewGameSessionRepository(database),
	)

	snapshot, err := aggregator.Snapshot(context.Background())
	if err != nil {
		log.Fatalf("Failed to read snapshot: %v", err)
	}

	outputPath := *output
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("mindflow_%s.json", timestamp)
	}
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	payload := map[string]any{
		"export_date":   time.Now().Format(time.RFC3339),
		"players":       snapshot.Players,
		"test_sessions": snapshot.TestSessions,
		"game_sessions": snapshot.GameSessions,
	}
	if err := enc.Encode(payload); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	log.Printf("Exported %d players, %d test sessions, %d game sessions to %s",
		len(snapshot.Players), len(snapshot.TestSessions), len(snapshot.GameSessions), outputPath)
}
