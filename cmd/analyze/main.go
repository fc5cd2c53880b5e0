// Command analyze runs the analysis pipeline over a local journal file and
// prints the result as indented JSON. Useful for inspecting a journal
// without standing up the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"trade-insights/internal/engine"
	"trade-insights/internal/logger"
	"trade-insights/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	file := flag.String("file", "", "path to the journal export")
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file journal.csv [-config config.yaml]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	if err := logger.InitWithConfig(logger.Config{Level: "WARN", Format: "text"}); err != nil {
		log.Fatal(err)
	}

	cfg, err := store.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.New(cfg).Analyze(context.Background(), string(data))
	if err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
