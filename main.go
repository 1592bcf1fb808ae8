// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ttbt-io/playlog/gameday"
	"github.com/ttbt-io/playlog/gamestore"
	"github.com/ttbt-io/playlog/retrosheet"
)

var (
	configFile     = flag.String("config", "", "Path to a YAML config file")
	dataDir        = flag.String("data-dir", "data", "Directory holding the retrosheet/ and gameday/ source trees")
	storeDir       = flag.String("store-dir", "store", "Directory for parsed game output")
	useGameDay     = flag.Bool("gameday", false, "Attach GameDay pitch telemetry to parsed games")
	errorOnFailure = flag.Bool("error-on-failure", false, "Stop at the first game that fails to parse")
)

// config mirrors the command-line flags. Flags given explicitly override the
// config file; event files may come from the config or as arguments.
type config struct {
	DataDir        string   `yaml:"data_dir"`
	StoreDir       string   `yaml:"store_dir"`
	GameDay        bool     `yaml:"gameday"`
	ErrorOnFailure bool     `yaml:"error_on_failure"`
	EventFiles     []string `yaml:"event_files"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// main parses Retrosheet event files into replayable game logs and saves
// them, with an import manifest, under the store directory.
func main() {
	flag.Parse()

	cfg := &config{DataDir: *dataDir, StoreDir: *storeDir}
	if *configFile != "" {
		loaded, err := loadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if loaded.DataDir == "" {
			loaded.DataDir = cfg.DataDir
		}
		if loaded.StoreDir == "" {
			loaded.StoreDir = cfg.StoreDir
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			cfg.DataDir = *dataDir
		case "store-dir":
			cfg.StoreDir = *storeDir
		case "gameday":
			cfg.GameDay = *useGameDay
		case "error-on-failure":
			cfg.ErrorOnFailure = *errorOnFailure
		}
	})

	files := flag.Args()
	if len(files) == 0 {
		files = cfg.EventFiles
	}
	if len(files) == 0 {
		log.Fatal("No event files given; pass them as arguments or list them in the config file")
	}

	store := gamestore.New(cfg.StoreDir)
	manifest := gamestore.NewManifest(files)
	parser := &retrosheet.FileParser{ErrorOnFailure: cfg.ErrorOnFailure}

	for _, file := range files {
		games, failures, err := parser.ParseFile(file)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", file, err)
		}
		for _, f := range failures {
			manifest.AddFailure(f.GameID, f.Err)
		}
		for _, g := range games {
			if cfg.GameDay {
				atBats, err := gameday.LoadAtBats(cfg.DataDir, g.Metadata.ID)
				if err != nil {
					log.Fatalf("Failed to read telemetry for %s: %v", g.Metadata.ID, err)
				}
				if err := gameday.AttachTelemetry(g, atBats); err != nil {
					log.Printf("game %s: telemetry reconciliation failed: %v", g.Metadata.ID, err)
					manifest.AddFailure(g.Metadata.ID, err)
					continue
				}
			}
			if err := store.SaveGame(g); err != nil {
				log.Fatalf("Failed to save game %s: %v", g.Metadata.ID, err)
			}
			manifest.AddGame(g.Metadata.ID)
		}
	}

	if err := store.SaveManifest(manifest); err != nil {
		log.Fatalf("Failed to save manifest: %v", err)
	}
	log.Printf("Run %s: saved %d games, %d failures", manifest.RunID, len(manifest.GameIDs), len(manifest.Failures))
	for _, f := range manifest.Failures {
		log.Printf("  failed: %s: %s", f.GameID, f.Error)
	}
}
