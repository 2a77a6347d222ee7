// Command dungeongen generates a dungeon from the command line and
// prints it as an ASCII map, YAML or JSON, optionally archiving it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/snickbit/dungeon/internal/database"
	"github.com/snickbit/dungeon/internal/dungeon"
	"github.com/snickbit/dungeon/internal/logger"
	"github.com/snickbit/dungeon/internal/render"
)

func main() {
	width := flag.Int("width", 51, "Stage width")
	height := flag.Int("height", 51, "Stage height")
	seed := flag.String("seed", "", "Seed string (default: random slug)")
	roomTries := flag.Int("room-tries", 50, "Room placement attempts")
	roomExtraSize := flag.Int("room-extra-size", 0, "Widens the room size draw")
	winding := flag.Int("winding", 50, "Winding percent (0 always turns, 100 never does)")
	doorChance := flag.Int("door-chance", 50, "Door roll denominator and attempts per region pair")
	maxDoors := flag.Int("max-doors", 5, "Upper bound of doors per region pair")
	multiplier := flag.Int("multiplier", 1, "Stage size multiplier")
	removeDeadEnds := flag.Bool("remove-dead-ends", false, "Prune corridor stubs")
	format := flag.String("format", "ascii", "Output format: ascii, yaml or json")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	dbFile := flag.String("db", "", "Archive the dungeon into this SQLite file")
	showLegend := flag.Bool("legend", false, "Append the map legend (ascii format)")
	flag.Parse()

	logger.Initialize(logger.DefaultConfig().ApplyEnv())

	opts := dungeon.Options{
		DoorChance:     *doorChance,
		MaxDoors:       *maxDoors,
		RoomTries:      *roomTries,
		RoomExtraSize:  *roomExtraSize,
		WindingPercent: *winding,
		Multiplier:     *multiplier,
		RemoveDeadEnds: *removeDeadEnds,
	}

	generator := dungeon.New(&opts)
	results, err := generator.Build(dungeon.Stage{Width: *width, Height: *height, Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating dungeon: %v\n", err)
		os.Exit(1)
	}

	output, err := formatResults(results, *format, *showLegend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dungeon written to %s\n", *outputFile)
	} else {
		fmt.Print(output)
	}

	if *dbFile != "" {
		archive(results, generator.Options(), *dbFile)
	}
}

// yamlDungeon is the YAML document shape for a generated dungeon.
type yamlDungeon struct {
	Seed   string         `yaml:"seed"`
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Rooms  []dungeon.Room `yaml:"rooms"`
	Map    string         `yaml:"map"`
}

func formatResults(results *dungeon.Results, format string, legend bool) (string, error) {
	switch format {
	case "ascii":
		out := render.Summary(results)
		if legend {
			out += render.Legend()
		}
		return out, nil
	case "yaml":
		doc := yamlDungeon{
			Seed:   results.Seed(),
			Width:  results.Width(),
			Height: results.Height(),
			Rooms:  results.Rooms(),
			Map:    render.Map(results),
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to encode YAML: %w", err)
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

func archive(results *dungeon.Results, opts dungeon.Options, dbFile string) {
	db, err := database.Open(dbFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening archive: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	id, err := db.SaveDungeon(results, opts)
	if err == database.ErrDuplicate {
		fmt.Printf("Dungeon with seed %s already archived\n", results.Seed())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error archiving dungeon: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dungeon archived as #%d (seed %s)\n", id, results.Seed())
}
