// Command wumpus plays Hunt the Wumpus on the terminal
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/debater-coder/wumpus/game"
	"github.com/debater-coder/wumpus/levels"
	"github.com/debater-coder/wumpus/models"
)

func main() {
	levelName := flag.String("level", levels.Default, "built-in level to play")
	mapFile := flag.String("map", "", "custom level map (JSON), overrides -level")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	debug := flag.Bool("debug", false, "print the level and every resolved event")
	flag.Parse()

	caves, err := loadCaves(*levelName, *mapFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if *seed == 0 {
		*seed = rand.Int63()
	}
	c := &console{
		caves:  caves,
		rng:    rand.New(rand.NewSource(*seed)),
		debug:  *debug,
		logger: logger,
	}
	if err := c.run(os.Stdin, os.Stdout); err != nil {
		logger.Error("Game aborted", "error", err)
		os.Exit(1)
	}
}

func loadCaves(levelName, mapFile string) ([]models.Cave, error) {
	var (
		data []byte
		err  error
	)
	if mapFile != "" {
		data, err = os.ReadFile(mapFile)
	} else {
		data, err = levels.Read(levelName)
	}
	if err != nil {
		return nil, err
	}
	return game.ParseLevelMap(data)
}

// discard is the logger for games without -debug
var discard = slog.New(slog.NewTextHandler(io.Discard, nil))
