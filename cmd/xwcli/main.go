// Command xwcli generates a crossword grid from a word list on the command
// line, for local experimentation with the solver.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"crosswarped.com/wizium"
	"crosswarped.com/wizium/internal/wordlist"
	"crosswarped.com/wizium/pkg/dictionary"
	"crosswarped.com/wizium/pkg/grid"
	"crosswarped.com/wizium/pkg/solver"
)

func parseBlackMode(s string) (solver.BlackMode, error) {
	switch strings.ToLower(s) {
	case "", "any":
		return solver.BlackAny, nil
	case "single":
		return solver.BlackSingle, nil
	case "two":
		return solver.BlackTwo, nil
	case "diagonal", "diag":
		return solver.BlackDiagonal, nil
	default:
		return 0, fmt.Errorf("unknown black mode %q", s)
	}
}

// loadBlackLayout reads a text grid ('.'  letter cell, '#' black cell) and
// applies it to m, returning its width and height.
func loadBlackLayout(m *wizium.Module, path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	var rows []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		rows = append(rows, line)
		if len(line) > width {
			width = len(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}
	height = len(rows)

	m.SetGridSize(width, height)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				m.SetBox(x, y, grid.Black)
			}
		}
	}
	return width, height, nil
}

func printGrid(m *wizium.Module) {
	for _, row := range m.ReadGridText() {
		fmt.Println(row)
	}
}

func main() {
	width := flag.Int("width", 5, "grid width, used only without -black-layout")
	height := flag.Int("height", 5, "grid height, used only without -black-layout")
	wordsFile := flag.String("words", "", "path to a newline-delimited word list")
	minLength := flag.Int("min-length", 2, "shortest word admitted from -words")
	blackLayout := flag.String("black-layout", "", "path to a fixed black-cell layout ('.'/'#'); runs the static solver")
	maxBlack := flag.Int("max-black", 0, "black-cell budget for the dynamic solver (ignored with -black-layout)")
	blackMode := flag.String("black-mode", "any", "any|single|two|diagonal")
	heuristic := flag.Int("heuristic", 6, "backtrack heuristic threshold; negative disables it")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "RNG seed")
	timeout := flag.Duration("timeout", 30*time.Second, "generation timeout")

	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	if *wordsFile == "" {
		log.Fatal("missing required -words flag")
	}

	f, err := os.Open(*wordsFile)
	if err != nil {
		log.Fatalw("opening word list", "path", *wordsFile, "error", err)
	}
	words, err := wordlist.Load(f, *minLength, 0)
	f.Close()
	if err != nil {
		log.Fatalw("loading word list", "error", err)
	}
	log.Infow("loaded words", "count", len(words))

	mode, err := parseBlackMode(*blackMode)
	if err != nil {
		log.Fatalw("parsing black mode", "error", err)
	}

	m := wizium.New(wizium.ModuleConfig{AlphabetSize: 26, MaxWordLength: dictionary.MaxWordLength})
	added := m.AddWords(words)
	log.Infow("indexed words", "added", added)

	gridWidth, gridHeight := *width, *height
	blackBoxes := int32(*maxBlack)
	if *blackLayout != "" {
		gridWidth, gridHeight, err = loadBlackLayout(m, *blackLayout)
		if err != nil {
			log.Fatalw("loading black layout", "error", err)
		}
		blackBoxes = 0
	} else {
		m.SetGridSize(gridWidth, gridHeight)
	}

	cfg := solver.Config{
		Seed:           uint32(*seed),
		MaxBlackBoxes:  blackBoxes,
		HeuristicLevel: int32(*heuristic),
		BlackMode:      mode,
	}

	start := time.Now()
	m.StartSolver(cfg)
	status := m.SolverStep(*timeout, 0)
	m.SolverStop()

	log.Infow("generation finished",
		"fillRate", status.FillRate,
		"attempts", status.Counter,
		"elapsed", time.Since(start),
	)

	if status.FillRate != 100 {
		log.Warn("failed to fully generate the grid within the timeout")
	}
	printGrid(m)
}
