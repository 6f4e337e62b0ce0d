// go2048-cli plays headless games with the expectimax AI. Useful for
// strength testing and profiling the search.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/go2048/internal/board"
	"github.com/hailam/go2048/internal/engine"
	"github.com/hailam/go2048/internal/game"
	"github.com/hailam/go2048/internal/storage"
)

var (
	depth      = flag.Int("depth", 8, "search depth limit (clamped to 15)")
	games      = flag.Int("games", 1, "number of games to play")
	verbose    = flag.Bool("v", false, "print every move")
	record     = flag.Bool("record", false, "record results to the stats database")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	var store *storage.Storage
	if *record {
		var err error
		store, err = storage.NewStorage()
		if err != nil {
			log.Printf("Warning: stats database unavailable: %v", err)
		} else {
			defer store.Close()
		}
	}

	eng := engine.NewEngine()
	for i := 0; i < *games; i++ {
		playGame(eng, store, i+1)
	}
}

// playGame runs one full game and prints its outcome.
func playGame(eng *engine.Engine, store *storage.Storage, n int) {
	state := game.NewState()
	state.Init()

	moves := 0
	for !state.GameOver() {
		move := eng.FindBestMove(state.Board(), *depth)
		if move == engine.NoMove {
			break
		}
		if !state.Move(board.Direction(move)) {
			log.Fatalf("game %d: AI returned illegal move %d for board\n%s",
				n, move, state.Board())
		}
		moves++

		if *verbose {
			info := eng.LastSearchInfo()
			fmt.Printf("move %d: %s (depth %d, %d nodes, %.1f%% cached)\n",
				moves, board.Direction(move), info.Depth, info.MovesEvaled, info.CacheRate)
			fmt.Print(state.Board())
		}
	}

	maxTile := 1 << board.MaxRank(state.Board())
	fmt.Printf("game %d: score %d, max tile %d, %d moves\n",
		n, state.Score(), maxTile, moves)

	if store != nil {
		err := store.RecordGame(storage.GameRecord{
			Score:   state.Score(),
			MaxTile: maxTile,
			Moves:   moves,
		})
		if err != nil {
			log.Printf("Warning: failed to record game: %v", err)
		}
	}
}
