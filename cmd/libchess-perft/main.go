// Command libchess-perft counts the leaf nodes of the legal move tree from a
// given position, optionally split per root move. With -cache, totals are
// cached in the perft store; per-move (-divide) output is not cached.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pkg/profile"

	chess "github.com/fumlig/libchess"
	"github.com/fumlig/libchess/internal/storage"
)

func main() {
	var fen string
	var depth int
	var divide, useCache, cpuProfile bool
	var cacheDir string

	flag.StringVar(&fen, "fen", "startpos", "position to count from")
	flag.IntVar(&depth, "depth", 5, "perft depth")
	flag.BoolVar(&divide, "divide", false, "print per-move node counts")
	flag.BoolVar(&useCache, "cache", false, "cache results in the perft store")
	flag.StringVar(&cacheDir, "cache-dir", "", "perft store directory (defaults to the user cache dir)")
	flag.BoolVar(&cpuProfile, "cpuprofile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	pos, err := chess.ParseFEN(fen)
	if err != nil {
		log.Fatalf("parse fen: %v", err)
	}

	var store *storage.Store
	if useCache {
		dir := cacheDir
		if dir == "" {
			dir, err = storage.DefaultDir()
			if err != nil {
				log.Fatalf("locate perft store: %v", err)
			}
		}
		store, err = storage.Open(dir)
		if err != nil {
			log.Fatalf("open perft store: %v", err)
		}
		defer store.Close()
	}

	if divide {
		var total int64
		for _, e := range chess.Divide(pos, depth) {
			fmt.Printf("%v: %d\n", e.Move, e.Nodes)
			total += e.Nodes
		}
		fmt.Printf("\n%d\n", total)
		return
	}

	if store != nil {
		if nodes, found, err := store.GetPerft(pos.Hash(), depth); err != nil {
			log.Fatalf("read perft store: %v", err)
		} else if found {
			fmt.Printf("%d (cached)\n", nodes)
			return
		}
	}

	nodes := chess.Perft(pos, depth)

	if store != nil {
		if err := store.PutPerft(pos.Hash(), depth, nodes); err != nil {
			log.Fatalf("write perft store: %v", err)
		}
	}

	fmt.Println(nodes)
}
