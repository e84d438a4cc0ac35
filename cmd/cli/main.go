// Command cli pokes at a drink catalog without a Discord token: list the
// menu, try the fuzzy lookup, or sample the weighted draw distribution.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"barkeep/internal/bar"
	"barkeep/internal/catalog"
	"barkeep/internal/storage"
)

func main() {
	path := os.Getenv("CATALOG_PATH")
	if path == "" {
		path = "data/drinks.json"
	}

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cat, err := catalog.Load(path)
	if err != nil {
		log.Fatal("Failed to load catalog: ", err)
	}

	switch flag.Arg(0) {
	case "list":
		for _, it := range cat.Items() {
			fmt.Printf("%-16s %-10s %s\n", it.ID, it.Rarity, it.Label())
		}

	case "find":
		if flag.NArg() < 2 {
			log.Fatal("Usage: cli find <query>")
		}
		matches := cat.Search(flag.Arg(1), 3, 0)
		if len(matches) == 0 {
			fmt.Println("no match")
			return
		}
		for _, m := range matches {
			fmt.Printf("%3d  %-16s %s\n", m.Score, m.ID, m.Name)
		}

	case "sample":
		n := 10000
		if flag.NArg() > 1 {
			if _, err := fmt.Sscanf(flag.Arg(1), "%d", &n); err != nil {
				log.Fatal("Usage: cli sample [count]")
			}
		}
		// Threshold 1 and chance 1 make every evaluated message pour, so
		// each draw exercises the rarity-weighted selection.
		engine, err := bar.New(bar.Config{Threshold: 1, PourChance: 1}, cat)
		if err != nil {
			log.Fatal(err)
		}
		counts := map[string]int{}
		patron := storage.Patron{}
		for i := 0; i < n; i++ {
			out := engine.Evaluate(&patron, true, "@sample")
			patron = out.Patron
			counts[string(out.Granted.Rarity)]++
		}
		fmt.Printf("rarity-weighted draw over %d pours:\n", n)
		for rarity, count := range counts {
			fmt.Printf("  %-10s %6d (%.1f%%)\n", rarity, count, 100*float64(count)/float64(n))
		}

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: cli <command>

Commands:
  list            print the menu in catalog order
  find <query>    fuzzy-match a drink name
  sample [count]  run weighted pours and print the rarity distribution

The catalog path comes from CATALOG_PATH (default data/drinks.json).`)
}
