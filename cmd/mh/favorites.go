package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/moviehub/internal/tmdb"
)

func runFavorites() {
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)
	dbFlag := fs.String("db", "", "Favorites database (default: config or ~/.moviehub/favorites.db)")
	asJSON := fs.Bool("json", false, "Output the favorites as a JSON array")
	fs.Parse(os.Args[1:])

	path := *dbFlag
	if path == "" {
		path = favoritesPath(loadConfig())
	}
	st := openDB(path)
	defer st.Close()

	movies, err := st.Favorites()
	if err != nil {
		log.Fatalf("read favorites: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(movies); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}

	n, err := st.Count()
	if err != nil {
		log.Fatalf("count favorites: %v", err)
	}
	fmt.Printf("Favorites in %s: %d\n\n", path, n)
	printMovies(&tmdb.MoviePage{Page: 1, TotalPages: 1, TotalResults: len(movies), Results: movies})
}
