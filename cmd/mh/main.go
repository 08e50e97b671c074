// Command mh is the MovieHub debugging and maintenance CLI.
//
// Usage:
//
//	mh                          Show help
//	mh search <query>           Query /search/movie
//	mh discover --genre <id>    Query /discover/movie
//	mh details <id>             Show one movie
//	mh genres                   List the genre catalog
//	mh favorites                List saved favorites
//	mh events                   JSONL event log viewer
//	mh config                   Show or initialize the config file
package main

import (
	"fmt"
	"os"
)

const usage = `mh - MovieHub debug & maintenance CLI

Usage:
  mh <command> [flags]

Commands:
  search      Search movies by title
  discover    Browse movies by genre
  details     Show full details of a movie
  genres      List the TMDB genre catalog
  favorites   List or export the saved favorites
  events      JSONL event log viewer
  config      Show the effective config, or write it with --init

Environment:
  TMDB_API_KEY            TMDB API key (required for search, discover, details, genres)
  MOVIEHUB_FAVORITES_DB   Favorites database path

Run 'mh <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "discover":
		runDiscover()
	case "details":
		runDetails()
	case "genres":
		runGenres()
	case "favorites":
		runFavorites()
	case "events":
		runEvents()
	case "config":
		runConfig()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "mh: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
