package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/abelbrown/moviehub/internal/tmdb"
)

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	page := fs.Int("page", 1, "Result page")
	fs.Parse(os.Args[1:])

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "usage: mh search [--page N] <query>")
		os.Exit(1)
	}

	client := newClient(loadConfig())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	t0 := time.Now()
	res, err := client.Search(ctx, query, *page)
	if err != nil {
		exitErr("search", err)
	}
	fmt.Printf(">>> %q in %v\n\n", query, time.Since(t0).Round(time.Millisecond))
	printMovies(res)
}

func runDiscover() {
	fs := flag.NewFlagSet("discover", flag.ExitOnError)
	genre := fs.Int("genre", 0, "Genre id (see 'mh genres'); 0 means any")
	page := fs.Int("page", 1, "Result page")
	fs.Parse(os.Args[1:])

	client := newClient(loadConfig())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	res, err := client.Discover(ctx, *genre, *page)
	if err != nil {
		exitErr("discover", err)
	}
	printMovies(res)
}

func runDetails() {
	fs := flag.NewFlagSet("details", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: mh details <movie-id>")
		os.Exit(1)
	}
	id, err := strconv.Atoi(fs.Arg(0))
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "error: invalid movie id %q\n", fs.Arg(0))
		os.Exit(1)
	}

	client := newClient(loadConfig())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	d, err := client.Details(ctx, id)
	if err != nil {
		exitErr("details", err)
	}

	fmt.Printf("%s (%s)\n", d.Title, tmdb.ReleaseYear(d.ReleaseDate))
	if d.Tagline != "" {
		fmt.Printf("  %q\n", d.Tagline)
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Rating:    ★ %s (%d votes)\n", tmdb.FormatRating(d.VoteAverage), d.VoteCount)
	fmt.Printf("Released:  %s\n", tmdb.FormatDate(d.ReleaseDate))
	fmt.Printf("Runtime:   %s\n", tmdb.FormatRuntime(d.Runtime))
	fmt.Printf("Genres:    %s\n", strings.Join(d.GenreNames(), ", "))
	if d.Budget > 0 {
		fmt.Printf("Budget:    %s\n", tmdb.FormatMoney(d.Budget))
	}
	if d.Revenue > 0 {
		fmt.Printf("Revenue:   %s\n", tmdb.FormatMoney(d.Revenue))
	}
	fmt.Printf("Poster:    %s\n", tmdb.ImageURL(d.PosterPath, tmdb.SizeW500))
	fmt.Printf("\n%s\n", d.Overview)
}

func runGenres() {
	fs := flag.NewFlagSet("genres", flag.ExitOnError)
	fs.Parse(os.Args[1:])

	client := newClient(loadConfig())
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	genres, err := client.Genres(ctx)
	if err != nil {
		exitErr("genres", err)
	}
	for _, g := range genres {
		fmt.Printf("%6d  %s\n", g.ID, g.Name)
	}
}

// exitErr prints err with a hint for the error kind and exits.
func exitErr(op string, err error) {
	var netErr *tmdb.NetworkError
	var fmtErr *tmdb.ResponseFormatError
	switch {
	case errors.As(err, &netErr) && netErr.StatusCode == 401:
		fmt.Fprintf(os.Stderr, "%s: %v\n  check TMDB_API_KEY\n", op, err)
	case errors.As(err, &netErr):
		fmt.Fprintf(os.Stderr, "%s: network error: %v\n", op, err)
	case errors.As(err, &fmtErr):
		fmt.Fprintf(os.Stderr, "%s: unexpected response: %v\n", op, err)
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", op, err)
	}
	os.Exit(1)
}
