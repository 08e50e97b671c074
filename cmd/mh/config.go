package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/moviehub/internal/config"
)

func runConfig() {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	initFile := fs.Bool("init", false, "Write the effective config to the config file (API key omitted)")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	path := config.ConfigPath()

	if *initFile {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "error: %s already exists\n", path)
			os.Exit(1)
		}
		out := *cfg
		out.TMDB.APIKey = "" // keys belong in the environment or keys.env
		if err := out.Save(path); err != nil {
			log.Fatalf("write config: %v", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return
	}

	shown := *cfg
	shown.TMDB.APIKey = maskKey(cfg.TMDB.APIKey)
	data, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		log.Fatalf("encode config: %v", err)
	}
	fmt.Printf("# %s\n%s\n", path, data)
}

// maskKey keeps the last four characters of an API key.
func maskKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 4 {
		return "****"
	}
	return "****" + k[len(k)-4:]
}
