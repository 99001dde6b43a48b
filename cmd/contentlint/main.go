package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cory-johannsen/wildlands/internal/content"
)

func main() {
	dir := flag.String("content", "content", "path to the content directory")
	flag.Parse()

	start := time.Now()
	store, err := content.LoadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	findings := store.Lint()
	for _, f := range findings {
		fmt.Println(f.String())
	}
	if len(findings) > 0 {
		fmt.Fprintf(os.Stderr, "%d finding(s)\n", len(findings))
		os.Exit(1)
	}
	fmt.Printf("content ok: %d zones, %d recipes in %s\n",
		len(store.World.Zones()), len(store.Recipes.Recipes), time.Since(start).Round(time.Millisecond))
}
