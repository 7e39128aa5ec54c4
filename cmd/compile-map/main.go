// Package main provides the compile-map binary that rebuilds the
// aggregated map document from the hand-authored map content tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/cory-johannsen/mapcompiler/internal/compiler"
	"github.com/cory-johannsen/mapcompiler/internal/config"
	"github.com/cory-johannsen/mapcompiler/internal/mapdata"
	"github.com/cory-johannsen/mapcompiler/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (optional)")
	contentRoot := flag.String("content", "", "content root directory override")
	output := flag.String("output", "", "output file path override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentRoot != "" {
		cfg.Content.Root = *contentRoot
	}
	if *output != "" {
		cfg.Content.Output = *output
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	fsys := afero.NewOsFs()
	asm := compiler.New(fsys, mapdata.DefaultSettings(), logger)

	doc, err := asm.Assemble(cfg.Content.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("load    %d region(s), %d room(s) in %s\n",
		len(doc.Rooms), doc.TotalRooms, time.Since(start).Round(time.Millisecond))

	t1 := time.Now()
	size, err := compiler.WriteDocument(fsys, cfg.Content.Output, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote   %s  (%.2f MB)  in %s\n",
		cfg.Content.Output, float64(size)/(1024*1024), time.Since(t1).Round(time.Millisecond))
	fmt.Printf("total   %s\n", time.Since(start).Round(time.Millisecond))
}
