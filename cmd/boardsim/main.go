package main

import (
	"context"
	"flag"
	"log"

	"tactics-board/engine/internal/app"
)

func main() {
	var cfg app.Config
	flag.StringVar(&cfg.SequencePath, "sequence", "", "path to a sequence document (json)")
	flag.StringVar(&cfg.View, "view", "full", "court view mode: full or half")
	flag.Float64Var(&cfg.FrameSeconds, "frame-seconds", 0, "seconds per frame transition (0 = default)")
	flag.Parse()

	if err := app.Run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}
