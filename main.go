package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cheesec4ke/conway/game"
	"github.com/cheesec4ke/conway/model"
	"github.com/cheesec4ke/conway/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("conway: %v", err)
	}
}

func run() error {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig("config.json")
	fromFile := err == nil
	if err != nil {
		config = utils.DefaultConfig()
	}

	fps := flag.Int("fps", -1, "target frames per second, 0 for unlimited (default: ask)")
	config.Bind(flag.CommandLine)
	flag.Parse()

	switch {
	case *fps > 0:
		config.FrameInterval = time.Second / time.Duration(*fps)
	case *fps == 0:
		config.FrameInterval = 0
	case !fromFile:
		config.FrameInterval = promptFrameInterval(utils.DefaultFPS)
	}

	applyTerminalDefaults(&config)
	if err := config.Validate(); err != nil {
		return err
	}

	sink := model.NewTermSink(os.Stdout)
	rng := rand.New(rand.NewSource(config.Seed))

	setupScreen(sink, config.Color)
	defer restoreScreen(sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return game.Run(ctx, config, sink, rng)
	})
	g.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case <-sigs:
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	return g.Wait()
}
