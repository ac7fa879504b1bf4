package game

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/cheesec4ke/conway/model"
	"github.com/cheesec4ke/conway/utils"
)

// bufferSink captures frames in memory.
type bufferSink struct {
	bytes.Buffer
	flushes int
}

func (b *bufferSink) Flush() error {
	b.flushes++
	return nil
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) {
	return 0, errors.New("display surface gone")
}

func (failingSink) Flush() error {
	return nil
}

func TestRunStopsOnCycle(t *testing.T) {
	sink := &bufferSink{}
	cfg := utils.Config{Width: 3, Height: 3}

	// A 3x3 board has a finite state space, so an unthrottled run must
	// revisit a state and stop.
	if err := Run(context.Background(), cfg, sink, rand.New(rand.NewSource(5))); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := sink.String()
	if !strings.Contains(out, "Generation: 0") {
		t.Error("statistics line for generation 0 missing")
	}
	if !strings.Contains(out, "Population: ") {
		t.Error("population line missing")
	}
	if !strings.Contains(out, "Game started looping from generation ") {
		t.Error("cycle report missing")
	}
	if !strings.Contains(out, "FPS: ~") {
		t.Error("unthrottled run did not report average FPS")
	}
	if sink.flushes == 0 {
		t.Error("no frame was ever flushed")
	}
}

func TestRunQuietSuppressesReports(t *testing.T) {
	sink := &bufferSink{}
	cfg := utils.Config{Width: 3, Height: 3, Quiet: true}

	if err := Run(context.Background(), cfg, sink, rand.New(rand.NewSource(5))); err != nil {
		t.Fatalf("run: %v", err)
	}

	out := sink.String()
	for _, banned := range []string{"Generation:", "Population:", "looping", "FPS:"} {
		if strings.Contains(out, banned) {
			t.Errorf("quiet run printed %q", banned)
		}
	}
	if sink.Len() == 0 {
		t.Error("quiet run rendered no frames at all")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &bufferSink{}
	cfg := utils.Config{Width: 4, Height: 4, Quiet: true}
	if err := Run(ctx, cfg, sink, rand.New(rand.NewSource(2))); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sink.Len() != 0 {
		t.Fatalf("cancelled run wrote %d bytes", sink.Len())
	}
}

func TestRunPropagatesSinkFailure(t *testing.T) {
	cfg := utils.Config{Width: 4, Height: 4}
	err := Run(context.Background(), cfg, failingSink{}, rand.New(rand.NewSource(2)))
	if err == nil {
		t.Fatal("sink failure did not abort the run")
	}
	if !strings.Contains(err.Error(), "display surface gone") {
		t.Fatalf("error %q lost its cause", err)
	}
}

func TestInfiniteModeResetsOnCycle(t *testing.T) {
	cfg := utils.Config{Width: 4, Height: 4, Quiet: true, Infinite: true}
	s := NewScheduler(cfg, &bufferSink{}, rand.New(rand.NewSource(9)))

	// Force a known repeat: a still-life block already in the history.
	block := model.NewGrid(4, 4)
	block.Set(1, 1, true)
	block.Set(1, 2, true)
	block.Set(2, 1, true)
	block.Set(2, 2, true)
	s.grid = block
	s.generation = 3
	s.history.Classify(block, 3)

	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	if s.state != Running {
		t.Fatalf("state = %v, want Running", s.state)
	}
	if s.generation != 0 {
		t.Fatalf("generation = %d, want 0", s.generation)
	}
	if s.history.Len() != 0 {
		t.Fatalf("history size = %d, want 0", s.history.Len())
	}
	if s.grid.GetWidth() != 4 || s.grid.GetHeight() != 4 {
		t.Fatalf("reseeded grid is %dx%d, want 4x4", s.grid.GetWidth(), s.grid.GetHeight())
	}

	// Nothing from the discarded history can match the fresh board.
	if _, repeated := s.history.Classify(s.grid, 0); repeated {
		t.Fatal("fresh board matched a discarded state")
	}
}

func TestTerminalCycleStopsScheduler(t *testing.T) {
	cfg := utils.Config{Width: 4, Height: 4, Quiet: true}
	sink := &bufferSink{}
	s := NewScheduler(cfg, sink, rand.New(rand.NewSource(9)))

	block := model.NewGrid(4, 4)
	block.Set(1, 1, true)
	block.Set(1, 2, true)
	block.Set(2, 1, true)
	block.Set(2, 2, true)
	s.grid = block
	s.generation = 1
	s.history.Classify(block, 1)

	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if s.state != Stopped {
		t.Fatalf("state = %v, want Stopped", s.state)
	}
	if s.generation != 1 {
		t.Fatalf("generation advanced past the cycle: %d", s.generation)
	}
}
