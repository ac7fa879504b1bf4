package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/cheesec4ke/conway/model"
	"github.com/cheesec4ke/conway/rules"
	"github.com/cheesec4ke/conway/utils"
)

// State identifies where the scheduler is in its lifecycle.
type State int

const (
	// Running means the simulation is advancing generation by generation.
	Running State = iota
	// CycleTerminal means a repeated board was found and the run is ending.
	CycleTerminal
	// CycleReset means a repeated board was found and the board is reseeding.
	CycleReset
	// Stopped means the run is over.
	Stopped
)

// Escape sequences used when composing a frame.
const (
	cursorHome   = "\x1b[H"
	clearLineEnd = "\x1b[K"
)

// Scheduler owns the grid, history, and pacing for one simulation run.
type Scheduler struct {
	cfg      utils.Config
	sink     model.Sink
	rng      *rand.Rand
	pool     *model.GridPool
	renderer *model.TerminalRenderer

	grid       *model.Grid
	history    *History
	generation int
	stats      *utils.Stats
	state      State
	deadline   time.Time
}

// NewScheduler seeds a fresh board and an empty history for one run.
func NewScheduler(cfg utils.Config, sink model.Sink, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		sink:     sink,
		rng:      rng,
		pool:     model.NewGridPool(),
		renderer: &model.TerminalRenderer{},
		grid:     model.NewRandomGrid(cfg.Width, cfg.Height, rng),
		history:  NewHistory(),
		stats:    utils.NewStats(),
		state:    Running,
	}
}

// Run drives iterations until a cycle ends the run or ctx is
// cancelled. Cancellation is polled at iteration boundaries only; the
// frame in progress always completes first.
func Run(ctx context.Context, cfg utils.Config, sink model.Sink, rng *rand.Rand) error {
	return NewScheduler(cfg, sink, rng).Run(ctx)
}

// Run loops the scheduler, pacing each iteration against an additive
// deadline. A late frame is not compensated: the deadline advances by
// exactly one interval per frame, so sustained overrun lags without a
// catch-up burst.
func (s *Scheduler) Run(ctx context.Context) error {
	s.deadline = time.Now().Add(s.cfg.FrameInterval)
	for s.state == Running {
		if ctx.Err() != nil {
			s.state = Stopped
			break
		}
		if err := s.step(); err != nil {
			return err
		}
		if s.state == Running && s.cfg.FrameInterval > 0 {
			sleepUntil(s.deadline)
			s.deadline = s.deadline.Add(s.cfg.FrameInterval)
		}
	}

	// Only an unthrottled run has a meaningful average to report.
	if s.cfg.FrameInterval == 0 && !s.cfg.Quiet {
		if err := s.report(fmt.Sprintf("FPS: ~%.2f", s.stats.FPS())); err != nil {
			return err
		}
	}
	return nil
}

// step runs one iteration: draw the current generation, classify it,
// and either advance, reseed, or stop.
func (s *Scheduler) step() error {
	if err := s.drawFrame(); err != nil {
		return err
	}
	s.stats.Frame()

	start, repeated := s.history.Classify(s.grid, s.generation)
	switch {
	case !repeated:
		next := rules.Next(s.grid, s.pool)
		s.pool.Put(s.grid)
		s.grid = next
		s.generation++
	case s.cfg.Infinite:
		s.state = CycleReset
		s.reseed()
	default:
		s.state = CycleTerminal
		if !s.cfg.Quiet {
			if err := s.report(fmt.Sprintf("Game started looping from generation %d", start)); err != nil {
				return err
			}
		}
		s.state = Stopped
	}
	return nil
}

// reseed discards the board and history and starts the run over from
// a fresh random grid.
func (s *Scheduler) reseed() {
	s.history.Reset()
	s.pool.Put(s.grid)
	s.grid = model.NewRandomGrid(s.cfg.Width, s.cfg.Height, s.rng)
	s.generation = 0
	s.state = Running
}

// drawFrame composes one complete frame and publishes it with a
// single write and flush.
func (s *Scheduler) drawFrame() error {
	board := s.renderer.Render(s.grid)
	frame := make([]byte, 0, len(cursorHome)+len(board)+64)
	frame = append(frame, cursorHome...)
	frame = append(frame, board...)
	if !s.cfg.Quiet {
		frame = append(frame, fmt.Sprintf("Generation: %d%s\n", s.generation, clearLineEnd)...)
		frame = append(frame, fmt.Sprintf("Population: %d%s\n", s.grid.Population(), clearLineEnd)...)
	}
	if _, err := s.sink.Write(frame); err != nil {
		return errors.Wrap(err, "[drawFrame] failed to write frame")
	}
	if err := s.sink.Flush(); err != nil {
		return errors.Wrap(err, "[drawFrame] failed to flush frame")
	}
	return nil
}

// report appends a message line below the last frame.
func (s *Scheduler) report(line string) error {
	if _, err := s.sink.Write([]byte(line + clearLineEnd + "\n")); err != nil {
		return errors.Wrap(err, "[report] failed to write message")
	}
	if err := s.sink.Flush(); err != nil {
		return errors.Wrap(err, "[report] failed to flush message")
	}
	return nil
}

// sleepUntil blocks until the deadline, returning immediately if it
// has already passed.
func sleepUntil(deadline time.Time) {
	if d := time.Until(deadline); d > 0 {
		time.Sleep(d)
	}
}
