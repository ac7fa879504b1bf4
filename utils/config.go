package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// DefaultFPS is the frame rate used when no target is supplied.
const DefaultFPS = 20

// Config holds the recognized options for one simulation run. Width
// and height of zero mean "derive from the terminal" and are filled
// in before validation.
type Config struct {
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	FrameInterval time.Duration `json:"frame_interval"`
	Quiet         bool          `json:"quiet"`
	Infinite      bool          `json:"infinite"`
	Color         string        `json:"color"`
	Seed          int64         `json:"seed"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		FrameInterval: time.Second / DefaultFPS,
		Seed:          time.Now().UnixNano(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "board width in cells (0: use terminal width)")
	fs.IntVar(&c.Height, "height", c.Height, "board height in cells (0: derive from terminal height)")
	fs.BoolVar(&c.Quiet, "quiet", c.Quiet, "suppress the statistics and report lines")
	fs.BoolVar(&c.Infinite, "infinite", c.Infinite, "reseed the board on cycle detection instead of exiting")
	fs.StringVar(&c.Color, "color", c.Color, "foreground color for the board")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random board")
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	if c.Width < 1 {
		return errors.Errorf("[Validate] width must be at least 1, got %d", c.Width)
	}
	if c.Height < 1 {
		return errors.Errorf("[Validate] height must be at least 1, got %d", c.Height)
	}
	if c.FrameInterval < 0 {
		return errors.Errorf("[Validate] frame interval must not be negative, got %s", c.FrameInterval)
	}
	return nil
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}
