package model

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Half-block glyphs: each output character covers a vertical pair of
// cells, doubling the effective resolution of the terminal.
const (
	glyphFull  = '█' // top and bottom alive
	glyphUpper = '▀' // top alive
	glyphLower = '▄' // bottom alive
	glyphBlank = ' ' // neither alive
)

// Sink is the display surface for rendered frames. Callers issue one
// Write per frame and Flush to publish it.
type Sink interface {
	io.Writer
	Flush() error
}

// TermSink buffers writes to a terminal so each frame reaches the
// screen whole, never as a torn partial update.
type TermSink struct {
	w *bufio.Writer
}

// NewTermSink wraps the provided writer, normally os.Stdout.
func NewTermSink(w io.Writer) *TermSink {
	return &TermSink{w: bufio.NewWriter(w)}
}

func (s *TermSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		return n, errors.Wrap(err, "[TermSink.Write] failed to write frame")
	}
	return n, nil
}

// Flush publishes everything written since the previous flush.
func (s *TermSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return errors.Wrap(err, "[TermSink.Flush] failed to flush frame")
	}
	return nil
}

// TerminalRenderer serializes a grid into a frame buffer using
// half-block glyphs.
type TerminalRenderer struct{}

// Render builds the complete frame for a grid, pairing rows (0,1),
// (2,3), and so on into one output line each. An odd trailing row
// renders with upper-half glyphs only. The buffer is fully built
// before anything is written.
func (r *TerminalRenderer) Render(g *Grid) []byte {
	width, height := g.GetWidth(), g.GetHeight()
	buf := make([]byte, 0, (width*3+1)*((height+1)/2))
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			var glyph rune
			if y+1 < height {
				switch {
				case g.Get(x, y) && g.Get(x, y+1):
					glyph = glyphFull
				case g.Get(x, y):
					glyph = glyphUpper
				case g.Get(x, y+1):
					glyph = glyphLower
				default:
					glyph = glyphBlank
				}
			} else if g.Get(x, y) {
				glyph = glyphUpper
			} else {
				glyph = glyphBlank
			}
			buf = utf8.AppendRune(buf, glyph)
		}
		buf = append(buf, '\n')
	}
	return buf
}
