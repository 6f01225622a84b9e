package svgtree

import (
	"fmt"
	"math"

	tstrconv "github.com/tdewolff/parse/v2/strconv"
)

// pathCursor compiles the 'd' attribute of a path element
type pathCursor struct {
	data []byte
	pos  int

	path PathData

	curX, curY     float64 // current point
	startX, startY float64 // start of the current sub path
	ctrlX, ctrlY   float64 // last control point, for smooth curves
	lastCmd        byte
	closed         bool // a Z command has just been read
}

// number of arguments expected by each command
var pathArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6,
	'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// parsePathData compiles an SVG path description.
// On error, the path compiled so far is returned, which is how
// SVG renderers handle invalid path data.
func parsePathData(d string) (PathData, error) {
	c := pathCursor{data: []byte(d)}
	err := c.compile()
	return c.path, err
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func (c *pathCursor) skipSeparators() {
	for c.pos < len(c.data) && (isSpace(c.data[c.pos]) || c.data[c.pos] == ',') {
		c.pos++
	}
}

func (c *pathCursor) readNumber() (float64, error) {
	c.skipSeparators()
	f, n := tstrconv.ParseFloat(c.data[c.pos:])
	if n == 0 {
		return 0, fmt.Errorf("invalid number at offset %d in %q", c.pos, c.data)
	}
	c.pos += n
	return f, nil
}

// arc flags may be written without separators, as in "a1 1 0 00 1 1"
func (c *pathCursor) readFlag() (float64, error) {
	c.skipSeparators()
	if c.pos < len(c.data) {
		switch c.data[c.pos] {
		case '0':
			c.pos++
			return 0, nil
		case '1':
			c.pos++
			return 1, nil
		}
	}
	return 0, fmt.Errorf("invalid arc flag in path data at offset %d", c.pos)
}

func isCommand(b byte) bool {
	_, ok := pathArgs[upper(b)]
	return ok
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func (c *pathCursor) compile() error {
	var (
		cmd  byte
		args [7]float64
	)
	for {
		c.skipSeparators()
		if c.pos >= len(c.data) {
			return nil
		}
		if b := c.data[c.pos]; isCommand(b) {
			cmd = b
			c.pos++
		} else if cmd == 0 {
			return fmt.Errorf("path data does not start with a command: %q", b)
		} else if upper(cmd) == 'Z' {
			return fmt.Errorf("unexpected argument after Z command at offset %d", c.pos)
		}
		// else: implicit repetition of the last command

		nb := pathArgs[upper(cmd)]
		for i := 0; i < nb; i++ {
			var err error
			if upper(cmd) == 'A' && (i == 3 || i == 4) {
				args[i], err = c.readFlag()
			} else {
				args[i], err = c.readNumber()
			}
			if err != nil {
				return err
			}
		}
		c.apply(cmd, args[:nb])

		// implicit repetitions of move are lines
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
}

// reopen starts a new sub path after a close command
func (c *pathCursor) reopen() {
	if c.closed {
		c.path.moveTo(c.startX, c.startY)
		c.closed = false
	}
}

func (c *pathCursor) apply(cmd byte, args []float64) {
	rel := cmd != upper(cmd)
	var dx, dy float64
	if rel {
		dx, dy = c.curX, c.curY
	}
	switch upper(cmd) {
	case 'M':
		c.curX, c.curY = args[0]+dx, args[1]+dy
		c.startX, c.startY = c.curX, c.curY
		c.path.moveTo(c.curX, c.curY)
		c.closed = false
	case 'L':
		c.reopen()
		c.curX, c.curY = args[0]+dx, args[1]+dy
		c.path.lineTo(c.curX, c.curY)
	case 'H':
		c.reopen()
		c.curX = args[0] + dx
		c.path.lineTo(c.curX, c.curY)
	case 'V':
		c.reopen()
		c.curY = args[0] + dy
		c.path.lineTo(c.curX, c.curY)
	case 'C':
		c.reopen()
		x1, y1, x2, y2 := args[0]+dx, args[1]+dy, args[2]+dx, args[3]+dy
		c.curX, c.curY = args[4]+dx, args[5]+dy
		c.path.cubicTo(x1, y1, x2, y2, c.curX, c.curY)
		c.ctrlX, c.ctrlY = x2, y2
	case 'S':
		c.reopen()
		x1, y1 := c.curX, c.curY
		if l := upper(c.lastCmd); l == 'C' || l == 'S' {
			x1, y1 = 2*c.curX-c.ctrlX, 2*c.curY-c.ctrlY
		}
		x2, y2 := args[0]+dx, args[1]+dy
		c.curX, c.curY = args[2]+dx, args[3]+dy
		c.path.cubicTo(x1, y1, x2, y2, c.curX, c.curY)
		c.ctrlX, c.ctrlY = x2, y2
	case 'Q':
		c.reopen()
		x1, y1 := args[0]+dx, args[1]+dy
		c.curX, c.curY = args[2]+dx, args[3]+dy
		c.path.QuadBezier(toFixedP(x1, y1), toFixedP(c.curX, c.curY))
		c.ctrlX, c.ctrlY = x1, y1
	case 'T':
		c.reopen()
		x1, y1 := c.curX, c.curY
		if l := upper(c.lastCmd); l == 'Q' || l == 'T' {
			x1, y1 = 2*c.curX-c.ctrlX, 2*c.curY-c.ctrlY
		}
		c.curX, c.curY = args[0]+dx, args[1]+dy
		c.path.QuadBezier(toFixedP(x1, y1), toFixedP(c.curX, c.curY))
		c.ctrlX, c.ctrlY = x1, y1
	case 'A':
		c.reopen()
		endX, endY := args[5]+dx, args[6]+dy
		rx, ry := math.Abs(args[0]), math.Abs(args[1])
		if rx == 0 || ry == 0 {
			c.path.lineTo(endX, endY)
		} else if endX != c.curX || endY != c.curY {
			c.path.arcTo(c.curX, c.curY, rx, ry, args[2], args[3] != 0, args[4] != 0, endX, endY)
		}
		c.curX, c.curY = endX, endY
	case 'Z':
		c.path.Stop(true)
		c.curX, c.curY = c.startX, c.startY
		c.closed = true
	}
	c.lastCmd = cmd
}
