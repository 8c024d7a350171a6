package charts

import (
	"strconv"
	"strings"
)

// PathOp is a path drawing command
type PathOp int

const (
	OpMoveTo PathOp = iota
	OpLineTo
	OpClose
)

// PathCommand is one step of a Path. X and Y are unused for OpClose.
type PathCommand struct {
	Op   PathOp
	X, Y float64
}

// Path accumulates drawing commands and renders them as SVG path data
type Path struct {
	cmds []PathCommand
}

// NewPath creates an empty path
func NewPath() *Path {
	return &Path{}
}

func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, PathCommand{Op: OpMoveTo, X: x, Y: y})
}

func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, PathCommand{Op: OpLineTo, X: x, Y: y})
}

// ClosePath ends the current subpath back at its starting point
func (p *Path) ClosePath() {
	p.cmds = append(p.cmds, PathCommand{Op: OpClose})
}

// Commands returns the recorded commands
func (p *Path) Commands() []PathCommand {
	if p == nil {
		return nil
	}
	return p.cmds
}

// Len returns the number of commands
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.cmds)
}

// Closed reports whether the path is non-empty and every subpath ends with a close
func (p *Path) Closed() bool {
	if p.Len() == 0 {
		return false
	}
	open := false
	for _, c := range p.cmds {
		switch c.Op {
		case OpMoveTo:
			if open {
				return false
			}
			open = true
		case OpClose:
			open = false
		}
	}
	return !open
}

// String renders SVG path data, e.g. "M65,20L380,280Z"
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for _, c := range p.cmds {
		switch c.Op {
		case OpMoveTo:
			sb.WriteByte('M')
			writePoint(&sb, c.X, c.Y)
		case OpLineTo:
			sb.WriteByte('L')
			writePoint(&sb, c.X, c.Y)
		case OpClose:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

func writePoint(sb *strings.Builder, x, y float64) {
	sb.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(y, 'f', -1, 64))
}
