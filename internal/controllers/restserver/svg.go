package restserver

import (
	"fmt"
	"io"
	"math"

	"github.com/chrissnell/moonorbit/pkg/lunar"
)

// svgWriter emits a minimal SVG document
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svgWriter) start(size float64, width int) {
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="%d" height="%d">`+"\n",
		size, size, width, width)
}

func (s *svgWriter) end() {
	s.printf("</svg>\n")
}

func (s *svgWriter) circle(cx, cy, r float64, fill string) {
	s.printf(`<circle cx="%g" cy="%g" r="%g" fill="%s"/>`+"\n", cx, cy, r, fill)
}

func (s *svgWriter) ellipse(cx, cy, rx, ry float64, fill string) {
	s.printf(`<ellipse cx="%g" cy="%g" rx="%g" ry="%g" fill="%s"/>`+"\n", cx, cy, rx, ry, fill)
}

func (s *svgWriter) path(d, fill string) {
	s.printf(`<path d="%s" fill="%s"/>`+"\n", d, fill)
}

// writeMoonSVG draws the Moon's disk on a dark background with the lit
// region on top
func writeMoonSVG(w io.Writer, disk lunar.Disk, g lunar.Geometry, width int) error {
	s := &svgWriter{w: w}
	size := disk.CX + disk.CY

	s.start(size, width)
	s.circle(disk.CX, disk.CY, disk.R, lunar.DarkColor)

	switch {
	case g.Path != nil:
		if !g.Path.Empty {
			s.path(g.Path.D, lunar.LightColor)
		}
	case g.Mask != nil:
		m := g.Mask
		s.printf(`<g transform="rotate(%g %g %g)">`+"\n", m.Rotation, disk.CX, disk.CY)
		sweep := 0
		if m.IsWaxing {
			sweep = 1
		}
		s.printf(`<path d="M %g %g A %g %g 0 0 %d %g %g Z" fill="%s"/>`+"\n",
			disk.CX, disk.CY-disk.R, disk.R, disk.R, sweep, disk.CX, disk.CY+disk.R, lunar.LightColor)
		s.ellipse(disk.CX, disk.CY, math.Abs(m.Scale)*disk.R, disk.R, m.EllipseColor)
		s.printf("</g>\n")
	}

	s.end()
	return s.err
}
