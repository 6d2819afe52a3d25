// Package mockup draws device frames as SVG with rendered terminal text on
// their screens.
package mockup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/charmbracelet/x/ansi"
)

var ErrUnknownFrame = errors.New("unknown frame")

type Frame int

const (
	Macbook Frame = iota
	IPad
	Monitor
	DualMonitor
)

var frameNames = map[Frame]string{
	Macbook:     "macbook",
	IPad:        "ipad",
	Monitor:     "monitor",
	DualMonitor: "dual-monitor",
}

func (f Frame) String() string {
	if s, ok := frameNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Frame(%d)", int(f))
}

// ParseFrame maps a frame name as printed by String back to a Frame.
func ParseFrame(name string) (Frame, error) {
	for f, s := range frameNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}

// Frames lists every frame in declaration order.
func Frames() []Frame { return []Frame{Macbook, IPad, Monitor, DualMonitor} }

// Screen is a display area in frame coordinates.
type Screen struct {
	X, Y, W, H int
	// R is the corner radius.
	R int
}

type device struct {
	w, h    int
	screens []Screen
	draw    func(s *svg.SVG)
}

var devices = map[Frame]device{
	Macbook: {
		w: 680, h: 390,
		screens: []Screen{{X: 84, Y: 16, W: 512, H: 328, R: 8}},
		draw: func(s *svg.SVG) {
			s.Roundrect(68, 0, 544, 360, 20, 20, "fill:"+bodyFill)
			s.Roundrect(72, 4, 536, 352, 16, 16, "fill:"+innerFill)
			s.Roundrect(84, 16, 512, 328, 8, 8, "fill:"+screenFill)
			camera(s, 340, 9)
			s.Path("M50 360H630C630 360 632 360 632 361.5V364C632 365.5 630 366 628 366H52C50 366 48 365.5 48 364V361.5C48 360 50 360 50 360Z", "fill:"+edgeFill)
			s.Path("M10 366H670C675.523 366 680 370.477 680 376V382C680 387.523 675.523 390 670 390H10C4.477 390 0 387.523 0 382V376C0 370.477 4.477 366 10 366Z", "fill:"+bodyFill)
			s.Path("M10 366H670C675.523 366 680 370.477 680 376V369C680 367.343 678.657 366 677 366H3C1.343 366 0 367.343 0 369V376C0 370.477 4.477 366 10 366Z", "fill:"+innerFill+";opacity:0.5")
		},
	},
	IPad: {
		w: 560, h: 778,
		screens: []Screen{{X: 18, Y: 15, W: 524, H: 748, R: 35}},
		draw: func(s *svg.SVG) {
			s.Path("M2 40C2 17.9086 19.9086 0 42 0H518C540.091 0 558 17.9086 558 40V738C558 760.091 540.091 778 518 778H42C19.9086 778 2 760.091 2 738V40Z", "fill:"+bodyFill)
			s.Path("M6 41C6 20.5655 22.5655 4 43 4H517C537.435 4 554 20.5655 554 41V737C554 757.435 537.435 774 517 774H43C22.5655 774 6 757.435 6 737V41Z", "fill:"+innerFill)
			s.Roundrect(18, 15, 524, 748, 35, 35, "fill:"+screenFill)
			camera(s, 280, 8)
		},
	},
	Monitor: {
		w: 580, h: 440,
		screens: []Screen{{X: 24, Y: 14, W: 532, H: 310, R: 8}},
		draw: func(s *svg.SVG) {
			s.Roundrect(10, 0, 560, 350, 20, 20, "fill:"+bodyFill)
			s.Roundrect(14, 4, 552, 342, 16, 16, "fill:"+innerFill)
			s.Roundrect(24, 14, 532, 310, 8, 8, "fill:"+screenFill)
			camera(s, 290, 8)
			s.Roundrect(265, 332, 50, 4, 2, 2, "fill:"+edgeFill+";opacity:0.5")
			stand(s, "M255 350H325V395H255V350Z", "M260 350H320V395H260V350Z")
			s.Path("M190 395H390C400 395 405 400 405 410V420C405 430 400 440 390 440H190C180 440 175 430 175 420V410C175 400 180 395 190 395Z", "fill:"+bodyFill)
			s.Path("M190 395H390C400 395 405 400 405 410V400C405 397 402 395 399 395H181C178 395 175 397 175 400V410C175 400 180 395 190 395Z", "fill:"+innerFill+";opacity:0.5")
		},
	},
	DualMonitor: {
		w: 940, h: 379,
		screens: []Screen{
			{X: 14, Y: 14, W: 442, H: 249, R: 8},
			{X: 484, Y: 14, W: 442, H: 249, R: 8},
		},
		draw: func(s *svg.SVG) {
			s.Path("M30 0H470V289H30C13.431 289 0 275.569 0 259V30C0 13.431 13.431 0 30 0Z", "fill:"+bodyFill)
			s.Path("M30 4H466V285H30C17.85 285 4 275.15 4 263V26C4 13.85 17.85 4 30 4Z", "fill:"+innerFill)
			s.Path("M22 14H456V263H22C17.582 263 14 259.418 14 255V22C14 17.582 17.582 14 22 14Z", "fill:"+screenFill)
			s.Path("M470 0H910C926.569 0 940 13.431 940 30V259C940 275.569 926.569 289 910 289H470V0Z", "fill:"+bodyFill)
			s.Path("M474 4H910C922.15 4 936 13.85 936 26V263C936 275.15 922.15 285 910 285H474V4Z", "fill:"+innerFill)
			s.Path("M484 14H918C922.418 14 926 17.582 926 22V255C926 259.418 922.418 263 918 263H484V14Z", "fill:"+screenFill)
			stand(s, "M435 289H505V379H435V289Z", "M440 289H500V379H440V289Z")
		},
	},
}

const (
	bodyFill   = "#E5E5E5"
	innerFill  = "#FFFFFF"
	edgeFill   = "#D4D4D4"
	screenFill = "#262626"
	textFill   = "#F5F5F5"

	fontSize   = 12
	lineHeight = 14
	// charWidth approximates a monospace advance at fontSize.
	charWidth = 7
	padding   = 8
)

// Size returns the frame's viewBox dimensions.
func (f Frame) Size() (w, h int) {
	dev, ok := devices[f]
	if !ok {
		return 0, 0
	}
	return dev.w, dev.h
}

// Screens returns the frame's display areas, left to right.
func (f Frame) Screens() []Screen {
	return append([]Screen(nil), devices[f].screens...)
}

// Grid returns how many text columns and rows fit on a screen.
func (sc Screen) Grid() (cols, rows int) {
	return max((sc.W-2*padding)/charWidth, 0), max((sc.H-2*padding)/lineHeight, 0)
}

// Render writes frame f as an SVG document. Each screens entry holds the text
// lines of the matching display area; ANSI sequences are stripped and lines
// are clipped to the screen's grid.
func Render(w io.Writer, f Frame, screens ...[]string) error {
	dev, ok := devices[f]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFrame, f)
	}
	if len(screens) > len(dev.screens) {
		return fmt.Errorf("%v has %d screen(s), got %d", f, len(dev.screens), len(screens))
	}

	ew := &errWriter{w: w}
	s := svg.New(ew)
	s.Start(dev.w, dev.h, fmt.Sprintf(`viewBox="0 0 %d %d"`, dev.w, dev.h))

	s.Def()
	for i, sc := range dev.screens {
		s.ClipPath(fmt.Sprintf(`id="%s"`, clipID(f, i)))
		s.Roundrect(sc.X, sc.Y, sc.W, sc.H, sc.R, sc.R)
		s.ClipEnd()
	}
	s.DefEnd()

	dev.draw(s)
	for i, lines := range screens {
		drawText(s, dev.screens[i], clipID(f, i), lines)
	}
	s.End()
	return ew.err
}

func drawText(s *svg.SVG, sc Screen, clip string, lines []string) {
	cols, rows := sc.Grid()
	s.Group(
		fmt.Sprintf(`clip-path="url(#%s)"`, clip),
		fmt.Sprintf("font-family:monospace;font-size:%dpx;fill:%s;white-space:pre", fontSize, textFill),
	)
	for i, line := range lines {
		if i >= rows {
			break
		}
		text := ansi.Truncate(ansi.Strip(line), cols, "")
		if strings.TrimSpace(text) == "" {
			continue
		}
		s.Text(sc.X+padding, sc.Y+padding+(i+1)*lineHeight-3, text, `xml:space="preserve"`)
	}
	s.Gend()
}

func camera(s *svg.SVG, cx, cy int) {
	s.Circle(cx, cy, 3, "fill:"+edgeFill)
	s.Circle(cx, cy, 1, "fill:"+screenFill)
}

func stand(s *svg.SVG, outer, inner string) {
	s.Path(outer, "fill:"+bodyFill)
	s.Path(inner, "fill:"+innerFill)
}

func clipID(f Frame, i int) string { return fmt.Sprintf("%s-screen-%d", f, i) }

// errWriter keeps the first write error; svgo ignores them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
