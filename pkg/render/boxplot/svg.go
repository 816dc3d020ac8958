package boxplot

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
)

// Series is one labelled sample.
type Series struct {
	Label  string
	Values []float64
}

// Default frame size in pixels (8x6 inches at 100 dpi).
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

const (
	marginTop    = 95.0
	marginBottom = 85.0
	marginLeft   = 80.0
	marginRight  = 30.0
	boxFraction  = 0.5 // box width relative to its slot
	capFraction  = 0.5 // whisker cap width relative to the box
	flierRadius  = 3.0
	tickLength   = 5.0
	targetTicks  = 6

	fontFamily   = "DejaVu Sans, Helvetica, Arial, sans-serif"
	colorAxis    = "#000000"
	colorBox     = "#000000"
	colorMedian  = "#ff7f0e"
	colorCaption = "#333333"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width, height float64
	whisker       float64
	title         string
	subtitle      string
	xLabel        string
	yLabel        string
	caption       string
}

// WithSize sets the frame size in pixels.
func WithSize(w, h float64) Option { return func(r *renderer) { r.width, r.height = w, h } }

// WithWhisker sets the whisker reach in multiples of the IQR.
func WithWhisker(k float64) Option { return func(r *renderer) { r.whisker = k } }

// WithTitle sets the plot title.
func WithTitle(s string) Option { return func(r *renderer) { r.title = s } }

// WithSubtitle sets the line drawn above the title.
func WithSubtitle(s string) Option { return func(r *renderer) { r.subtitle = s } }

// WithAxisLabels sets the x and y axis labels.
func WithAxisLabels(x, y string) Option {
	return func(r *renderer) { r.xLabel, r.yLabel = x, y }
}

// WithCaption sets the small centred note at the bottom of the figure.
func WithCaption(s string) Option { return func(r *renderer) { r.caption = s } }

// RenderSVG draws one box per series and returns the SVG document.
func RenderSVG(series []Series, opts ...Option) []byte {
	r := renderer{width: DefaultWidth, height: DefaultHeight, whisker: DefaultWhisker}
	for _, opt := range opts {
		opt(&r)
	}

	boxes := make([]Box, len(series))
	for i, s := range series {
		boxes[i] = Stats(s.Values, r.whisker)
	}
	ax := newAxis(boxes, r.height)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		r.width, r.height, r.width, r.height, fontFamily)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", r.width, r.height)

	r.renderHeader(&buf)
	r.renderAxes(&buf, ax, series)
	for i, b := range boxes {
		if b.Count == 0 {
			continue
		}
		r.renderBox(&buf, ax, r.slotCenter(i, len(series)), r.boxWidth(len(series)), b)
	}
	r.renderFooter(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) plotLeft() float64   { return marginLeft }
func (r *renderer) plotRight() float64  { return r.width - marginRight }
func (r *renderer) plotTop() float64    { return marginTop }
func (r *renderer) plotBottom() float64 { return r.height - marginBottom }

func (r *renderer) slotCenter(i, n int) float64 {
	slot := (r.plotRight() - r.plotLeft()) / float64(max(n, 1))
	return r.plotLeft() + (float64(i)+0.5)*slot
}

func (r *renderer) boxWidth(n int) float64 {
	return (r.plotRight() - r.plotLeft()) / float64(max(n, 1)) * boxFraction
}

// axis maps data values onto the vertical pixel range of the plot area.
type axis struct {
	lo, hi float64 // data range shown
	top    float64
	bottom float64
	ticks  []float64
}

func newAxis(boxes []Box, height float64) axis {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range boxes {
		if b.Count == 0 {
			continue
		}
		lo = min(lo, b.Low)
		hi = max(hi, b.High)
		for _, f := range b.Fliers {
			lo = min(lo, f)
			hi = max(hi, f)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	pad := (hi - lo) * 0.05
	lo, hi = lo-pad, hi+pad

	return axis{
		lo:     lo,
		hi:     hi,
		top:    marginTop,
		bottom: height - marginBottom,
		ticks:  niceTicks(lo, hi, targetTicks),
	}
}

func (a axis) y(v float64) float64 {
	return a.top + (a.hi-v)/(a.hi-a.lo)*(a.bottom-a.top)
}

// niceTicks returns tick positions within [lo, hi] spaced by 1, 2 or 5 times
// a power of ten, aiming for about n ticks.
func niceTicks(lo, hi float64, n int) []float64 {
	mant, pow := niceStep((hi - lo) / float64(n))
	// k*mant is an exact integer, so scaling it once keeps ticks such as
	// 0.6 free of accumulated rounding.
	tick := func(k float64) float64 {
		if pow < 0 {
			return k * mant / math.Pow(10, float64(-pow))
		}
		return k * mant * math.Pow(10, float64(pow))
	}
	step := tick(1)

	var ticks []float64
	for k := math.Ceil(lo / step); tick(k) <= hi+step*1e-9; k++ {
		ticks = append(ticks, tick(k))
	}
	return ticks
}

// niceStep rounds raw up to mant*10^pow with mant in {1, 2, 5}.
func niceStep(raw float64) (mant float64, pow int) {
	if raw <= 0 {
		return 1, 0
	}
	pow = int(math.Floor(math.Log10(raw)))
	switch f := raw / math.Pow(10, float64(pow)); {
	case f <= 1:
		return 1, pow
	case f <= 2:
		return 2, pow
	case f <= 5:
		return 5, pow
	default:
		return 1, pow + 1
	}
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (r *renderer) renderHeader(buf *bytes.Buffer) {
	if r.subtitle != "" {
		text(buf, r.width/2, 28, 14, "middle", "", r.subtitle)
	}
	if r.title != "" {
		text(buf, r.width/2, 62, 16, "middle", "", r.title)
	}
}

func (r *renderer) renderAxes(buf *bytes.Buffer, ax axis, series []Series) {
	left, right := r.plotLeft(), r.plotRight()
	top, bottom := r.plotTop(), r.plotBottom()

	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		left, top, right-left, bottom-top, colorAxis)

	for _, v := range ax.ticks {
		y := ax.y(v)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			left-tickLength, y, left, y, colorAxis)
		text(buf, left-tickLength-3, y+4, 11, "end", "", formatTick(v))
	}

	for i, s := range series {
		x := r.slotCenter(i, len(series))
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			x, bottom, x, bottom+tickLength, colorAxis)
		text(buf, x, bottom+tickLength+14, 11, "middle", "", s.Label)
	}

	if r.xLabel != "" {
		text(buf, (left+right)/2, bottom+44, 12, "middle", "", r.xLabel)
	}
	if r.yLabel != "" {
		cx, cy := 24.0, (top+bottom)/2
		text(buf, cx, cy, 12, "middle", fmt.Sprintf(`transform="rotate(-90 %.1f %.1f)"`, cx, cy), r.yLabel)
	}
}

func (r *renderer) renderBox(buf *bytes.Buffer, ax axis, cx, w float64, b Box) {
	x0, x1 := cx-w/2, cx+w/2
	capW := w * capFraction

	// whiskers and caps
	for _, seg := range [][2]float64{{b.Q3, b.High}, {b.Q1, b.Low}} {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="%s"/>`+"\n",
			cx, ax.y(seg[0]), cx, ax.y(seg[1]), colorBox)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="%s"/>`+"\n",
			cx-capW/2, ax.y(seg[1]), cx+capW/2, ax.y(seg[1]), colorBox)
	}

	yTop, yBottom := ax.y(b.Q3), ax.y(b.Q1)
	fmt.Fprintf(buf, `  <rect class="box" x="%.1f" y="%.2f" width="%.1f" height="%.2f" fill="none" stroke="%s"/>`+"\n",
		x0, yTop, x1-x0, yBottom-yTop, colorBox)
	fmt.Fprintf(buf, `  <line class="median" x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="%s" stroke-width="1.5"/>`+"\n",
		x0, ax.y(b.Median), x1, ax.y(b.Median), colorMedian)

	for _, f := range b.Fliers {
		fmt.Fprintf(buf, `  <circle class="flier" cx="%.1f" cy="%.2f" r="%.1f" fill="none" stroke="%s"/>`+"\n",
			cx, ax.y(f), flierRadius, colorBox)
	}
}

func (r *renderer) renderFooter(buf *bytes.Buffer) {
	if r.caption != "" {
		text(buf, r.width/2, r.height-12, 9, "middle", fmt.Sprintf(`fill="%s"`, colorCaption), r.caption)
	}
}

func text(buf *bytes.Buffer, x, y, size float64, anchor, attrs, s string) {
	if attrs != "" {
		attrs = " " + attrs
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.0f" text-anchor="%s"%s>%s</text>`+"\n",
		x, y, size, anchor, attrs, escapeXML(s))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
