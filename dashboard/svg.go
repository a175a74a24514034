package dashboard

import "math"
import "strconv"

// geometry of the rendered chart, in SVG user units
const (
	chartWidth  = 760
	chartHeight = 420
	marginLeft  = 70
	marginRight = 130
	marginTop   = 50
	marginBelow = 70
	barGap      = 0.25
)

type svgBar struct {
	X, Y, W, H float64
	Mid        float64
	Color      string
	Count      int
	Value      string
	Churn      string
}

type svgTick struct {
	Y     float64
	Label string
}

type svgCategory struct {
	X     float64
	Label string
}

type svgLegend struct {
	Y     float64
	Name  string
	Color string
}

type svgChart struct {
	Width, Height float64
	Left, Right   float64
	Top, Bottom   float64
	CenterX       float64
	LegendX       float64
	AxisY         float64 // y axis title position in the rotated frame

	Title, XAxis, YAxis string

	Bars       []svgBar
	Ticks      []svgTick
	Categories []svgCategory
	Legend     []svgLegend
}

// step rounds x up to 1, 2 or 5 times a power of ten
func step(x float64) float64 {
	if x <= 1 {
		return 1
	}
	p := math.Pow(10, math.Floor(math.Log10(x)))
	switch f := x / p; {
	case f <= 1:
		return p
	case f <= 2:
		return 2 * p
	case f <= 5:
		return 5 * p
	}
	return 10 * p
}

// layout places the bars of c slot by slot, one slot per category and one column per
// series inside the slot.
func layout(c *Chart) svgChart {
	s := svgChart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   marginLeft,
		Right:  chartWidth - marginRight,
		Top:    marginTop,
		Bottom: chartHeight - marginBelow,
		Title:  c.Title,
		XAxis:  c.XAxis,
		YAxis:  c.YAxis,
	}
	s.CenterX = (s.Left + s.Right) / 2
	s.LegendX = s.Right + 20
	s.AxisY = -(s.Top + s.Bottom) / 2

	var most int
	for _, b := range c.Bars {
		if b.Count > most {
			most = b.Count
		}
	}
	tick := step(float64(most) / 5)
	top := math.Max(tick, math.Ceil(float64(most)/tick)*tick)
	plot := s.Bottom - s.Top
	for v := 0.0; v <= top; v += tick {
		s.Ticks = append(s.Ticks, svgTick{
			Y:     s.Bottom - v/top*plot,
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}

	var slot = make(map[string]int, len(c.Categories))
	var slotW = (s.Right - s.Left) / math.Max(1, float64(len(c.Categories)))
	for i, name := range c.Categories {
		slot[name] = i
		s.Categories = append(s.Categories, svgCategory{X: s.Left + (float64(i)+0.5)*slotW, Label: name})
	}
	var column = make(map[string]int, len(c.Series))
	for i, name := range c.Series {
		column[name] = i
		color, ok := colors[name]
		if !ok {
			color = otherColor
		}
		s.Legend = append(s.Legend, svgLegend{Y: s.Top + 10 + float64(i)*22, Name: name, Color: color})
	}
	barW := slotW * (1 - barGap) / math.Max(1, float64(len(c.Series)))
	for _, b := range c.Bars {
		h := float64(b.Count) / top * plot
		x := s.Left + float64(slot[b.Value])*slotW + slotW*barGap/2 + float64(column[b.Churn])*barW
		s.Bars = append(s.Bars, svgBar{
			X:     x,
			Mid:   x + barW/2,
			Y:     s.Bottom - h,
			W:     barW,
			H:     h,
			Color: b.Color,
			Count: b.Count,
			Value: b.Value,
			Churn: b.Churn,
		})
	}
	return s
}
