package document

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	lineTolerance   = 3.0  // max baseline drift within one line, points
	snapTolerance   = 3.0  // ruling positions closer than this are one boundary
	gapFactor       = 0.25 // horizontal gap, in font sizes, that separates words
	defaultFontSize = 10.0
)

func glyphSize(g pdf.Text) float64 {
	if s := math.Abs(g.FontSize); s > 0 {
		return s
	}
	return defaultFontSize
}

func glyphWidth(g pdf.Text) float64 {
	if w := math.Abs(g.W); w > 0 {
		return w
	}
	return 0.5 * glyphSize(g)
}

// pageText renders all glyphs of a page as lines, top to bottom.
func pageText(glyphs []pdf.Text) string {
	return strings.Join(textLines(glyphs), "\n")
}

// textLines groups glyphs by baseline and joins each group left to right.
// Rotated labels come out one glyph per line, which is what ResolveUnit expects.
func textLines(glyphs []pdf.Text) []string {
	gs := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" && g.S != " " {
			continue
		}
		gs = append(gs, g)
	}
	if len(gs) == 0 {
		return nil
	}
	sort.SliceStable(gs, func(i, j int) bool {
		if gs[i].Y != gs[j].Y {
			return gs[i].Y > gs[j].Y
		}
		return gs[i].X < gs[j].X
	})

	var lines []string
	var cur []pdf.Text
	var top float64
	flush := func() {
		if s := joinLine(cur); s != "" {
			lines = append(lines, s)
		}
		cur = nil
	}
	for _, g := range gs {
		if len(cur) > 0 && top-g.Y > lineTolerance {
			flush()
		}
		if len(cur) == 0 {
			top = g.Y
		}
		cur = append(cur, g)
	}
	flush()
	return lines
}

func joinLine(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })
	var b strings.Builder
	var prevEnd float64
	for i, g := range glyphs {
		if i > 0 && g.X-prevEnd > gapFactor*glyphSize(g) {
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prevEnd = g.X + glyphWidth(g)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// edge is a ruling segment: pos is y for horizontal edges and x for vertical
// ones, [from, to] is the span along the other axis.
type edge struct {
	pos, from, to float64
}

func rulings(rects []pdf.Rect) (hs, vs []edge) {
	for _, r := range rects {
		x0, x1 := math.Min(r.Min.X, r.Max.X), math.Max(r.Min.X, r.Max.X)
		y0, y1 := math.Min(r.Min.Y, r.Max.Y), math.Max(r.Min.Y, r.Max.Y)
		thinY := y1-y0 <= snapTolerance
		thinX := x1-x0 <= snapTolerance
		switch {
		case thinX && thinY:
			continue
		case thinY:
			hs = append(hs, edge{pos: (y0 + y1) / 2, from: x0, to: x1})
		case thinX:
			vs = append(vs, edge{pos: (x0 + x1) / 2, from: y0, to: y1})
		default:
			hs = append(hs, edge{pos: y0, from: x0, to: x1}, edge{pos: y1, from: x0, to: x1})
			vs = append(vs, edge{pos: x0, from: y0, to: y1}, edge{pos: x1, from: y0, to: y1})
		}
	}
	return hs, vs
}

// boundaries returns the distinct edge positions, ascending.
func boundaries(es []edge) []float64 {
	ps := make([]float64, 0, len(es))
	for _, e := range es {
		ps = append(ps, e.pos)
	}
	sort.Float64s(ps)
	var out []float64
	for _, p := range ps {
		if len(out) > 0 && p-out[len(out)-1] <= snapTolerance {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ruled reports whether some edge lies on pos and spans at.
func ruled(es []edge, pos, at float64) bool {
	for _, e := range es {
		if math.Abs(e.pos-pos) <= snapTolerance && at >= e.from-snapTolerance && at <= e.to+snapTolerance {
			return true
		}
	}
	return false
}

type band struct {
	top, bottom float64
}

func (b band) mid() float64 { return (b.top + b.bottom) / 2 }

// extractTables builds ruled grids from the page's ruling edges. Consecutive
// row bands crossed by at least two vertical rulings form one table. Cells whose
// separating ruling is missing are merged into the cell above or to the left and
// reported as not Valid.
func extractTables(glyphs []pdf.Text, hs, vs []edge) []Table {
	ys := boundaries(hs)
	xs := boundaries(vs)
	if len(ys) < 2 || len(xs) < 2 {
		return nil
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ys)))

	var tables []Table
	var bands []band
	flush := func() {
		if len(bands) > 0 {
			if t := buildTable(bands, xs, hs, vs, glyphs); len(t) > 0 {
				tables = append(tables, t)
			}
		}
		bands = nil
	}
	for i := 0; i+1 < len(ys); i++ {
		b := band{top: ys[i], bottom: ys[i+1]}
		crossing := 0
		for _, x := range xs {
			if ruled(vs, x, b.mid()) {
				crossing++
			}
		}
		if crossing >= 2 {
			bands = append(bands, b)
		} else {
			flush()
		}
	}
	flush()
	return tables
}

func buildTable(bands []band, xs []float64, hs, vs []edge, glyphs []pdf.Text) Table {
	var cols []float64
	for _, x := range xs {
		for _, b := range bands {
			if ruled(vs, x, b.mid()) {
				cols = append(cols, x)
				break
			}
		}
	}
	if len(cols) < 2 {
		return nil
	}
	nr, nc := len(bands), len(cols)-1

	owner := make([][]int, nr)
	for r := range bands {
		owner[r] = make([]int, nc)
		for c := 0; c < nc; c++ {
			xmid := (cols[c] + cols[c+1]) / 2
			switch {
			case r > 0 && !ruled(hs, bands[r].top, xmid):
				owner[r][c] = owner[r-1][c]
			case c > 0 && !ruled(vs, cols[c], bands[r].mid()):
				owner[r][c] = owner[r][c-1]
			default:
				owner[r][c] = r*nc + c
			}
		}
	}

	byCell := make(map[int][]pdf.Text)
	for _, g := range glyphs {
		x := g.X + glyphWidth(g)/2
		y := g.Y + 0.25*glyphSize(g)
		r := sort.Search(nr, func(i int) bool { return bands[i].bottom <= y })
		if r == nr || y > bands[r].top {
			continue
		}
		c := sort.Search(nc, func(i int) bool { return cols[i+1] > x })
		if c == nc || x < cols[c] {
			continue
		}
		id := owner[r][c]
		byCell[id] = append(byCell[id], g)
	}

	table := make(Table, nr)
	for r := range table {
		row := make(Row, nc)
		for c := range row {
			id := r*nc + c
			if owner[r][c] != id {
				continue
			}
			row[c] = Cell{Text: strings.Join(textLines(byCell[id]), "\n"), Valid: true}
		}
		table[r] = row
	}
	return table
}
