package document

import (
	"math"

	"github.com/ledongthuc/pdf"
)

// affine is a PDF transform [a b c d e f]; a point maps to
// (a*x + c*y + e, b*x + d*y + f).
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

func (m affine) apply(x, y float64) pdf.Point {
	return pdf.Point{X: m[0]*x + m[2]*y + m[4], Y: m[1]*x + m[3]*y + m[5]}
}

// then returns m followed by n, which is what `cm` does with n as the current
// transform.
func (m affine) then(n affine) affine {
	return affine{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

type segment struct {
	a, b pdf.Point
}

// pageRulings walks the page's content stream and returns the painted ruling
// edges in page space. Rectangles and straight line segments both count; the
// current transform is applied to each. Paths ended with `n` (clipping) are not
// painted and are skipped.
func pageRulings(p pdf.Page) (hs, vs []edge) {
	strm := p.V.Key("Contents")
	if strm.Kind() == pdf.Null {
		return nil, nil
	}

	ctm := identity
	var stack []affine
	var rects []pdf.Rect
	var segs []segment
	var cur, start pdf.Point
	var open bool

	commit := func() {
		h, v := rulings(rects)
		hs, vs = append(hs, h...), append(vs, v...)
		for _, s := range segs {
			dx, dy := math.Abs(s.a.X-s.b.X), math.Abs(s.a.Y-s.b.Y)
			switch {
			case dx <= snapTolerance && dy <= snapTolerance:
			case dy <= snapTolerance:
				hs = append(hs, edge{pos: (s.a.Y + s.b.Y) / 2, from: math.Min(s.a.X, s.b.X), to: math.Max(s.a.X, s.b.X)})
			case dx <= snapTolerance:
				vs = append(vs, edge{pos: (s.a.X + s.b.X) / 2, from: math.Min(s.a.Y, s.b.Y), to: math.Max(s.a.Y, s.b.Y)})
			}
		}
	}
	discard := func() {
		rects, segs, open = nil, nil, false
	}

	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		num := func(i int) float64 { return args[i].Float64() }

		switch op {
		case "q":
			stack = append(stack, ctm)
		case "Q":
			if len(stack) > 0 {
				ctm = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		case "cm":
			if n == 6 {
				ctm = affine{num(0), num(1), num(2), num(3), num(4), num(5)}.then(ctm)
			}
		case "m":
			if n == 2 {
				cur = ctm.apply(num(0), num(1))
				start, open = cur, true
			}
		case "l":
			if n == 2 {
				next := ctm.apply(num(0), num(1))
				if open {
					segs = append(segs, segment{cur, next})
				}
				cur, open = next, true
			}
		case "c", "v", "y":
			if n >= 2 {
				cur = ctm.apply(num(n-2), num(n-1))
			}
		case "h":
			if open {
				segs = append(segs, segment{cur, start})
				cur = start
			}
		case "re":
			if n == 4 {
				x, y, w, h := num(0), num(1), num(2), num(3)
				corners := [4]pdf.Point{ctm.apply(x, y), ctm.apply(x+w, y), ctm.apply(x+w, y+h), ctm.apply(x, y+h)}
				r := pdf.Rect{Min: corners[0], Max: corners[0]}
				for _, c := range corners[1:] {
					r.Min.X, r.Max.X = math.Min(r.Min.X, c.X), math.Max(r.Max.X, c.X)
					r.Min.Y, r.Max.Y = math.Min(r.Min.Y, c.Y), math.Max(r.Max.Y, c.Y)
				}
				rects = append(rects, r)
				cur, start, open = corners[0], corners[0], true
			}
		case "s", "b", "b*":
			if open {
				segs = append(segs, segment{cur, start})
			}
			commit()
			discard()
		case "S", "f", "F", "f*", "B", "B*":
			commit()
			discard()
		case "n":
			discard()
		}
	})
	return hs, vs
}
