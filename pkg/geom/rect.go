package geom

// Rect is an axis-aligned rectangle. Min is the top-left corner and Max the
// bottom-right one (screen convention, Y grows downwards).
type Rect struct {
	Min Vec2 `json:"min" yaml:"min"`
	Max Vec2 `json:"max" yaml:"max"`
}

// R builds a rectangle from a corner and a size.
func R(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// RectFromPoints returns the rectangle spanned by two arbitrary corners.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{Min: a.Min(b), Max: a.Max(b)}
}

func (r Rect) Size() Vec2      { return r.Max.Sub(r.Min) }
func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Vec2    { return r.Min.Add(r.Max).Mul(0.5) }
func (r Rect) IsEmpty() bool   { return r.Width() <= 0 || r.Height() <= 0 }
func (r Rect) Canonical() Rect { return RectFromPoints(r.Min, r.Max) }
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Scale multiplies both corners by s (scaling about the origin).
func (r Rect) Scale(s float64) Rect {
	return Rect{Min: r.Min.Mul(s), Max: r.Max.Mul(s)}
}

// Contains reports whether p lies inside r. Min is inclusive, Max exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < r.Max.X && p.Y < r.Max.Y
}

// Overlaps reports whether r and o share interior area. Rectangles that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return o.Min.Y < r.Max.Y && o.Max.Y > r.Min.Y && o.Min.X < r.Max.X && o.Max.X > r.Min.X
}

// Intersect returns the common area of r and o; the result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{Min: r.Min.Max(o.Min), Max: r.Max.Min(o.Max)}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{Min: r.Min.Min(o.Min), Max: r.Max.Max(o.Max)}
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{Min: r.Min.Sub(Vec2{d, d}), Max: r.Max.Add(Vec2{d, d})}
}
