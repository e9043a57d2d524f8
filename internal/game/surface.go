package game

// Surface is the drawing target the game renders onto. Coordinates are in
// play-field units; colors are "#rrggbb" strings; alpha is 0..1.
type Surface interface {
	FillRect(x, y, w, h float64, color string)
	FillCircle(x, y, radius float64, color string, alpha float64)
	Line(x1, y1, x2, y2 float64, color string)
}
