package dvw

import "math"

// Scout coordinates are single integers indexing a 100-column grid laid
// over the court. The constants below convert grid cells to meters in
// the court frame used by downstream plotting tools.
const (
	courtXScale  = 3.7125
	courtXOffset = 0.14375
	courtYScale  = 7.4074
	courtYOffset = -0.2037
)

// IndexToXY converts a scout coordinate index to court x/y coordinates.
//
//	x, y := dvw.IndexToXY(1) // 0.14375, -0.2037
func IndexToXY(i int) (x, y float64) {
	row := math.Floor(float64(i-1) / 100)
	x = (float64(i-1)-row*100)/99*courtXScale + courtXOffset
	y = row/100*courtYScale + courtYOffset
	return x, y
}

// AddXY adds two court coordinate pairs.
func AddXY(x1, y1, x2, y2 float64) (x, y float64) {
	return x1 + x2, y1 + y2
}
