package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	// image.Rect would swap inverted corners, so build the rectangle directly.
	out := image.Rectangle{
		Min: image.Pt(rect.Min.X+paddingPx, rect.Min.Y+paddingPx),
		Max: image.Pt(rect.Max.X-paddingPx, rect.Max.Y-paddingPx),
	}
	if out.Dx() < 0 || out.Dy() < 0 {
		center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
		return image.Rectangle{Min: center, Max: center}
	}
	return out
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitTop cuts a band of heightPx off the top of rect.
// heightPx is clamped to [0, rect.Dy()].
func SplitTop(rect image.Rectangle, heightPx int) (top image.Rectangle, rest image.Rectangle) {
	rect = Normalize(rect)
	heightPx = clamp(heightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+heightPx)
	rest = image.Rect(rect.Min.X, rect.Min.Y+heightPx, rect.Max.X, rect.Max.Y)
	return top, rest
}

// SplitBottom cuts a band of heightPx off the bottom of rect.
func SplitBottom(rect image.Rectangle, heightPx int) (rest image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	heightPx = clamp(heightPx, 0, rect.Dy())
	rest = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y-heightPx)
	bottom = image.Rect(rect.Min.X, rect.Max.Y-heightPx, rect.Max.X, rect.Max.Y)
	return rest, bottom
}

// Columns divides rect into n equal columns separated by gapPx.
// The last column absorbs any rounding remainder.
func Columns(rect image.Rectangle, n, gapPx int) []image.Rectangle {
	rect = Normalize(rect)
	if n <= 0 {
		return nil
	}
	if gapPx < 0 {
		gapPx = 0
	}
	width := (rect.Dx() - gapPx*(n-1)) / n
	if width < 0 {
		width = 0
	}
	out := make([]image.Rectangle, n)
	x := rect.Min.X
	for i := 0; i < n; i++ {
		maxX := x + width
		if i == n-1 {
			maxX = rect.Max.X
		}
		out[i] = image.Rect(x, rect.Min.Y, maxX, rect.Max.Y)
		x = maxX + gapPx
	}
	return out
}

// Row returns the i-th row of height rowHeightPx inside rect, counted from the top.
// Rows that fall outside rect come back empty.
func Row(rect image.Rectangle, i, rowHeightPx int) image.Rectangle {
	rect = Normalize(rect)
	if i < 0 || rowHeightPx <= 0 {
		return image.Rectangle{}
	}
	minY := rect.Min.Y + i*rowHeightPx
	if minY >= rect.Max.Y {
		return image.Rectangle{}
	}
	maxY := minY + rowHeightPx
	if maxY > rect.Max.Y {
		maxY = rect.Max.Y
	}
	return image.Rect(rect.Min.X, minY, rect.Max.X, maxY)
}

// FitAspect returns the largest rectangle with the aspect ratio of srcW:srcH that fits
// into rect, centered.
func FitAspect(rect image.Rectangle, srcW, srcH int) image.Rectangle {
	rect = Normalize(rect)
	if srcW <= 0 || srcH <= 0 || rect.Empty() {
		return image.Rectangle{}
	}
	w := rect.Dx()
	h := w * srcH / srcW
	if h > rect.Dy() {
		h = rect.Dy()
		w = h * srcW / srcH
	}
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
