package render

import (
	"image"
	"strings"
	"testing"
)

func TestTruncateFits(t *testing.T) {
	canvas := NewCanvasSize(100, 100)
	style := TextStyle{}
	long := strings.Repeat("wide words ", 20)
	out := canvas.Truncate(long, 120, style)
	if out == long {
		t.Fatalf("expected text to be shortened")
	}
	if !strings.HasSuffix(out, ellipsis) {
		t.Fatalf("expected ellipsis suffix, got %q", out)
	}
	if w := canvas.MeasureText(out, style).Width; w > 120 {
		t.Fatalf("truncated text is %dpx wide, limit 120", w)
	}
	if got := canvas.Truncate("ok", 120, style); got != "ok" {
		t.Fatalf("short text should be untouched, got %q", got)
	}
	if got := canvas.Truncate("anything", 0, style); got != "" {
		t.Fatalf("expected empty text for zero width, got %q", got)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	canvas := NewCanvasSize(200, 60)
	canvas.DrawText("Hello", 10, 10, TextStyle{})
	dark := 0
	for _, v := range canvas.Buffer() {
		if v < 0x80 {
			dark++
		}
	}
	if dark == 0 {
		t.Fatalf("expected text to darken some pixels")
	}
}

func TestDrawListHighlightsSelectedRow(t *testing.T) {
	canvas := NewCanvasSize(200, ListRowHeight*3)
	rect := canvas.Bounds()
	titles := []string{"a", "b", "c", "d", "e"}
	canvas.DrawList(rect, len(titles), 3, func(i int) ListRow { return ListRow{Title: titles[i]} })

	// Row 3 opens the second page.
	if got := canvas.Image().GrayAt(2, 2).Y; got != Black.Y {
		t.Fatalf("expected first slot of second page to be highlighted, got %d", got)
	}
	if got := canvas.Image().GrayAt(2, ListRowHeight+2).Y; got != White.Y {
		t.Fatalf("expected unselected row to stay white, got %d", got)
	}
	if got := canvas.Image().GrayAt(2, 2*ListRowHeight+2).Y; got != White.Y {
		t.Fatalf("expected the slot after the last row to stay blank, got %d", got)
	}
}

func TestSideButtonHintsSitOnTheRightEdge(t *testing.T) {
	canvas := NewCanvasSize(200, 400)
	canvas.DrawSideButtonHints(canvas.Bounds(), "^", "v")
	img := canvas.Image()
	if got := img.GrayAt(199, 200-MenuItemGap/2-1).Y; got != Black.Y {
		t.Fatalf("expected upper tab border at the right edge, got %d", got)
	}
	if got := img.GrayAt(199, 200+MenuItemGap/2).Y; got != Black.Y {
		t.Fatalf("expected lower tab border at the right edge, got %d", got)
	}
	for y := 0; y < 400; y++ {
		if got := img.GrayAt(200-SideHintWidth-1, y).Y; got != White.Y {
			t.Fatalf("side hints spilled left of the edge at y=%d", y)
		}
	}
}

func TestPopupProgressBar(t *testing.T) {
	canvas := NewCanvasSize(480, 400)
	box := canvas.DrawPopup(canvas.Bounds(), "Loading...", 0.5)
	if box.Dx() != PopupWidth || box.Dy() != PopupHeight {
		t.Fatalf("unexpected popup size %v", box)
	}
	if got := canvas.Image().GrayAt(box.Min.X, box.Min.Y).Y; got != Black.Y {
		t.Fatalf("expected popup border, got %d", got)
	}
	bar := image.Rect(box.Min.X+Margin, box.Max.Y-Margin-MenuItemGap*2, box.Max.X-Margin, box.Max.Y-Margin)
	mid := bar.Min.Y + bar.Dy()/2
	if got := canvas.Image().GrayAt(bar.Min.X+bar.Dx()/4, mid).Y; got != Black.Y {
		t.Fatalf("expected first half of the bar filled, got %d", got)
	}
	if got := canvas.Image().GrayAt(bar.Min.X+bar.Dx()*3/4, mid).Y; got != White.Y {
		t.Fatalf("expected second half of the bar empty, got %d", got)
	}
}

func TestListPageSize(t *testing.T) {
	if got := ListPageSize(image.Rect(0, 0, 10, ListRowHeight*4+10)); got != 4 {
		t.Fatalf("expected 4 rows, got %d", got)
	}
	if got := ListPageSize(image.Rect(0, 0, 10, 5)); got != 1 {
		t.Fatalf("expected at least one row, got %d", got)
	}
}

func TestMemoryDisplayCopiesFrames(t *testing.T) {
	display := NewMemoryDisplay()
	if display.Frame() != nil {
		t.Fatalf("expected no frame before first push")
	}
	calls := 0
	display.OnPush = func() { calls++ }

	canvas := NewCanvasSize(8, 8)
	canvas.FillRect(image.Rect(0, 0, 8, 8), Black)
	if err := display.Push(canvas.Image()); err != nil {
		t.Fatalf("push: %v", err)
	}
	canvas.Clear()

	frame := display.Frame()
	if frame.GrayAt(3, 3).Y != Black.Y {
		t.Fatalf("display frame must not alias the canvas")
	}
	if display.Pushes() != 1 || calls != 1 {
		t.Fatalf("expected one push and one hook call, got %d and %d", display.Pushes(), calls)
	}
}
