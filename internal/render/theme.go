package render

import (
	"image"

	"github.com/rook-computer/shelf/internal/render/layout"
)

// DrawHeader draws the screen title and a rule under it.
func (c *Canvas) DrawHeader(rect image.Rectangle, title string) {
	c.FillRect(rect, White)
	inner := layout.Inset(rect, Margin)
	c.DrawTextInRect(title, inner, TextStyle{Size: FontTitle, Bold: true})
	c.FillRect(image.Rect(rect.Min.X, rect.Max.Y-BorderWidth, rect.Max.X, rect.Max.Y), Black)
}

// DrawTabBar draws equally sized tabs; the selected one is filled.
func (c *Canvas) DrawTabBar(rect image.Rectangle, tabs []string, selected int) {
	c.FillRect(rect, White)
	cols := layout.Columns(layout.Inset(rect, MenuItemGap), len(tabs), MenuItemGap)
	for i, col := range cols {
		style := TextStyle{Bold: true, Align: TextAlignCenter}
		if i == selected {
			c.FillRect(col, Black)
			style.Color = White
		} else {
			c.StrokeRect(col, BorderWidth, Black)
		}
		c.DrawTextInRect(tabs[i], col, style)
	}
}

// DrawButtonMenu draws stacked menu buttons starting at the top of rect.
// selected < 0 highlights nothing.
func (c *Canvas) DrawButtonMenu(rect image.Rectangle, items []string, selected int) {
	c.FillRect(rect, White)
	area := image.Rect(rect.Min.X+Margin, rect.Min.Y, rect.Max.X-Margin, rect.Max.Y)
	for i, label := range items {
		row := layout.Row(area, i, MenuItemHeight+MenuItemGap)
		if row.Empty() {
			return
		}
		button, _ := layout.SplitTop(row, MenuItemHeight)
		style := TextStyle{Align: TextAlignCenter}
		if i == selected {
			c.FillRect(button, Black)
			style.Color = White
			style.Bold = true
		} else {
			c.StrokeRect(button, BorderWidth, Black)
		}
		c.DrawTextInRect(label, button, style)
	}
}

// ListRow describes one visible list entry.
type ListRow struct {
	Title    string
	Subtitle string
}

// ListPageSize reports how many rows DrawList fits into rect.
func ListPageSize(rect image.Rectangle) int {
	n := rect.Dy() / ListRowHeight
	if n < 1 {
		return 1
	}
	return n
}

// DrawList draws the page of count rows that contains selected.
func (c *Canvas) DrawList(rect image.Rectangle, count, selected int, row func(i int) ListRow) {
	c.FillRect(rect, White)
	if count <= 0 {
		return
	}
	pageSize := ListPageSize(rect)
	if selected < 0 || selected >= count {
		selected = 0
	}
	start := (selected / pageSize) * pageSize
	for slot := 0; slot < pageSize && start+slot < count; slot++ {
		i := start + slot
		r := layout.Row(rect, slot, ListRowHeight)
		entry := row(i)
		titleStyle := TextStyle{}
		subStyle := TextStyle{Size: FontSmall, Color: Grey}
		if i == selected {
			c.FillRect(r, Black)
			titleStyle.Color = White
			titleStyle.Bold = true
			subStyle.Color = White
		}
		text := image.Rect(r.Min.X+Margin, r.Min.Y, r.Max.X-Margin, r.Max.Y)
		if entry.Subtitle == "" {
			c.DrawTextInRect(entry.Title, text, titleStyle)
			continue
		}
		top, bottom := layout.SplitTop(text, text.Dy()*3/5)
		c.DrawTextInRect(entry.Title, top, titleStyle)
		c.DrawTextInRect(entry.Subtitle, bottom, subStyle)
	}
	if pages := (count + pageSize - 1) / pageSize; pages > 1 {
		// Page position marker along the right edge.
		track := image.Rect(rect.Max.X-4, rect.Min.Y, rect.Max.X, rect.Max.Y)
		h := track.Dy() / pages
		page := selected / pageSize
		c.FillRect(image.Rect(track.Min.X, track.Min.Y+page*h, track.Max.X, track.Min.Y+(page+1)*h), Black)
	}
}

// DrawEmptyState draws a centered message, used for empty lists.
func (c *Canvas) DrawEmptyState(rect image.Rectangle, message string) {
	c.FillRect(rect, White)
	c.DrawTextInRect(message, rect, TextStyle{Color: Grey, Align: TextAlignCenter})
}

// DrawCoverCard draws a book tile: cover on top, title and author below.
// A nil cover draws a placeholder frame with the title.
func (c *Canvas) DrawCoverCard(rect image.Rectangle, cover image.Image, title, author string) {
	c.FillRect(rect, White)
	textHeight := c.MeasureText("Ag", TextStyle{Size: FontSmall}).LineHeight * 2
	coverRect, textRect := layout.SplitBottom(rect, textHeight+MenuItemGap)
	coverRect = layout.Inset(coverRect, MenuItemGap/2)
	if cover != nil {
		drawn := c.DrawImageInRect(cover, coverRect)
		c.StrokeRect(drawn, 1, Black)
	} else {
		c.StrokeRect(coverRect, BorderWidth, Black)
		c.DrawTextInRect(title, layout.Inset(coverRect, MenuItemGap), TextStyle{Size: FontSmall, Align: TextAlignCenter})
	}
	titleRect, authorRect := layout.SplitTop(textRect, textRect.Dy()/2)
	c.DrawTextInRect(title, titleRect, TextStyle{Size: FontSmall, Bold: true, Align: TextAlignCenter})
	c.DrawTextInRect(author, authorRect, TextStyle{Size: FontSmall, Color: Grey, Align: TextAlignCenter})
}

// DrawCoverPlaceholder marks a tile slot while data is still loading.
func (c *Canvas) DrawCoverPlaceholder(rect image.Rectangle) {
	c.FillRect(rect, White)
	c.StrokeRect(layout.Inset(rect, MenuItemGap/2), 1, Grey)
}

// DrawSelectionFrame outlines a selected region.
func (c *Canvas) DrawSelectionFrame(rect image.Rectangle) {
	c.StrokeRect(rect, SelectionWidth, Black)
}

// DrawButtonHints labels the four front buttons along the bottom edge.
// Empty labels leave their slot blank.
func (c *Canvas) DrawButtonHints(rect image.Rectangle, labels [4]string) {
	c.FillRect(rect, White)
	cols := layout.Columns(layout.Inset(rect, MenuItemGap/2), len(labels), MenuItemGap)
	for i, col := range cols {
		if labels[i] == "" {
			continue
		}
		c.StrokeRect(col, 1, Black)
		c.DrawTextInRect(labels[i], col, TextStyle{Size: FontSmall, Align: TextAlignCenter})
	}
}

// DrawSideButtonHints labels the side buttons with two tabs on the right edge of rect,
// stacked around its vertical middle. Empty labels are skipped.
func (c *Canvas) DrawSideButtonHints(rect image.Rectangle, up, down string) {
	x := rect.Max.X - SideHintWidth
	mid := rect.Min.Y + rect.Dy()/2
	boxes := [2]image.Rectangle{
		image.Rect(x, mid-MenuItemGap/2-SideHintHeight, rect.Max.X, mid-MenuItemGap/2),
		image.Rect(x, mid+MenuItemGap/2, rect.Max.X, mid+MenuItemGap/2+SideHintHeight),
	}
	for i, label := range [2]string{up, down} {
		if label == "" {
			continue
		}
		c.FillRect(boxes[i], White)
		c.StrokeRect(boxes[i], 1, Black)
		c.DrawTextInRect(label, boxes[i], TextStyle{Size: FontSmall, Align: TextAlignCenter})
	}
}

// DrawPopup draws a bordered message box centred in rect and returns its bounds.
// progress in [0,1] adds a bar under the message; a negative value omits it.
func (c *Canvas) DrawPopup(rect image.Rectangle, message string, progress float64) image.Rectangle {
	w, h := PopupWidth, PopupHeight
	if w > rect.Dx() {
		w = rect.Dx()
	}
	if h > rect.Dy() {
		h = rect.Dy()
	}
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	box := image.Rect(x, y, x+w, y+h)
	c.FillRect(box, White)
	c.StrokeRect(box, BorderWidth, Black)

	inner := layout.Inset(box, Margin)
	if progress < 0 {
		c.DrawTextInRect(message, inner, TextStyle{Size: FontSmall, Align: TextAlignCenter})
		return box
	}
	text, bar := layout.SplitBottom(inner, MenuItemGap*2)
	c.DrawTextInRect(message, text, TextStyle{Size: FontSmall, Align: TextAlignCenter})
	c.StrokeRect(bar, 1, Black)
	if progress > 1 {
		progress = 1
	}
	filled := bar
	filled.Max.X = bar.Min.X + int(float64(bar.Dx())*progress)
	c.FillRect(filled, Black)
	return box
}
