package activity

// Step moves index by delta with wraparound. The result is always in [0, count),
// or 0 when count is not positive.
func Step(index, delta, count int) int {
	if count <= 0 {
		return 0
	}
	index = Clamp(index, count)
	return ((index+delta)%count + count) % count
}

// PageStep jumps to the first entry of the next (forward) or previous page, wrapping
// around at either end.
func PageStep(index, pageSize, count int, forward bool) int {
	if count <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	index = Clamp(index, count)
	page := index / pageSize
	pages := (count + pageSize - 1) / pageSize
	if forward {
		page = (page + 1) % pages
	} else {
		page = (page - 1 + pages) % pages
	}
	return page * pageSize
}

// Clamp resets an index that no longer addresses an entry to 0.
func Clamp(index, count int) int {
	if index < 0 || index >= count {
		return 0
	}
	return index
}

// PageSize is the number of rows of rowHeight that fit into available, at least 1.
func PageSize(available, rowHeight int) int {
	if rowHeight <= 0 || available < rowHeight {
		return 1
	}
	return available / rowHeight
}
