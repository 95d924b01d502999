package render

// CoverBuffer holds a snapshot of the whole frame so an expensive cover area can be
// restored instead of redrawn. Callers redraw only the regions that changed afterwards.
type CoverBuffer struct {
	buf []byte
}

// Store copies the canvas frame into the buffer, replacing any earlier snapshot.
// It reports false when the canvas has no frame.
func (b *CoverBuffer) Store(canvas *Canvas) bool {
	src := canvas.Buffer()
	if src == nil {
		return false
	}
	if cap(b.buf) < len(src) {
		b.buf = make([]byte, len(src))
	}
	b.buf = b.buf[:len(src)]
	copy(b.buf, src)
	return true
}

// Restore copies the stored snapshot back into the canvas frame.
// It reports false when nothing is stored or the frame size changed.
func (b *CoverBuffer) Restore(canvas *Canvas) bool {
	dst := canvas.Buffer()
	if b.buf == nil || dst == nil || len(dst) != len(b.buf) {
		return false
	}
	copy(dst, b.buf)
	return true
}

// Free drops the snapshot. Safe to call when nothing is stored.
func (b *CoverBuffer) Free() {
	b.buf = nil
}

func (b *CoverBuffer) Stored() bool { return b.buf != nil }
