package layerfill

// FontStep is the fixed decrement used when shrinking text to fit.
const FontStep = 0.5

// SetText replaces the slot's text content.
func SetText(slot TextSlot, text string) error {
	return slot.SetText(text)
}

// FitWidth sets the slot's font size to initialSize, then greedily shrinks
// it in FontStep decrements until the rendered width is at or under maxWidth
// or the size reaches minSize, whichever comes first. The slot's bounds are
// re-queried after every change; layout is not assumed stable across size
// changes. The shrink is monotonic and may overshoot the ideal size by up to
// one step. Calling FitWidth twice with the same inputs converges on the
// same final size.
func FitWidth(slot TextSlot, maxWidth, initialSize, minSize float64) error {
	if err := slot.SetFontSize(initialSize); err != nil {
		return err
	}

	size := initialSize
	for slot.Bounds().Width() > maxWidth && size > minSize {
		size -= FontStep
		if size < minSize {
			size = minSize
		}
		if err := slot.SetFontSize(size); err != nil {
			return err
		}
	}
	return nil
}
