package state

// MoveCursorHome moves the cursor to the first item.
func (s *Select) MoveCursorHome() bool {
	if len(s.Items) == 0 {
		s.Cursor = -1
		return false
	}
	old := s.Cursor
	s.Cursor = 0
	return old != s.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (s *Select) MoveCursorEnd() bool {
	n := len(s.Items)
	if n == 0 {
		s.Cursor = -1
		return false
	}
	old := s.Cursor
	s.Cursor = n - 1
	return old != s.Cursor
}

// MoveCursorUp moves the cursor one option up, wrapping to the last option.
func (s *Select) MoveCursorUp() bool {
	n := len(s.Items)
	if n == 0 {
		return false
	}
	old := s.Cursor
	if s.Cursor > 0 {
		s.Cursor--
	} else {
		s.Cursor = n - 1
	}
	return old != s.Cursor
}

// MoveCursorDown moves the cursor one option down, wrapping to the first option.
func (s *Select) MoveCursorDown() bool {
	n := len(s.Items)
	if n == 0 {
		return false
	}
	old := s.Cursor
	if s.Cursor >= 0 && s.Cursor < n-1 {
		s.Cursor++
	} else {
		s.Cursor = 0
	}
	return old != s.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (s *Select) MoveCursorPageUp(maxVisible int) bool {
	return s.moveCursorBy(-s.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (s *Select) MoveCursorPageDown(maxVisible int) bool {
	return s.moveCursorBy(s.pageSize(maxVisible))
}

func (s *Select) moveCursorBy(delta int) bool {
	if len(s.Items) == 0 {
		s.Cursor = -1
		return false
	}
	old := s.Cursor
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
	return s.Cursor != old
}

func (s *Select) pageSize(maxVisible int) int {
	total := len(s.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
// A select with nothing current keeps that state and shows its first page.
func (s *Select) EnsureCursorVisible(maxVisible int) {
	if len(s.Items) == 0 {
		s.Cursor = -1
		s.ViewportOffset = 0
		return
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
	if maxVisible <= 0 {
		s.ViewportOffset = 0
		return
	}
	maxOffset := len(s.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ViewportOffset > maxOffset {
		s.ViewportOffset = maxOffset
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
	if s.Cursor < 0 {
		return
	}
	if s.Cursor < s.ViewportOffset {
		s.ViewportOffset = s.Cursor
	}
	upper := s.ViewportOffset + maxVisible - 1
	if s.Cursor > upper {
		s.ViewportOffset = s.Cursor - maxVisible + 1
		if s.ViewportOffset < 0 {
			s.ViewportOffset = 0
		}
		if s.ViewportOffset > maxOffset {
			s.ViewportOffset = maxOffset
		}
	}
}
