package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/tmux-popup-select/internal/options"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetQuery updates the search query and its cursor. A non-empty query moves
// the selection to the best match; otherwise the current option is kept when
// it is still visible.
func (s *Select) SetQuery(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	s.Query = query
	runes := []rune(s.Query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	s.QueryCursor = cursor
	s.applyQuery()
	if trimmed != "" && len(s.Items) > 0 {
		if idx := BestMatchIndex(s.Items, trimmed); idx >= 0 {
			s.Cursor = idx
		}
	}
}

func (s *Select) applyQuery() {
	prev, had := s.Current()
	s.Items = FilterOptions(s.Full, s.Query)
	s.Cursor = -1
	if had {
		s.Cursor = s.IndexOf(prev.Value)
	}
	if s.Cursor < 0 && len(s.Items) > 0 {
		s.Cursor = 0
	}
	if len(s.Items) == 0 || s.ViewportOffset > len(s.Items)-1 {
		s.ViewportOffset = 0
	}
}

// QueryCursorPos returns the rune offset of the query cursor.
func (s *Select) QueryCursorPos() int {
	runes := []rune(s.Query)
	if s.QueryCursor < 0 {
		return 0
	}
	if s.QueryCursor > len(runes) {
		return len(runes)
	}
	return s.QueryCursor
}

// InsertQueryText inserts text into the query at the cursor position.
func (s *Select) InsertQueryText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(s.Query)
	pos := s.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	s.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes the rune before the query cursor.
func (s *Select) DeleteQueryRuneBackward() bool {
	runes := []rune(s.Query)
	pos := s.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	s.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the cursor.
func (s *Select) DeleteQueryWordBackward() bool {
	runes := []rune(s.Query)
	pos := s.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	s.SetQuery(string(updated), i)
	return true
}

// ClearQuery empties the query. It reports whether anything was removed.
func (s *Select) ClearQuery() bool {
	if s.Query == "" {
		return false
	}
	s.SetQuery("", 0)
	return true
}

// MoveQueryCursorRuneBackward moves the query cursor one rune backward.
func (s *Select) MoveQueryCursorRuneBackward() bool {
	if s.QueryCursorPos() == 0 {
		return false
	}
	s.QueryCursor = s.QueryCursorPos() - 1
	return true
}

// MoveQueryCursorRuneForward moves the query cursor one rune forward.
func (s *Select) MoveQueryCursorRuneForward() bool {
	pos := s.QueryCursorPos()
	if pos >= len([]rune(s.Query)) {
		return false
	}
	s.QueryCursor = pos + 1
	return true
}

// FilterOptions returns the options whose label or value matches query.
func FilterOptions(opts []options.Option, query string) []options.Option {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneOptions(opts)
	}
	labels := make([]string, len(opts))
	for i, opt := range opts {
		labels[i] = opt.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]options.Option, 0, len(matches))
		for idx, opt := range opts {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, opt)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]options.Option, 0, len(opts))
	for _, opt := range opts {
		if strings.Contains(strings.ToLower(opt.Label), lower) || strings.Contains(strings.ToLower(opt.Value), lower) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among opts: exact
// matches first, then label prefixes, then value prefixes, then the closest
// fuzzy match.
func BestMatchIndex(opts []options.Option, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(opts) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, opt := range opts {
		if strings.EqualFold(opt.Label, trimmed) || strings.EqualFold(opt.Value, trimmed) {
			return i
		}
	}
	for i, opt := range opts {
		if strings.HasPrefix(strings.ToLower(opt.Label), lower) {
			return i
		}
	}
	for i, opt := range opts {
		if strings.HasPrefix(strings.ToLower(opt.Value), lower) {
			return i
		}
	}
	labels := make([]string, len(opts))
	for i, opt := range opts {
		labels[i] = opt.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(opts) {
		return 0
	}
	return best.OriginalIndex
}
