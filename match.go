package rex

// Match is the result of a successful search. It owns independent
// copies of the whole-match text and every captured group, decoupled
// from both the subject and the compiled pattern.
type Match struct {
	start, end int
	groups     []group
}

type group struct {
	text string
	set  bool
}

// newMatch copies the matched spans out of text. A group whose slots
// were never written on the matching path (an alternation branch not
// taken) stays unset.
func newMatch(text []byte, slots []int) *Match {
	n := len(slots) / 2
	m := &Match{
		start:  slots[0],
		end:    slots[1],
		groups: make([]group, n),
	}
	for i := 0; i < n; i++ {
		lo, hi := slots[2*i], slots[2*i+1]
		if lo < 0 || hi < 0 {
			continue
		}
		m.groups[i] = group{text: string(text[lo:hi]), set: true}
	}
	return m
}

// Start returns the byte offset where the match begins.
func (m *Match) Start() int {
	return m.start
}

// End returns the byte offset just past the match.
func (m *Match) End() int {
	return m.end
}

// String returns the whole matched text, same as Group(0).
func (m *Match) String() string {
	return m.groups[0].text
}

// GroupCount returns the number of capture groups, not counting
// group 0.
func (m *Match) GroupCount() int {
	return len(m.groups) - 1
}

// Group returns the captured text of group i. Index 0 is the whole
// match. It reports false for an out-of-range index or a group whose
// branch was not traversed.
func (m *Match) Group(i int) (string, bool) {
	if m == nil || i < 0 || i >= len(m.groups) {
		return "", false
	}
	g := m.groups[i]
	if !g.set {
		return "", false
	}
	return g.text, true
}
