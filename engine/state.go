package engine

// StateKind tags which variant of State is populated. Go has no sum
// types, so State is one struct carrying every variant's fields with
// Kind selecting which are meaningful — the tagged union spec §9
// calls for, built the way the teacher represents a shape plan's
// optional sub-stages as one struct with guard fields rather than an
// interface hierarchy.
type StateKind int

const (
	Empty StateKind = iota
	EmptyIgnoringPrevious
	Committing
	Inputting
	ChoosingCandidate
	Marking
)

// Candidate is one entry of a ChoosingCandidate page: the displayed
// value and the reading key it was found under.
type Candidate struct {
	Value   string
	Reading string
}

// State is the tagged union the handler emits through StateCallback
// after every keystroke (spec §4.6, §6, §9). NotEmpty is the trio of
// fields (Buffer, Cursor, Tooltip) shared by Inputting, Choosing
// Candidate and Marking.
type State struct {
	Kind StateKind

	// Buffer, Cursor and Tooltip are populated for Inputting,
	// ChoosingCandidate and Marking.
	Buffer  string
	Cursor  int
	Tooltip string

	// EvictedText is populated for Inputting only, when a compose
	// pushed the grid past composing_buffer_size and the head reading
	// was dropped (spec §3).
	EvictedText string

	// Candidates is populated for ChoosingCandidate only.
	Candidates []Candidate

	// CommitText is populated for Committing only.
	CommitText string

	// MarkStart, Head, Marked, Tail, Reading and Acceptable are
	// populated for Marking only (spec §4.6.4).
	MarkStart  int
	Head       string
	Marked     string
	Tail       string
	Reading    string
	Acceptable bool
}

func emptyState() State { return State{Kind: Empty} }

func emptyIgnoringPreviousState() State { return State{Kind: EmptyIgnoringPrevious} }

func committingState(text string) State { return State{Kind: Committing, CommitText: text} }

func inputtingState(buffer string, cursor int, tooltip, evicted string) State {
	return State{Kind: Inputting, Buffer: buffer, Cursor: cursor, Tooltip: tooltip, EvictedText: evicted}
}

func choosingCandidateState(buffer string, cursor int, candidates []Candidate) State {
	return State{Kind: ChoosingCandidate, Buffer: buffer, Cursor: cursor, Candidates: candidates}
}

func markingState(buffer string, cursor int, tooltip string, markStart int, head, marked, tail, reading string, acceptable bool) State {
	return State{
		Kind: Marking, Buffer: buffer, Cursor: cursor, Tooltip: tooltip,
		MarkStart: markStart, Head: head, Marked: marked, Tail: tail,
		Reading: reading, Acceptable: acceptable,
	}
}
