package viewstate

import "fmt"

// Direction is the sort direction of a column.
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

// String returns the direction label used on the wire and in the UI.
func (d Direction) String() string {
	switch d {
	case Asc:
		return "ASC"
	case Desc:
		return "DESC"
	default:
		return "NONE"
	}
}

// next advances along None -> Asc -> Desc -> None.
func (d Direction) next() Direction {
	switch d {
	case None:
		return Asc
	case Asc:
		return Desc
	default:
		return None
	}
}

// SortState tracks single-column sorting. Only one column can carry a
// direction other than None; storing just the active column keeps that true.
type SortState struct {
	columns   []string
	active    string
	direction Direction
}

// NewSortState builds a state over the given sortable columns, all None.
func NewSortState(columns []string) SortState {
	return SortState{columns: append([]string(nil), columns...)}
}

// Press handles a click on a column header. Every other column resets to None
// and the pressed column advances one step in its cycle.
func (s *SortState) Press(column string) error {
	known := false
	for _, c := range s.columns {
		if c == column {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown sort column %q", column)
	}

	current := s.Direction(column)
	next := current.next()
	if next == None {
		s.active = ""
		s.direction = None
		return nil
	}
	s.active = column
	s.direction = next
	return nil
}

// Direction returns the direction of one column.
func (s SortState) Direction(column string) Direction {
	if column != "" && column == s.active {
		return s.direction
	}
	return None
}

// Active returns the sorted column, or "" and None when unsorted.
func (s SortState) Active() (string, Direction) {
	return s.active, s.direction
}

// Columns returns the sortable columns in display order.
func (s SortState) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Ordering renders the state as a REST ordering parameter: "col", "-col" or "".
func (s SortState) Ordering() string {
	switch s.direction {
	case Asc:
		return s.active
	case Desc:
		return "-" + s.active
	default:
		return ""
	}
}

// Reset clears the active column.
func (s *SortState) Reset() {
	s.active = ""
	s.direction = None
}
