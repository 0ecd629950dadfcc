package update

import (
	"sort"

	"github.com/goliatone/go-widgetkit/pkg/choice"
)

// Snapshot is the last state the server rendered or sent for a widget.
type Snapshot struct {
	Label     string
	Choices   choice.Set
	Selection choice.Selection
}

// State maps widget ids to their last known snapshot for one session. It is
// not safe for concurrent use: the session handler that owns it must
// serialise calls for the same session.
type State struct {
	widgets map[string]Snapshot
}

// NewState returns an empty State.
func NewState() *State {
	return &State{widgets: make(map[string]Snapshot)}
}

// Track records the rendered state of targetID, typically right after the
// widget markup was produced. The selection must be drawn from the choices.
func (s *State) Track(targetID string, snapshot Snapshot) error {
	if targetID == "" {
		return choice.Invalid("targetId", "is required")
	}
	if err := snapshot.Selection.Validate(snapshot.Choices); err != nil {
		return err
	}
	snapshot.Selection = snapshot.Selection.Retain(snapshot.Choices)
	s.put(targetID, snapshot)
	return nil
}

// Snapshot returns the last known state of targetID.
func (s *State) Snapshot(targetID string) (Snapshot, bool) {
	if s == nil {
		return Snapshot{}, false
	}
	snapshot, ok := s.widgets[targetID]
	if !ok {
		return Snapshot{}, false
	}
	snapshot.Selection = snapshot.Selection.Clone()
	return snapshot, true
}

// Forget drops targetID.
func (s *State) Forget(targetID string) {
	if s == nil {
		return
	}
	delete(s.widgets, targetID)
}

// Targets lists tracked widget ids, sorted.
func (s *State) Targets() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.widgets))
	for id := range s.widgets {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *State) put(targetID string, snapshot Snapshot) {
	if s.widgets == nil {
		s.widgets = make(map[string]Snapshot)
	}
	snapshot.Selection = snapshot.Selection.Clone()
	s.widgets[targetID] = snapshot
}
