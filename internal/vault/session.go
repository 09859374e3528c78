package vault

import "sort"

// SessionKind discriminates the single interactive session a user may have.
type SessionKind string

const (
	// SessionNone means no multi-step interaction is open.
	SessionNone SessionKind = ""
	// SessionSelection means a note is pending category selection.
	SessionSelection SessionKind = "selection"
	// SessionEdit means the next text message completes an edit action.
	SessionEdit SessionKind = "edit"
)

// EditAction identifies which edit operation is awaiting input.
type EditAction string

const (
	// EditDeleteCategory awaits a category name to delete.
	EditDeleteCategory EditAction = "delete_category"
	// EditDeleteNote awaits "#category number" identifying a note to delete.
	EditDeleteNote EditAction = "delete_note"
)

// Session is the per-user interactive state. Exactly one kind is active at a
// time; the payload matching Kind is non-nil and the other is nil. Opening a
// new session supersedes whatever was open before.
type Session struct {
	Kind      SessionKind       `json:"kind,omitempty"`
	Selection *SelectionSession `json:"selection,omitempty"`
	Edit      *EditSession      `json:"edit,omitempty"`
}

// SelectionSession holds a not-yet-committed note and the toggled category
// set. Text and timestamp are frozen at submit time so the stored entry does
// not drift while the user browses the menu.
type SelectionSession struct {
	PendingText  string          `json:"pending_text"`
	PendingStamp string          `json:"pending_stamp"`
	Selected     map[string]bool `json:"selected"`
}

// Toggle flips membership of the category in the selected set.
func (s *SelectionSession) Toggle(category string) {
	if s.Selected == nil {
		s.Selected = make(map[string]bool)
	}
	if s.Selected[category] {
		delete(s.Selected, category)
		return
	}
	s.Selected[category] = true
}

// SelectedList returns the selected categories in sorted order.
func (s *SelectionSession) SelectedList() []string {
	names := make([]string, 0, len(s.Selected))
	for name, on := range s.Selected {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// EditSession records which edit action was chosen from the edit menu.
type EditSession struct {
	Action EditAction `json:"action"`
}

// UserState is the full serializable state for one user: the note store plus
// the active session, if any. It is what the state repository persists.
type UserState struct {
	Notes   *NoteStore `json:"notes"`
	Session Session    `json:"session"`
}

// NewUserState returns an empty state with an initialized note store.
func NewUserState() *UserState {
	return &UserState{Notes: NewNoteStore()}
}

// normalize restores invariants after deserialization.
func (u *UserState) normalize() {
	if u.Notes == nil {
		u.Notes = NewNoteStore()
	}
	u.Notes.normalize()
}
