package vault

import "sort"

// CategoryAll is the protected category that holds every note ever saved.
const CategoryAll = "all"

// NoteStore maps category names to ordered note entries for a single user.
// Category names are stored lowercase without the hashtag prefix. An entry is
// the frozen "<text> @ <timestamp>" string; the identical string is appended
// to every category the note is filed under, which is what makes cross-list
// removal by value work.
type NoteStore struct {
	Notes map[string][]string `json:"notes"`
}

// NewNoteStore returns a store with the mandatory "all" category present.
func NewNoteStore() *NoteStore {
	s := &NoteStore{}
	s.normalize()
	return s
}

// normalize restores the invariants a freshly deserialized store may lack.
func (s *NoteStore) normalize() {
	if s.Notes == nil {
		s.Notes = make(map[string][]string)
	}
	if _, ok := s.Notes[CategoryAll]; !ok {
		s.Notes[CategoryAll] = []string{}
	}
}

// HasCategory reports whether the category exists, empty or not.
func (s *NoteStore) HasCategory(name string) bool {
	s.normalize()
	_, ok := s.Notes[name]
	return ok
}

// EnsureCategory creates an empty category if absent. Idempotent.
func (s *NoteStore) EnsureCategory(name string) {
	s.normalize()
	if _, ok := s.Notes[name]; !ok {
		s.Notes[name] = []string{}
	}
}

// Append adds the entry to the end of the category list, creating the
// category if needed.
func (s *NoteStore) Append(category, entry string) {
	s.EnsureCategory(category)
	s.Notes[category] = append(s.Notes[category], entry)
}

// Entries returns the ordered entries of a category, nil if absent.
func (s *NoteStore) Entries(category string) []string {
	s.normalize()
	return s.Notes[category]
}

// Count returns the number of entries in a category.
func (s *NoteStore) Count(category string) int {
	s.normalize()
	return len(s.Notes[category])
}

// Categories returns every category except "all", sorted. Empty categories
// are included; this is the set offered on the selection keyboard.
func (s *NoteStore) Categories() []string {
	s.normalize()
	var names []string
	for name := range s.Notes {
		if name == CategoryAll {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NonEmptyCategories returns every category with at least one entry, "all"
// first and the remainder lexicographic. This is the view/export order.
func (s *NoteStore) NonEmptyCategories() []string {
	s.normalize()
	var names []string
	for name, entries := range s.Notes {
		if name == CategoryAll || len(entries) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(s.Notes[CategoryAll]) > 0 {
		names = append([]string{CategoryAll}, names...)
	}
	return names
}

// DeleteCategory removes the category mapping. Entries survive in "all" and
// in any other category they were filed under.
func (s *NoteStore) DeleteCategory(name string) error {
	s.normalize()
	if name == CategoryAll {
		return ErrProtectedCategory
	}
	if _, ok := s.Notes[name]; !ok {
		return ErrNotFound
	}
	delete(s.Notes, name)
	return nil
}

// DeleteNoteAt removes the entry at the 0-based index from the category, then
// removes the first equal-value occurrence from "all". The positional removal
// happens first, so deleting from "all" itself does not remove a second copy
// unless a duplicate entry exists. Returns the removed entry.
func (s *NoteStore) DeleteNoteAt(category string, index int) (string, error) {
	s.normalize()
	entries, ok := s.Notes[category]
	if !ok || index < 0 || index >= len(entries) {
		return "", ErrNotFound
	}
	removed := entries[index]
	s.Notes[category] = append(entries[:index], entries[index+1:]...)

	all := s.Notes[CategoryAll]
	for i, entry := range all {
		if entry == removed {
			s.Notes[CategoryAll] = append(all[:i], all[i+1:]...)
			break
		}
	}
	return removed, nil
}
