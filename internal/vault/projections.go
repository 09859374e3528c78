package vault

import (
	"context"
	"strings"
)

// View renders the read-only projection behind /view. With an empty category
// it covers every non-empty category in listing order; otherwise it filters
// to the one named. An absent or empty category yields a result with no
// sections, not an error.
func (s *Service) View(ctx context.Context, userID int64, category string) (*ViewResult, error) {
	var res *ViewResult
	err := s.withUser(ctx, userID, false, func(st *UserState) error {
		if category != "" {
			name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(category), "#"))
			entries := st.Notes.Entries(name)
			res = &ViewResult{Category: name, Total: len(entries)}
			if len(entries) > 0 {
				res.Sections = []ViewSection{{Category: name, Entries: entries}}
			}
			return nil
		}

		res = &ViewResult{Total: st.Notes.Count(CategoryAll)}
		for _, name := range st.Notes.NonEmptyCategories() {
			res.Sections = append(res.Sections, ViewSection{
				Category: name,
				Entries:  st.Notes.Entries(name),
			})
		}
		return nil
	})
	return res, err
}

const exportBanner = "BRAIN VAULT - THE MOCKINGJAY"

// Export renders the full view projection as a flat text document. A nil
// document means the vault is empty and there is nothing to export.
func (s *Service) Export(ctx context.Context, userID int64) (*ExportDocument, error) {
	var doc *ExportDocument
	err := s.withUser(ctx, userID, false, func(st *UserState) error {
		if st.Notes.Count(CategoryAll) == 0 {
			return nil
		}

		stamp := s.clock.Stamp()
		lines := []string{
			strings.Repeat("=", 40),
			"   " + exportBanner,
			strings.Repeat("=", 40),
			"Generated: " + stamp,
			"",
		}
		for _, name := range st.Notes.NonEmptyCategories() {
			lines = append(lines, "", "# "+name)
			lines = append(lines, st.Notes.Entries(name)...)
			lines = append(lines, "")
		}

		doc = &ExportDocument{
			Filename: exportFilename(stamp),
			Body:     strings.Join(lines, "\n"),
		}
		return nil
	})
	return doc, err
}

func exportFilename(stamp string) string {
	safe := strings.NewReplacer(" ", "_", ":", "-").Replace(stamp)
	return "brain_vault_notes_" + safe + ".txt"
}

// Stats reports stored user count plus the caller's own totals.
func (s *Service) Stats(ctx context.Context, userID int64) (*Stats, error) {
	users, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, collaboratorErr("count users", err)
	}
	stats := &Stats{Users: users}
	err = s.withUser(ctx, userID, false, func(st *UserState) error {
		stats.Categories = len(st.Notes.Categories())
		stats.Notes = st.Notes.Count(CategoryAll)
		return nil
	})
	return stats, err
}
