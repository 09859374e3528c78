package vault

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/MockingJay-dev/BrainVault/core/logger"
	"log/slog"
)

var deleteNotePattern = regexp.MustCompile(`^\s*#([\w-]+)\s+(\d+)\s*$`)

// StateRepository persists the full per-user state keyed by user id. Load
// returns (nil, nil) when no state exists yet.
type StateRepository interface {
	Load(ctx context.Context, userID int64) (*UserState, error)
	Save(ctx context.Context, userID int64, state *UserState) error
	CountUsers(ctx context.Context) (int64, error)
}

// Service orchestrates the per-user note repository and its interactive
// sessions. State is loaded before first use, cached, and saved back after
// every mutation. Access is serialized per user because the transport may
// deliver a message and a button press for the same user concurrently.
type Service struct {
	repo  StateRepository
	clock Clock

	mu    sync.Mutex
	users map[int64]*userSlot
}

type userSlot struct {
	mu    sync.Mutex
	state *UserState
}

// NewService wires the service with its persistence and clock collaborators.
func NewService(repo StateRepository, clock Clock) *Service {
	return &Service{
		repo:  repo,
		clock: clock,
		users: make(map[int64]*userSlot),
	}
}

func (s *Service) slot(userID int64) *userSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.users[userID]
	if !ok {
		slot = &userSlot{}
		s.users[userID] = slot
	}
	return slot
}

// withUser runs fn against the user's state under the per-user lock. When
// mutate is set the state is saved afterwards, even if fn reported a domain
// error: consumed sessions and partial edits must not resurrect on restart.
func (s *Service) withUser(ctx context.Context, userID int64, mutate bool, fn func(st *UserState) error) error {
	slot := s.slot(userID)
	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.state == nil {
		loaded, err := s.repo.Load(ctx, userID)
		if err != nil {
			return collaboratorErr("load state", err)
		}
		if loaded == nil {
			loaded = NewUserState()
		}
		loaded.normalize()
		slot.state = loaded
	}

	fnErr := fn(slot.state)

	if mutate {
		if err := s.repo.Save(ctx, userID, slot.state); err != nil {
			if fnErr != nil {
				logger.Error(ctx, "service.vault", "state.save",
					slog.String("status", "fail"),
					slog.Int64("user_id", userID),
					slog.String("err", err.Error()),
				)
				return fnErr
			}
			return collaboratorErr("save state", err)
		}
	}
	return fnErr
}

// SubmitText processes a free-text message: edit-session input first, then
// pure tag lists, then note capture with optional category selection.
func (s *Service) SubmitText(ctx context.Context, userID int64, text string) (*SubmitResult, error) {
	text = strings.TrimSpace(text)
	var res *SubmitResult
	err := s.withUser(ctx, userID, true, func(st *UserState) error {
		if st.Session.Kind == SessionEdit {
			outcome, err := applyEditInput(st, text)
			res = &SubmitResult{Kind: SubmittedEdit, Edit: outcome}
			return err
		}

		tags := ExtractTags(text)
		if IsPureTagList(text, tags) {
			created := declareCategories(st.Notes, tags)
			if len(created) > 0 {
				res = &SubmitResult{Kind: SubmittedCategoriesCreated, Created: created}
			} else {
				res = &SubmitResult{Kind: SubmittedCategoriesExist}
			}
			return nil
		}

		stamp := s.clock.Stamp()
		if len(st.Notes.Categories()) == 0 {
			summary := commitNote(st.Notes, text, stamp, tags)
			res = &SubmitResult{Kind: SubmittedSaved, Saved: summary}
			logger.Info(ctx, "service.vault", "note.saved",
				slog.String("status", "ok"),
				slog.Int64("user_id", userID),
				slog.Int("categories", len(summary.Categories)),
			)
			return nil
		}

		sel := &SelectionSession{
			PendingText:  text,
			PendingStamp: stamp,
			Selected:     make(map[string]bool, len(tags)),
		}
		for _, tag := range tags {
			sel.Selected[tag] = true
		}
		st.Session = Session{Kind: SessionSelection, Selection: sel}

		menu := buildMenu(st.Notes, sel)
		menu.AutoSelected = tags
		res = &SubmitResult{Kind: SubmittedSelection, Menu: menu}
		return nil
	})
	if err != nil {
		return res, err
	}
	return res, nil
}

// ToggleCategory flips the category in the active selection session and
// returns the menu for re-render. No commit happens here.
func (s *Service) ToggleCategory(ctx context.Context, userID int64, category string) (*SelectionMenu, error) {
	var menu *SelectionMenu
	err := s.withUser(ctx, userID, true, func(st *UserState) error {
		if st.Session.Kind != SessionSelection || st.Session.Selection == nil {
			return ErrNoPendingNote
		}
		st.Session.Selection.Toggle(category)
		menu = buildMenu(st.Notes, st.Session.Selection)
		return nil
	})
	return menu, err
}

// CommitSelection files the pending note into "all" plus every selected
// category, reusing the entry frozen at submit time, and closes the session.
func (s *Service) CommitSelection(ctx context.Context, userID int64) (*SaveSummary, error) {
	var summary *SaveSummary
	err := s.withUser(ctx, userID, true, func(st *UserState) error {
		if st.Session.Kind != SessionSelection || st.Session.Selection == nil {
			return ErrNoPendingNote
		}
		sel := st.Session.Selection
		st.Session = Session{}
		summary = commitNote(st.Notes, sel.PendingText, sel.PendingStamp, sel.SelectedList())
		logger.Info(ctx, "service.vault", "note.saved",
			slog.String("status", "ok"),
			slog.Int64("user_id", userID),
			slog.Int("categories", len(summary.Categories)),
		)
		return nil
	})
	return summary, err
}

// BeginEdit opens an edit session for the chosen action. Any prior session,
// including a pending category selection, is discarded.
func (s *Service) BeginEdit(ctx context.Context, userID int64, action EditAction) error {
	return s.withUser(ctx, userID, true, func(st *UserState) error {
		st.Session = Session{Kind: SessionEdit, Edit: &EditSession{Action: action}}
		return nil
	})
}

// CancelEdit closes an open edit session. It reports whether one was open.
func (s *Service) CancelEdit(ctx context.Context, userID int64) (bool, error) {
	var cancelled bool
	err := s.withUser(ctx, userID, true, func(st *UserState) error {
		if st.Session.Kind != SessionEdit {
			return nil
		}
		st.Session = Session{}
		cancelled = true
		return nil
	})
	return cancelled, err
}

// applyEditInput consumes the edit session before any validation: each edit
// prompt gets exactly one message, good or bad.
func applyEditInput(st *UserState, text string) (*EditOutcome, error) {
	action := st.Session.Edit.Action
	st.Session = Session{}

	switch action {
	case EditDeleteCategory:
		name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(text), "#"))
		outcome := &EditOutcome{Action: action, Category: name}
		return outcome, st.Notes.DeleteCategory(name)

	case EditDeleteNote:
		match := deleteNotePattern.FindStringSubmatch(text)
		if match == nil {
			return &EditOutcome{Action: action}, ErrInvalidFormat
		}
		name := strings.ToLower(match[1])
		num, err := strconv.Atoi(match[2])
		if err != nil {
			return &EditOutcome{Action: action, Category: name}, ErrInvalidFormat
		}
		outcome := &EditOutcome{Action: action, Category: name, Index: num}
		entry, delErr := st.Notes.DeleteNoteAt(name, num-1)
		outcome.Entry = entry
		return outcome, delErr
	}

	return &EditOutcome{Action: action}, ErrInvalidFormat
}

func declareCategories(store *NoteStore, tags []string) []string {
	var created []string
	for _, tag := range tags {
		if store.HasCategory(tag) {
			continue
		}
		store.EnsureCategory(tag)
		created = append(created, tag)
	}
	return created
}

func commitNote(store *NoteStore, text, stamp string, categories []string) *SaveSummary {
	entry := text + " @ " + stamp
	store.Append(CategoryAll, entry)
	saved := []string{CategoryAll}
	for _, cat := range categories {
		if cat == CategoryAll {
			continue
		}
		store.Append(cat, entry)
		saved = append(saved, cat)
	}
	sort.Strings(saved)
	return &SaveSummary{Entry: entry, Categories: saved}
}

func buildMenu(store *NoteStore, sel *SelectionSession) *SelectionMenu {
	cats := store.Categories()
	menu := &SelectionMenu{Buttons: make([]MenuButton, 0, len(cats))}
	for _, cat := range cats {
		menu.Buttons = append(menu.Buttons, MenuButton{
			Category: cat,
			Selected: sel.Selected[cat],
			Count:    store.Count(cat),
		})
	}
	return menu
}
