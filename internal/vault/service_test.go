package vault

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStamp = "2024-06-01 09:30:00 AM"

// memRepo stores states as JSON blobs so tests exercise the same
// serialization boundary as the real repository.
type memRepo struct {
	states  map[int64][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMemRepo() *memRepo {
	return &memRepo{states: make(map[int64][]byte)}
}

func (r *memRepo) Load(_ context.Context, userID int64) (*UserState, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	raw, ok := r.states[userID]
	if !ok {
		return nil, nil
	}
	var st UserState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *memRepo) Save(_ context.Context, userID int64, state *UserState) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	r.states[userID] = raw
	r.saves++
	return nil
}

func (r *memRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(r.states)), nil
}

func newTestService(repo *memRepo) *Service {
	return NewService(repo, ClockFunc(func() string { return testStamp }))
}

func TestSubmitTextPureTagList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	res, err := svc.SubmitText(ctx, 1, "#work #ideas")
	require.NoError(t, err)
	assert.Equal(t, SubmittedCategoriesCreated, res.Kind)
	assert.Equal(t, []string{"ideas", "work"}, res.Created)

	// Same list again creates nothing.
	res, err = svc.SubmitText(ctx, 1, "#work #ideas")
	require.NoError(t, err)
	assert.Equal(t, SubmittedCategoriesExist, res.Kind)
	assert.Empty(t, res.Created)
}

func TestSubmitTextSavesImmediatelyWithoutCategories(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	res, err := svc.SubmitText(ctx, 1, "remember the milk")
	require.NoError(t, err)
	require.Equal(t, SubmittedSaved, res.Kind)
	assert.Equal(t, "remember the milk @ "+testStamp, res.Saved.Entry)
	assert.Equal(t, []string{"all"}, res.Saved.Categories)
	assert.Equal(t, 1, repo.saves)

	view, err := svc.View(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Total)
}

func TestSubmitTextOpensSelectionMenu(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	_, err := svc.SubmitText(ctx, 1, "#work #ideas")
	require.NoError(t, err)

	res, err := svc.SubmitText(ctx, 1, "ship the release #work")
	require.NoError(t, err)
	require.Equal(t, SubmittedSelection, res.Kind)
	require.Len(t, res.Menu.Buttons, 2)
	assert.Equal(t, []string{"work"}, res.Menu.AutoSelected)

	byName := map[string]MenuButton{}
	for _, b := range res.Menu.Buttons {
		byName[b.Category] = b
	}
	assert.True(t, byName["work"].Selected)
	assert.False(t, byName["ideas"].Selected)
}

func TestSelectionFlowRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.SubmitText(ctx, 1, "#work #urgent")
	require.NoError(t, err)

	res, err := svc.SubmitText(ctx, 1, "fix the boiler #work")
	require.NoError(t, err)
	require.Equal(t, SubmittedSelection, res.Kind)

	menu, err := svc.ToggleCategory(ctx, 1, "urgent")
	require.NoError(t, err)
	for _, b := range menu.Buttons {
		assert.True(t, b.Selected, b.Category)
	}

	summary, err := svc.CommitSelection(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "fix the boiler #work @ "+testStamp, summary.Entry)
	assert.Equal(t, []string{"all", "urgent", "work"}, summary.Categories)

	// Session is closed: a second commit has nothing to save.
	_, err = svc.CommitSelection(ctx, 1)
	assert.ErrorIs(t, err, ErrNoPendingNote)

	// Delete the copy in work; the urgent copy survives.
	require.NoError(t, svc.BeginEdit(ctx, 1, EditDeleteNote))
	res, err = svc.SubmitText(ctx, 1, "#work 1")
	require.NoError(t, err)
	require.Equal(t, SubmittedEdit, res.Kind)
	assert.Equal(t, "fix the boiler #work @ "+testStamp, res.Edit.Entry)

	view, err := svc.View(ctx, 1, "#urgent")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Total)
	view, err = svc.View(ctx, 1, "#work")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Total)
	view, err = svc.View(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Total)
}

func TestToggleWithoutSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	_, err := svc.ToggleCategory(ctx, 1, "work")
	assert.ErrorIs(t, err, ErrNoPendingNote)
}

func TestCommitUsesFrozenStamp(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	stamp := "2024-06-01 09:30:00 AM"
	svc := NewService(repo, ClockFunc(func() string { return stamp }))

	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)
	_, err = svc.SubmitText(ctx, 1, "meeting notes")
	require.NoError(t, err)

	// Clock moves on while the user is picking categories.
	stamp = "2024-06-01 11:00:00 PM"

	summary, err := svc.CommitSelection(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "meeting notes @ 2024-06-01 09:30:00 AM", summary.Entry)
}

func TestEditDeleteCategory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr error
		wantCat string
	}{
		{name: "protected", input: "#all", wantErr: ErrProtectedCategory, wantCat: "all"},
		{name: "missing", input: "#nope", wantErr: ErrNotFound, wantCat: "nope"},
		{name: "hash optional and case folded", input: "WORK", wantCat: "work"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, svc.BeginEdit(ctx, 1, EditDeleteCategory))
			res, err := svc.SubmitText(ctx, 1, tt.input)
			require.Equal(t, SubmittedEdit, res.Kind)
			assert.Equal(t, tt.wantCat, res.Edit.Category)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEditDeleteNoteInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "missing number", input: "#work", wantErr: ErrInvalidFormat},
		{name: "trailing words", input: "#work two", wantErr: ErrInvalidFormat},
		{name: "empty category", input: "#work 1", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, svc.BeginEdit(ctx, 1, EditDeleteNote))
			res, err := svc.SubmitText(ctx, 1, tt.input)
			require.Equal(t, SubmittedEdit, res.Kind)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEditSessionConsumedOnFirstMessage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)

	require.NoError(t, svc.BeginEdit(ctx, 1, EditDeleteNote))
	res, err := svc.SubmitText(ctx, 1, "garbage input")
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, SubmittedEdit, res.Kind)

	// The session was spent on the bad input: a well-formed follow-up is a
	// plain message again, not edit input.
	res, err = svc.SubmitText(ctx, 1, "#work 1")
	require.NoError(t, err)
	assert.Equal(t, SubmittedSelection, res.Kind)
}

func TestBeginEditDiscardsPendingSelection(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)
	_, err = svc.SubmitText(ctx, 1, "half-finished note")
	require.NoError(t, err)

	require.NoError(t, svc.BeginEdit(ctx, 1, EditDeleteCategory))

	cancelled, err := svc.CancelEdit(ctx, 1)
	require.NoError(t, err)
	assert.True(t, cancelled)

	// The selection did not come back.
	_, err = svc.CommitSelection(ctx, 1)
	assert.ErrorIs(t, err, ErrNoPendingNote)
}

func TestCancelEditWithoutSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemRepo())

	cancelled, err := svc.CancelEdit(ctx, 1)
	require.NoError(t, err)
	assert.False(t, cancelled)
}

func TestStateSurvivesServiceRestart(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	svc := newTestService(repo)
	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)
	_, err = svc.SubmitText(ctx, 1, "pending note")
	require.NoError(t, err)

	// Fresh service over the same repository picks up the open session.
	svc = newTestService(repo)
	summary, err := svc.CommitSelection(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "pending note @ "+testStamp, summary.Entry)
}

func TestLoadFailureIsCollaboratorError(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.loadErr = errors.New("connection refused")
	svc := newTestService(repo)

	_, err := svc.SubmitText(ctx, 1, "anything")
	assert.ErrorIs(t, err, ErrCollaborator)
}

func TestSaveFailureIsCollaboratorError(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.saveErr = errors.New("connection refused")
	svc := newTestService(repo)

	_, err := svc.SubmitText(ctx, 1, "anything")
	assert.ErrorIs(t, err, ErrCollaborator)
}

func TestSaveFailureKeepsDomainError(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.SubmitText(ctx, 1, "#work")
	require.NoError(t, err)
	require.NoError(t, svc.BeginEdit(ctx, 1, EditDeleteNote))

	repo.saveErr = errors.New("connection refused")
	_, err = svc.SubmitText(ctx, 1, "nonsense")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.SubmitText(ctx, 1, "#work #ideas")
	require.NoError(t, err)
	_, err = svc.SubmitText(ctx, 2, "note from someone else")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, 0, stats.Notes)
}
