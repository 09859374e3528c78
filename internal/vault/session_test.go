package vault

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionToggleSelfInverse(t *testing.T) {
	sel := &SelectionSession{Selected: map[string]bool{"work": true}}

	sel.Toggle("urgent")
	assert.Equal(t, []string{"urgent", "work"}, sel.SelectedList())

	sel.Toggle("urgent")
	assert.Equal(t, []string{"work"}, sel.SelectedList())

	sel.Toggle("work")
	assert.Empty(t, sel.SelectedList())
}

func TestUserStateRoundTrip(t *testing.T) {
	st := NewUserState()
	st.Notes.Append(CategoryAll, "note @ ts")
	st.Notes.Append("work", "note @ ts")
	st.Session = Session{
		Kind: SessionSelection,
		Selection: &SelectionSession{
			PendingText:  "pending",
			PendingStamp: "2024-01-01 09:00:00 AM",
			Selected:     map[string]bool{"work": true},
		},
	}

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var restored UserState
	require.NoError(t, json.Unmarshal(data, &restored))
	restored.normalize()

	assert.Equal(t, SessionSelection, restored.Session.Kind)
	require.NotNil(t, restored.Session.Selection)
	assert.Equal(t, "pending", restored.Session.Selection.PendingText)
	assert.Equal(t, []string{"note @ ts"}, restored.Notes.Entries("work"))
}
