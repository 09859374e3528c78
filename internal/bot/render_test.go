package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MockingJay-dev/BrainVault/internal/vault"
)

func TestRenderSaveSummary(t *testing.T) {
	msg := renderSaveSummary(&vault.SaveSummary{
		Entry:      "buy <milk> @ 2024-06-01 09:30:00 AM",
		Categories: []string{"all", "work"},
	})
	assert.Contains(t, msg, "✅ Note saved to: #all, #work")
	assert.Contains(t, msg, "buy &lt;milk&gt;")
	assert.NotContains(t, msg, "<milk>")
}

func TestRenderViewEmptyVault(t *testing.T) {
	msgs := renderView(&vault.ViewResult{})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "brain vault is empty")
}

func TestRenderViewMissingCategory(t *testing.T) {
	msgs := renderView(&vault.ViewResult{Category: "nothere"})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "No entries found")
	assert.Contains(t, msgs[0], "#nothere")
}

func TestRenderViewFull(t *testing.T) {
	msgs := renderView(&vault.ViewResult{
		Total: 2,
		Sections: []vault.ViewSection{
			{Category: "all", Entries: []string{"one @ ts", "two @ ts"}},
			{Category: "work", Entries: []string{"one @ ts"}},
		},
	})
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "All Notes (2 total)")
	assert.Contains(t, msgs[0], "#all (2)")
	assert.Contains(t, msgs[0], "#work (1)")
	assert.Contains(t, msgs[0], "1.")
	assert.Contains(t, msgs[0], "2.")
}

func TestRenderSelectionPrompt(t *testing.T) {
	plain := renderSelectionPrompt(&vault.SelectionMenu{})
	assert.NotContains(t, plain, "Auto-selected")

	hinted := renderSelectionPrompt(&vault.SelectionMenu{AutoSelected: []string{"urgent", "work"}})
	assert.Contains(t, hinted, "Auto-selected from text: #urgent, #work")
}

func TestSelectionMarkup(t *testing.T) {
	markup := selectionMarkup(&vault.SelectionMenu{
		Buttons: []vault.MenuButton{
			{Category: "ideas", Count: 0},
			{Category: "urgent", Selected: true, Count: 2},
			{Category: "work", Count: 5},
		},
	})

	// Two buttons per row plus the Done row.
	require.Len(t, markup.InlineKeyboard, 3)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Len(t, markup.InlineKeyboard[1], 1)

	assert.Equal(t, "#ideas (0)", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "✅ #urgent (2)", markup.InlineKeyboard[0][1].Text)

	done := markup.InlineKeyboard[2][0]
	assert.Equal(t, "Done ✅", done.Text)
}

func TestRenderEditOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome *vault.EditOutcome
		err     error
		want    string
	}{
		{
			name:    "category deleted",
			outcome: &vault.EditOutcome{Action: vault.EditDeleteCategory, Category: "work"},
			want:    "has been deleted",
		},
		{
			name:    "category protected",
			outcome: &vault.EditOutcome{Action: vault.EditDeleteCategory, Category: "all"},
			err:     vault.ErrProtectedCategory,
			want:    "cannot be deleted",
		},
		{
			name:    "category missing",
			outcome: &vault.EditOutcome{Action: vault.EditDeleteCategory, Category: "nope"},
			err:     vault.ErrNotFound,
			want:    "not found",
		},
		{
			name:    "note deleted",
			outcome: &vault.EditOutcome{Action: vault.EditDeleteNote, Category: "work", Entry: "done @ ts", Index: 1},
			want:    "Deleted note",
		},
		{
			name:    "note bad format",
			outcome: &vault.EditOutcome{Action: vault.EditDeleteNote},
			err:     vault.ErrInvalidFormat,
			want:    "Invalid format",
		},
		{
			name:    "note missing",
			outcome: &vault.EditOutcome{Action: vault.EditDeleteNote, Category: "work", Index: 9},
			err:     vault.ErrNotFound,
			want:    "not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, renderEditOutcome(tt.outcome, tt.err), tt.want)
		})
	}
}

func TestChunkMessage(t *testing.T) {
	short := chunkMessage("hello")
	assert.Equal(t, []string{"hello"}, short)

	long := strings.Repeat("я", maxMessageLen+10)
	chunks := chunkMessage(long)
	require.Len(t, chunks, 2)
	assert.Len(t, []rune(chunks[0]), maxMessageLen)
	assert.Len(t, []rune(chunks[1]), 10)
	assert.Equal(t, long, strings.Join(chunks, ""))
}
