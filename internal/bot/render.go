package bot

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/MockingJay-dev/BrainVault/core/telegram/format"
	"github.com/MockingJay-dev/BrainVault/core/telegram/keyboard"
	"github.com/MockingJay-dev/BrainVault/internal/vault"
)

// Telegram rejects messages above 4096 chars; chunk a bit below that.
const maxMessageLen = 4000

const welcomeText = `Welcome to Brain Vault - The Mockingjay!

📋 Quick Guide:
• Type anything to save a note.
• Use #tags in your note to auto-categorize.
• Or, select categories from the menu after typing.
• All notes are saved to #all by default.

⚡️ Commands:
• /view - Browse all your notes.
• /view #category - Filter notes by category.
• /export - Download a backup file.
• /edit - Manage your notes and categories.`

func renderSaveSummary(summary *vault.SaveSummary) string {
	tags := make([]string, 0, len(summary.Categories))
	for _, cat := range summary.Categories {
		tags = append(tags, "#"+cat)
	}
	return fmt.Sprintf("✅ Note saved to: %s\n📝 %s",
		strings.Join(tags, ", "), format.EscapeHTML(summary.Entry))
}

func renderView(res *vault.ViewResult) []string {
	if res.Category != "" {
		if res.Total == 0 {
			return []string{fmt.Sprintf("⚠️ No entries found for %s.", format.Code("#"+res.Category))}
		}
		section := res.Sections[0]
		lines := []string{fmt.Sprintf("%s 📝", format.Bold(fmt.Sprintf("Notes in #%s (%d)", section.Category, len(section.Entries)))), ""}
		lines = append(lines, renderEntries(section.Entries)...)
		return chunkMessage(strings.Join(lines, "\n"))
	}

	if res.Total == 0 {
		return []string{"📭 Your brain vault is empty. Start by typing a note!"}
	}

	lines := []string{fmt.Sprintf("📚 %s", format.Bold(fmt.Sprintf("All Notes (%d total)", res.Total))), ""}
	for _, section := range res.Sections {
		lines = append(lines, fmt.Sprintf("\n📑 %s", format.Bold(fmt.Sprintf("#%s (%d)", section.Category, len(section.Entries)))))
		lines = append(lines, renderEntries(section.Entries)...)
		lines = append(lines, "")
	}
	return chunkMessage(strings.Join(lines, "\n"))
}

func renderEntries(entries []string) []string {
	lines := make([]string, 0, len(entries))
	for i, entry := range entries {
		lines = append(lines, format.Indexed(i+1, entry))
	}
	return lines
}

func renderSelectionPrompt(menu *vault.SelectionMenu) string {
	msg := "Select additional categories for your note:"
	if len(menu.AutoSelected) > 0 {
		tags := make([]string, 0, len(menu.AutoSelected))
		for _, tag := range menu.AutoSelected {
			tags = append(tags, "#"+tag)
		}
		msg += fmt.Sprintf("\n(Auto-selected from text: %s)", strings.Join(tags, ", "))
	}
	return msg
}

func selectionMarkup(menu *vault.SelectionMenu) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	buttons := make([]tele.Btn, 0, len(menu.Buttons))
	for _, b := range menu.Buttons {
		label := fmt.Sprintf("#%s (%d)", b.Category, b.Count)
		if b.Selected {
			label = "✅ " + label
		}
		buttons = append(buttons, markup.Data(label, cbCategoryPick, b.Category))
	}
	rows := keyboard.ChunkButtons(buttons, 2)
	rows = append(rows, []tele.Btn{markup.Data("Done ✅", cbCategoryDone)})
	markup.InlineKeyboard = keyboard.ToInlineKeyboard(rows)
	return markup
}

func editMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "🗑️ Delete Category", Unique: cbEditDeleteCategory}},
		[]keyboard.InlineBtn{{Text: "✂️ Delete Note", Unique: cbEditDeleteNote}},
	)
}

func renderEditOutcome(outcome *vault.EditOutcome, err error) string {
	switch outcome.Action {
	case vault.EditDeleteCategory:
		switch {
		case err == nil:
			return fmt.Sprintf("✅ Category %s has been deleted.", format.Code("#"+outcome.Category))
		case errors.Is(err, vault.ErrProtectedCategory):
			return fmt.Sprintf("⚠️ The %s category cannot be deleted.", format.Code("#all"))
		default:
			return fmt.Sprintf("❌ Category %s not found.", format.Code("#"+outcome.Category))
		}
	case vault.EditDeleteNote:
		switch {
		case err == nil:
			return fmt.Sprintf("✅ Deleted note from %s:\n%s",
				format.Code("#"+outcome.Category), format.Strike(outcome.Entry))
		case errors.Is(err, vault.ErrInvalidFormat):
			return fmt.Sprintf("⚠️ Invalid format. Please use: %s (e.g., #work 2).",
				format.Code("#category number"))
		default:
			return fmt.Sprintf("❌ Note %s not found.",
				format.Code(fmt.Sprintf("#%s %d", outcome.Category, outcome.Index)))
		}
	}
	return "❌ Unknown edit action."
}

// chunkMessage splits text into rune-safe pieces below the Telegram limit.
func chunkMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= maxMessageLen {
		return []string{text}
	}
	var chunks []string
	for start := 0; start < len(runes); start += maxMessageLen {
		end := start + maxMessageLen
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
