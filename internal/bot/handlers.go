package bot

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/MockingJay-dev/BrainVault/core/logger"
	"github.com/MockingJay-dev/BrainVault/core/telegram/callbacks"
	"github.com/MockingJay-dev/BrainVault/core/telegram/format"
	tghelpers "github.com/MockingJay-dev/BrainVault/core/telegram/helpers"
	"github.com/MockingJay-dev/BrainVault/core/telegram/keyboard"
	"github.com/MockingJay-dev/BrainVault/internal/vault"
	"log/slog"
)

func (a *App) onStart(c tele.Context) error {
	return tghelpers.SendText(c, welcomeText)
}

func (a *App) onView(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	category := ""
	if args := c.Args(); len(args) > 0 {
		category = args[0]
	}

	res, err := a.svc.View(ctx, c.Sender().ID, category)
	if err != nil {
		return a.replyFailure(c, err)
	}
	for _, chunk := range renderView(res) {
		if err := tghelpers.SendHTML(c, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) onExport(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	doc, err := a.svc.Export(ctx, c.Sender().ID)
	if err != nil {
		return a.replyFailure(c, err)
	}
	if doc == nil {
		return tghelpers.SendText(c, "📭 Nothing to export. Your vault is empty.")
	}
	return c.Send(&tele.Document{
		File:     tele.FromReader(strings.NewReader(doc.Body)),
		FileName: doc.Filename,
		Caption:  "📦 Here are your exported notes!",
	})
}

func (a *App) onEdit(c tele.Context) error {
	return tghelpers.SendText(c, "🔧 Choose what to edit:", &tele.SendOptions{
		ReplyMarkup: editMenuMarkup(),
	})
}

func (a *App) onStats(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	stats, err := a.svc.Stats(ctx, c.Sender().ID)
	if err != nil {
		return a.replyFailure(c, err)
	}
	msg := fmt.Sprintf("👥 Users with stored notes: %d\n📑 Your categories: %d\n📝 Your notes: %d",
		stats.Users, stats.Categories, stats.Notes)
	return tghelpers.SendText(c, msg)
}

// onText is the registry text fallback: every non-command message lands here
// and becomes edit input, a category declaration, or a note.
func (a *App) onText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	res, err := a.svc.SubmitText(ctx, c.Sender().ID, c.Text())
	if err != nil && (res == nil || res.Kind != vault.SubmittedEdit) {
		return a.replyFailure(c, err)
	}

	switch res.Kind {
	case vault.SubmittedEdit:
		// Session already consumed; err names the edit outcome, not a failure.
		return tghelpers.SendHTML(c, renderEditOutcome(res.Edit, err))
	case vault.SubmittedCategoriesCreated:
		tags := make([]string, 0, len(res.Created))
		for _, tag := range res.Created {
			tags = append(tags, "#"+tag)
		}
		return tghelpers.SendText(c, "✨ Created new categories: "+strings.Join(tags, ", "))
	case vault.SubmittedCategoriesExist:
		return tghelpers.SendText(c, "✅ Those categories already exist.")
	case vault.SubmittedSaved:
		return tghelpers.SendHTML(c, renderSaveSummary(res.Saved))
	case vault.SubmittedSelection:
		return tghelpers.SendText(c, renderSelectionPrompt(res.Menu), &tele.SendOptions{
			ReplyMarkup: selectionMarkup(res.Menu),
		})
	}
	return nil
}

func (a *App) onCategoryToggle(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	category := callbacks.CallbackPayload(c)

	menu, err := a.svc.ToggleCategory(ctx, c.Sender().ID, category)
	if errors.Is(err, vault.ErrNoPendingNote) {
		return c.EditOrSend("❌ Error: No pending note found. Please try again.")
	}
	if err != nil {
		return a.replyFailure(c, err)
	}
	return c.Edit(selectionMarkup(menu))
}

func (a *App) onCategoryDone(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	summary, err := a.svc.CommitSelection(ctx, c.Sender().ID)
	if errors.Is(err, vault.ErrNoPendingNote) {
		return c.EditOrSend("❌ Error: No pending note found. Please try again.")
	}
	if err != nil {
		return a.replyFailure(c, err)
	}
	return tghelpers.EditOrSendHTML(c, renderSaveSummary(summary))
}

func (a *App) onEditAction(action vault.EditAction, prompt string) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		if err := a.svc.BeginEdit(ctx, c.Sender().ID, action); err != nil {
			return a.replyFailure(c, err)
		}
		return tghelpers.EditOrSendHTML(c, prompt, keyboard.SingleCancelMarkup(cbEditCancel))
	}
}

func (a *App) onEditCancel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	cancelled, err := a.svc.CancelEdit(ctx, c.Sender().ID)
	if err != nil {
		return a.replyFailure(c, err)
	}
	if !cancelled {
		return c.EditOrSend("Nothing to cancel.")
	}
	return c.EditOrSend("❌ Edit cancelled.")
}

// replyFailure informs the user and keeps expected domain failures out of the
// transport error path; only collaborator failures propagate as errors.
func (a *App) replyFailure(c tele.Context, err error) error {
	ctx := tghelpers.BuildContext(c)
	if errors.Is(err, vault.ErrCollaborator) {
		logger.Error(ctx, "tg", "vault.collaborator",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		_ = tghelpers.SendText(c, "⚠️ Something went wrong while reaching storage. Please try again.")
		return err
	}
	return tghelpers.SendHTML(c, "⚠️ "+format.EscapeHTML(err.Error()))
}
