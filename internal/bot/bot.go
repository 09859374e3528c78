// Package bot maps Telegram updates onto the vault service and renders its
// result objects back as messages, keyboards, and documents.
package bot

import (
	"errors"

	coreconfig "github.com/MockingJay-dev/BrainVault/core/config"
	coretelegram "github.com/MockingJay-dev/BrainVault/core/telegram"
	"github.com/MockingJay-dev/BrainVault/core/telegram/commands"
	"github.com/MockingJay-dev/BrainVault/core/telegram/router"
	"github.com/MockingJay-dev/BrainVault/internal/vault"

	tele "gopkg.in/telebot.v4"
)

// Callback keys routed through the registry. The payload of cbCategoryPick
// carries the category name; the rest have no payload.
const (
	cbCategoryPick       = "cat_pick"
	cbCategoryDone       = "cat_done"
	cbEditDeleteCategory = "edit_delcat"
	cbEditDeleteNote     = "edit_delnote"
	cbEditCancel         = "edit_cancel"
)

const (
	promptDeleteCategory = "Type the category to delete (e.g., <code>#work</code>). This will delete the category but not the notes within it."
	promptDeleteNote     = "Type the category and note number to delete (e.g., <code>#work 2</code>)."
)

// App wires the vault service to the Telegram runtime.
type App struct {
	cfg *coreconfig.Config
	svc *vault.Service
}

// NewApp builds the bot application around its configuration and service.
func NewApp(cfg *coreconfig.Config, svc *vault.Service) *App {
	return &App{cfg: cfg, svc: svc}
}

// TelegramRunOptions assembles the registry, routes, and middleware chain for
// the shared Telegram run loop.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.onStart,
		Description: "Welcome and quick guide",
	})
	reg.RegisterCommand("/view", commands.Command{
		Handler:     a.onView,
		Description: "Browse notes, optionally filtered by #category",
	})
	reg.RegisterCommand("/export", commands.Command{
		Handler:     a.onExport,
		Description: "Download all notes as a text file",
	})
	reg.RegisterCommand("/edit", commands.Command{
		Handler:     a.onEdit,
		Description: "Delete categories or notes",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.onStats,
		Description: "Vault usage totals",
		AdminOnly:   true,
		Hidden:      true,
	})

	cbErr := errors.Join(
		reg.RegisterCallback(cbCategoryPick, a.onCategoryToggle),
		reg.RegisterCallback(cbCategoryDone, a.onCategoryDone),
		reg.RegisterCallback(cbEditDeleteCategory, a.onEditAction(vault.EditDeleteCategory, promptDeleteCategory)),
		reg.RegisterCallback(cbEditDeleteNote, a.onEditAction(vault.EditDeleteNote, promptDeleteNote)),
		reg.RegisterCallback(cbEditCancel, a.onEditCancel),
	)
	if cbErr != nil {
		return coretelegram.RunOptions{}, cbErr
	}

	reg.SetTextFallback(a.onText)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{
		UnknownDocument: func(c tele.Context) error {
			return c.Send("I can only read text notes.")
		},
	})...)

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}
