package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gurkult/gurkbot/pkg/command"
	"github.com/gurkult/gurkbot/pkg/extension"
	"github.com/rs/zerolog/log"
)

// ExtensionManagerID is the identifier of the extension manager module.
const ExtensionManagerID = "exts.backend.extension_manager"

// Manager is capable of managing extensions.
type Manager interface {
	Expand(action extension.Action, names []string) ([]string, error)
	BatchApply(action extension.Action, ids []string) extension.Report
	ListStatus() map[string][]extension.Status
}

// ExtensionManager returns the setup function of the module managing the
// extensions. Only the users accepted by isOwner can use it.
func ExtensionManager(manager Manager, isOwner func(userID string) bool) command.SetupFunc {
	return func(m *command.Module) error {
		check := command.Restrict(isOwner)

		m.AddCommand(&command.Command{
			Name:        "ext",
			Aliases:     []string{"extensions", "exts"},
			Description: "Load, unload, reload and list extensions.",
			Subcommands: []*command.Command{
				{
					Name:        "load",
					Aliases:     []string{"l"},
					Usage:       "<extension...|*>",
					Description: "Load extensions given their fully qualified or unqualified names.",
					Check:       check,
					Handler:     manage(manager, extension.Load),
				},
				{
					Name:        "unload",
					Aliases:     []string{"ul"},
					Usage:       "<extension...|*>",
					Description: "Unload currently loaded extensions.",
					Check:       check,
					Handler:     manage(manager, extension.Unload),
				},
				{
					Name:        "reload",
					Aliases:     []string{"r", "rl"},
					Usage:       "<extension...|*>",
					Description: "Reload extensions.",
					Check:       check,
					Handler:     manage(manager, extension.Reload),
				},
				{
					Name:        "list",
					Aliases:     []string{"all", "ls"},
					Description: "List all extensions, including their loaded status.",
					Check:       check,
					Handler:     list(manager),
				},
			},
		})

		return nil
	}
}

func manage(manager Manager, action extension.Action) command.Handler {
	return func(ctx context.Context, req *command.Request) error {
		if len(req.Args) == 0 {
			return command.UserErrorf("Usage: `ext %s <extension...|*>`", action)
		}

		ids, err := manager.Expand(action, req.Args)
		if err != nil {
			var (
				notFound  *extension.NotFoundError
				ambiguous *extension.AmbiguousError
				protected *extension.ProtectedError
			)

			if errors.As(err, &notFound) || errors.As(err, &ambiguous) || errors.As(err, &protected) {
				return &command.UserError{Message: err.Error()}
			}

			return fmt.Errorf("expand %s: %w", strings.Join(req.Args, " "), err)
		}

		if len(ids) == 0 {
			return command.UserErrorf(":x: There are no extensions to %s.", action)
		}

		report := manager.BatchApply(action, ids)

		log.Info().
			Str("user_id", req.AuthorID()).
			Str("action", action.String()).
			Strs("extensions", ids).
			Int("succeeded", report.Succeeded()).
			Msg("Extensions managed")

		_, err = req.Reply(ctx, report.String())

		return err
	}
}

func list(manager Manager) command.Handler {
	return func(ctx context.Context, req *command.Request) error {
		_, err := req.Reply(ctx, extension.RenderStatus(manager.ListStatus()))

		return err
	}
}
