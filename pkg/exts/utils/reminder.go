package utils

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gurkult/gurkbot/pkg/command"
	"github.com/gurkult/gurkbot/pkg/reminder"
	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/rs/zerolog/log"
)

const startTimeout = 10 * time.Second

// Reminders is capable of managing reminders.
type Reminders interface {
	Start(ctx context.Context) error
	Stop()
	Add(ctx context.Context, userID, channelID, origin string, d time.Duration, content string) (store.Reminder, error)
	Delete(ctx context.Context, userID string, id int64) error
	List(userID string) ([]store.Reminder, error)
}

// Reminder returns the setup function of the reminder module.
// The module stays loaded when the reminders cannot be loaded from the
// storage: its commands then report the feature as unavailable.
func Reminder(reminders Reminders) command.SetupFunc {
	return func(m *command.Module) error {
		ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
		defer cancel()

		if err := reminders.Start(ctx); err != nil {
			log.Error().Err(err).Msg("Unable to start reminders")
		}

		m.OnUnload(reminders.Stop)

		m.AddCommand(&command.Command{
			Name:        "remind",
			Aliases:     []string{"reminder", "remindme"},
			Usage:       "<duration> <content>",
			Description: "Set a reminder. Durations look like `1d`, `2hours` or `1h30m`.",
			Handler:     add(reminders),
			Subcommands: []*command.Command{
				{
					Name:        "list",
					Aliases:     []string{"ls"},
					Description: "List your pending reminders.",
					Handler:     list(reminders),
				},
				{
					Name:        "delete",
					Aliases:     []string{"del", "remove", "rm"},
					Usage:       "<id>",
					Description: "Delete one of your reminders.",
					Handler:     remove(reminders),
				},
			},
		})

		return nil
	}
}

func add(reminders Reminders) command.Handler {
	return func(ctx context.Context, req *command.Request) error {
		if len(req.Args) < 2 {
			return command.UserErrorf("Usage: `remind <duration> <content>`")
		}

		d, err := reminder.ParseDuration(req.Args[0])
		if err != nil {
			return command.UserErrorf(":x: `%s` is not a valid duration. Try something like `1h30m` or `2days`.", req.Args[0])
		}

		r, err := reminders.Add(ctx, req.AuthorID(), req.ChannelID(), req.Message.ID, d, req.RawAfter(1))
		if err != nil {
			return userError(err)
		}

		_, err = req.Reply(ctx, fmt.Sprintf("<@%s> %s", req.AuthorID(), reminder.Confirmation(r)))

		return err
	}
}

func list(reminders Reminders) command.Handler {
	return func(ctx context.Context, req *command.Request) error {
		pending, err := reminders.List(req.AuthorID())
		if err != nil {
			return userError(err)
		}

		if len(pending) == 0 {
			_, err = req.Reply(ctx, "You have no pending reminders.")

			return err
		}

		var b strings.Builder

		fmt.Fprintf(&b, "**Your reminders** (%d)\n", len(pending))

		for _, r := range pending {
			fmt.Fprintf(&b, "`%d` %s: %s\n",
				r.ID, r.EndTime.UTC().Format(time.RFC1123), reminder.Truncate(r.Content, reminder.PreviewLength))
		}

		_, err = req.Reply(ctx, b.String())

		return err
	}
}

func remove(reminders Reminders) command.Handler {
	return func(ctx context.Context, req *command.Request) error {
		if len(req.Args) != 1 {
			return command.UserErrorf("Usage: `remind delete <id>`")
		}

		id, err := strconv.ParseInt(req.Args[0], 10, 64)
		if err != nil {
			return command.UserErrorf(":x: `%s` is not a valid reminder ID.", req.Args[0])
		}

		if err = reminders.Delete(ctx, req.AuthorID(), id); err != nil {
			return userError(err)
		}

		_, err = req.Reply(ctx, fmt.Sprintf(":white_check_mark: Reminder %d deleted.", id))

		return err
	}
}

// userError turns the errors caused by the user into a reply.
func userError(err error) error {
	var (
		invalid   *reminder.InvalidDurationError
		notFound  *reminder.NotFoundError
		forbidden *reminder.ForbiddenError
	)

	switch {
	case errors.Is(err, reminder.ErrUnavailable):
		return command.UserErrorf(":x: Reminders are unavailable at the moment.")
	case errors.As(err, &invalid):
		return command.UserErrorf(":x: The reminder duration %s.", invalid.Reason)
	case errors.As(err, &notFound):
		return command.UserErrorf(":x: There is no reminder with ID %d.", notFound.ID)
	case errors.As(err, &forbidden):
		return command.UserErrorf(":x: Reminder %d is not yours.", forbidden.ID)
	default:
		return err
	}
}
