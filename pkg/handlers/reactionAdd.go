package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/gurkult/gurkbot/pkg/reminder"
	"github.com/rs/zerolog/log"
	"github.com/skwair/harmony"
)

// DeleteEmoji deletes the reminder of the confirmation message it reacts to.
const DeleteEmoji = "❌"

var reminderIDRegex = regexp.MustCompile(`ID: ([0-9]+)\s*$`)

// ReactionAdd gets all reactions created.
// The owner of a reminder deletes it by reacting with DeleteEmoji to its confirmation.
func (h Handler) ReactionAdd(r *harmony.MessageReaction) {
	if r.UserID == h.botUser.ID || r.Emoji == nil || r.Emoji.Name != DeleteEmoji {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	message, err := h.discord.Message(ctx, r.ChannelID, r.MessageID)
	if err != nil {
		log.Error().Err(err).Msg("Unable to find message")

		return
	}

	if message.Author.ID != h.botUser.ID {
		return
	}

	matches := reminderIDRegex.FindStringSubmatch(message.Content)
	if matches == nil {
		log.Debug().Msg("ID invalid")

		return
	}

	id, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		log.Debug().Err(err).Msg("ID invalid")

		return
	}

	logger := log.With().Int64("reminder_id", id).Str("user_id", r.UserID).Logger()

	if err = h.reminders.Delete(ctx, r.UserID, id); err != nil {
		var (
			notFound  *reminder.NotFoundError
			forbidden *reminder.ForbiddenError
		)

		switch {
		case errors.As(err, &notFound), errors.As(err, &forbidden):
			logger.Debug().Err(err).Msg("Reminder not deleted")
		default:
			logger.Error().Err(err).Msg("Unable to delete reminder")
		}

		return
	}

	logger.Info().Msg("Reminder deleted by reaction")

	if _, err = h.discord.SendMessage(ctx, r.ChannelID, fmt.Sprintf("<@%s> :white_check_mark: Reminder %d deleted.", r.UserID, id)); err != nil {
		logger.Error().Err(err).Msg("Unable to send message")
	}
}
