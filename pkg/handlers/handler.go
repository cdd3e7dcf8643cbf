package handlers

import (
	"context"

	"github.com/skwair/harmony/discord"
)

// Handler represents a Discord Handler.
type Handler struct {
	router    Router
	reminders Reminders
	discord   Discord
	botUser   discord.User
}

// New creates a new Handler.
func New(r Router, rem Reminders, d Discord, bu discord.User) Handler {
	return Handler{
		router:    r,
		reminders: rem,
		discord:   d,
		botUser:   bu,
	}
}

// Router is capable of dispatching messages to commands.
type Router interface {
	Dispatch(ctx context.Context, m *discord.Message)
}

// Reminders is capable of deleting reminders.
type Reminders interface {
	Delete(ctx context.Context, userID string, id int64) error
}

// Discord is capable of interacting with Discord.
type Discord interface {
	Message(ctx context.Context, channelID, messageID string) (*discord.Message, error)
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
}
