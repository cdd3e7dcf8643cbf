package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/skwair/harmony/discord"
)

// Sender is capable of sending messages to Discord channels.
type Sender interface {
	SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error)
}

// Handler handles an invocation of a command.
type Handler func(ctx context.Context, req *Request) error

// Command is a chat command. A command without a Handler is a group and is
// only reachable through its Subcommands.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string

	// Check runs before the handler; a returned error aborts the invocation.
	Check   func(req *Request) error
	Handler Handler

	Subcommands []*Command
}

func (c *Command) names() []string {
	return append([]string{c.Name}, c.Aliases...)
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		for _, n := range sub.names() {
			if strings.EqualFold(n, name) {
				return sub
			}
		}
	}

	return nil
}

func (c *Command) help(prefix, path string) string {
	if len(c.Subcommands) == 0 {
		return fmt.Sprintf("Usage: `%s%s %s`", prefix, path, c.Usage)
	}

	subs := make([]string, 0, len(c.Subcommands))
	for _, sub := range c.Subcommands {
		subs = append(subs, sub.Name)
	}

	return fmt.Sprintf("Usage: `%s%s <%s>`", prefix, path, strings.Join(subs, "|"))
}

// Request is a single command invocation.
type Request struct {
	Message *discord.Message

	// Path is the resolved command path, e.g. "ext load".
	Path string
	// Args are the whitespace separated arguments following the command path.
	Args []string
	// Raw is the text following the command path with its spacing preserved.
	Raw string

	sender Sender
}

// AuthorID returns the ID of the user who sent the command.
func (r *Request) AuthorID() string {
	return r.Message.Author.ID
}

// ChannelID returns the ID of the channel the command was sent in.
func (r *Request) ChannelID() string {
	return r.Message.ChannelID
}

// Reply sends a message to the channel the command was sent in.
func (r *Request) Reply(ctx context.Context, text string) (*discord.Message, error) {
	return r.sender.SendMessage(ctx, r.Message.ChannelID, text)
}

// RawAfter returns the raw text after skipping the first n arguments.
func (r *Request) RawAfter(n int) string {
	return skipFields(r.Raw, n)
}

// skipFields drops the first n whitespace separated fields of s and returns
// the rest, trimmed but otherwise untouched.
func skipFields(s string, n int) string {
	s = strings.TrimSpace(s)
	for i := 0; i < n && s != ""; i++ {
		idx := strings.IndexFunc(s, isSpace)
		if idx < 0 {
			return ""
		}

		s = strings.TrimSpace(s[idx:])
	}

	return s
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// errNotAllowed is replied to users failing a Restrict check.
const errNotAllowed = ":x: You are not allowed to use this command."

// Restrict returns a check only letting the users accepted by allowed run the command.
func Restrict(allowed func(userID string) bool) func(req *Request) error {
	return func(req *Request) error {
		if !allowed(req.AuthorID()) {
			return &UserError{Message: errNotAllowed}
		}

		return nil
	}
}
