package bot

import (
	"context"
	"fmt"

	"github.com/skwair/harmony"
	"github.com/skwair/harmony/discord"
)

// Client adapts a harmony client to the needs of the bot.
type Client struct {
	client *harmony.Client
}

// NewClient creates a new Client.
func NewClient(c *harmony.Client) *Client {
	return &Client{client: c}
}

// SendMessage sends a message to the given channel.
func (c *Client) SendMessage(ctx context.Context, channelID, text string) (*discord.Message, error) {
	msg, err := c.client.Channel(channelID).SendMessage(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("send message to %s: %w", channelID, err)
	}

	return msg, nil
}

// Message gets a message of the given channel.
func (c *Client) Message(ctx context.Context, channelID, messageID string) (*discord.Message, error) {
	msg, err := c.client.Channel(channelID).Message(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}

	return msg, nil
}

// ChannelName returns the name of the given channel.
func (c *Client) ChannelName(ctx context.Context, channelID string) (string, error) {
	ch, err := c.client.Channel(channelID).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("get channel %s: %w", channelID, err)
	}

	return ch.Name, nil
}

// RenameChannel renames the given channel.
func (c *Client) RenameChannel(ctx context.Context, channelID, name string) error {
	if _, err := c.client.Channel(channelID).Modify(ctx, discord.NewChannelSettings(discord.WithChannelName(name))); err != nil {
		return fmt.Errorf("rename channel %s: %w", channelID, err)
	}

	return nil
}
