package handlers

import (
	"context"

	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
)

type routerMock struct {
	mock.Mock
}

func (r *routerMock) Dispatch(_ context.Context, m *discord.Message) {
	r.Called(m)
}

type remindersMock struct {
	mock.Mock
}

func (r *remindersMock) Delete(_ context.Context, userID string, id int64) error {
	return r.Called(userID, id).Error(0)
}

type discordMock struct {
	mock.Mock
}

func (d *discordMock) Message(_ context.Context, channelID, messageID string) (*discord.Message, error) {
	ret := d.Called(channelID, messageID)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

func (d *discordMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := d.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}
