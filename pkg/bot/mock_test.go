package bot

import (
	"context"

	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
)

type discordMock struct {
	mock.Mock
}

func (d *discordMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := d.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

func (d *discordMock) ChannelName(_ context.Context, channelID string) (string, error) {
	ret := d.Called(channelID)

	return ret.String(0), ret.Error(1)
}

func (d *discordMock) RenameChannel(_ context.Context, channelID, name string) error {
	return d.Called(channelID, name).Error(0)
}

type storeMock struct {
	mock.Mock
}

func (s *storeMock) CreateReminder(_ context.Context, reminder store.Reminder) (store.Reminder, error) {
	ret := s.Called(reminder)

	return ret.Get(0).(store.Reminder), ret.Error(1)
}

func (s *storeMock) ListReminders(_ context.Context) ([]store.Reminder, error) {
	ret := s.Called()

	return ret.Get(0).([]store.Reminder), ret.Error(1)
}

func (s *storeMock) RemoveReminder(_ context.Context, id int64) error {
	return s.Called(id).Error(0)
}

func (s *storeMock) ListOffTopicNames(_ context.Context) ([]store.OffTopicName, error) {
	ret := s.Called()

	return ret.Get(0).([]store.OffTopicName), ret.Error(1)
}

func (s *storeMock) AddOffTopicName(_ context.Context, name string) error {
	return s.Called(name).Error(0)
}

func (s *storeMock) RemoveOffTopicName(_ context.Context, name string) error {
	return s.Called(name).Error(0)
}

func (s *storeMock) IncrementOffTopicNameUses(_ context.Context, name string) error {
	return s.Called(name).Error(0)
}
