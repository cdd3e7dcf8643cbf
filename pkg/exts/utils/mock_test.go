package utils

import (
	"context"
	"time"

	"github.com/gurkult/gurkbot/pkg/store"
	"github.com/skwair/harmony/discord"
	"github.com/stretchr/testify/mock"
)

type senderMock struct {
	mock.Mock
}

func (s *senderMock) SendMessage(_ context.Context, channelID, text string) (*discord.Message, error) {
	ret := s.Called(channelID, text)

	return ret.Get(0).(*discord.Message), ret.Error(1)
}

type remindersMock struct {
	mock.Mock
}

func (r *remindersMock) Start(_ context.Context) error {
	return r.Called().Error(0)
}

func (r *remindersMock) Stop() {
	r.Called()
}

func (r *remindersMock) Add(_ context.Context, userID, channelID, origin string, d time.Duration, content string) (store.Reminder, error) {
	ret := r.Called(userID, channelID, origin, d, content)

	return ret.Get(0).(store.Reminder), ret.Error(1)
}

func (r *remindersMock) Delete(_ context.Context, userID string, id int64) error {
	return r.Called(userID, id).Error(0)
}

func (r *remindersMock) List(userID string) ([]store.Reminder, error) {
	ret := r.Called(userID)

	return ret.Get(0).([]store.Reminder), ret.Error(1)
}
