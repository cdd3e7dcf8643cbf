package fun

import (
	"context"

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

type channelsMock struct {
	senderMock
}

func (c *channelsMock) ChannelName(_ context.Context, channelID string) (string, error) {
	ret := c.Called(channelID)

	return ret.String(0), ret.Error(1)
}

func (c *channelsMock) RenameChannel(_ context.Context, channelID, name string) error {
	return c.Called(channelID, name).Error(0)
}

type offTopicStoreMock struct {
	mock.Mock
}

func (s *offTopicStoreMock) ListOffTopicNames(_ context.Context) ([]store.OffTopicName, error) {
	ret := s.Called()

	return ret.Get(0).([]store.OffTopicName), ret.Error(1)
}

func (s *offTopicStoreMock) AddOffTopicName(_ context.Context, name string) error {
	return s.Called(name).Error(0)
}

func (s *offTopicStoreMock) RemoveOffTopicName(_ context.Context, name string) error {
	return s.Called(name).Error(0)
}

func (s *offTopicStoreMock) IncrementOffTopicNameUses(_ context.Context, name string) error {
	return s.Called(name).Error(0)
}

// sequence returns a random source yielding the given values in order.
func sequence(values ...float64) func() float64 {
	var i int

	return func() float64 {
		v := values[i%len(values)]
		i++

		return v
	}
}
