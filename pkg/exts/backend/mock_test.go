package backend

import (
	"context"

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
