package extension

import (
	"github.com/stretchr/testify/mock"
)

type hostMock struct {
	mock.Mock
}

func (h *hostMock) Load(id string) error {
	return h.Called(id).Error(0)
}

func (h *hostMock) Unload(id string) error {
	return h.Called(id).Error(0)
}

func (h *hostMock) Reload(id string) error {
	return h.Called(id).Error(0)
}

func (h *hostMock) IsLoaded(id string) bool {
	return h.Called(id).Bool(0)
}

func (h *hostMock) Loaded() []string {
	return h.Called().Get(0).([]string)
}
