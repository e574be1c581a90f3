package scpi

import (
	"github.com/stretchr/testify/mock"
)

// MockTransport is a testify mock implementing Transport, intended for unit
// tests of the engine and of device wrappers.
type MockTransport struct {
	mock.Mock
}

var _ Transport = (*MockTransport)(nil)

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

func (m *MockTransport) Connect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransport) Disconnect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransport) Write(command string) error {
	args := m.Called(command)
	return args.Error(0)
}

func (m *MockTransport) Read() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockTransport) Query(command string) (string, error) {
	args := m.Called(command)
	return args.String(0), args.Error(1)
}

func (m *MockTransport) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}
