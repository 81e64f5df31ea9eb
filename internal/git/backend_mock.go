package git

import (
	"context"
	"sync"
)

// MockBackend is a Backend for tests. It returns preset values and records every call.
type MockBackend struct {
	mu sync.Mutex

	Status      UnpushedStatus
	StatusErr   error
	Published   bool
	Message     string
	MessageErr  error
	AmendResult CommandResult
	AmendErr    error

	calls          []string
	amendedMessage string
}

// NewMockBackend creates a MockBackend reporting unpushed commits and the given HEAD message
func NewMockBackend(message string) *MockBackend {
	return &MockBackend{
		Status:      Unpushed,
		Message:     message,
		AmendResult: CommandResult{Success: true, Stdout: []string{}},
	}
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns the names of the methods invoked, in order
func (m *MockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// AmendedMessage returns the message passed to the last AmendMessage call
func (m *MockBackend) AmendedMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.amendedMessage
}

// Name implements Backend
func (m *MockBackend) Name() string {
	return "mock"
}

// CheckUnpushed implements Backend
func (m *MockBackend) CheckUnpushed(_ context.Context) (UnpushedStatus, error) {
	m.record("CheckUnpushed")
	return m.Status, m.StatusErr
}

// HeadIsPublished implements Backend
func (m *MockBackend) HeadIsPublished(_ context.Context) (bool, error) {
	m.record("HeadIsPublished")
	return m.Published, nil
}

// LastCommitMessage implements Backend
func (m *MockBackend) LastCommitMessage(_ context.Context) (string, error) {
	m.record("LastCommitMessage")
	if m.MessageErr != nil {
		return NoCommitMessagePlaceholder, m.MessageErr
	}
	return m.Message, nil
}

// AmendMessage implements Backend
func (m *MockBackend) AmendMessage(_ context.Context, message string) (CommandResult, error) {
	m.record("AmendMessage")
	m.mu.Lock()
	m.amendedMessage = message
	m.mu.Unlock()
	return m.AmendResult, m.AmendErr
}
