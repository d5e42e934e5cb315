package mocks

import (
	"sync"
)

// MockMessageQueue is a mock implementation of queue.MessageQueue
type MockMessageQueue struct {
	mu        sync.Mutex
	published map[string][][]byte
	handlers  map[string]func(data []byte) error

	PublishFunc   func(subject string, data []byte) error
	SubscribeFunc func(subject string, handler func(data []byte) error) error
}

func NewMockMessageQueue() *MockMessageQueue {
	return &MockMessageQueue{
		published: make(map[string][][]byte),
		handlers:  make(map[string]func(data []byte) error),
	}
}

func (m *MockMessageQueue) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.mu.Lock()
	m.published[subject] = append(m.published[subject], data)
	handler := m.handlers[subject]
	m.mu.Unlock()

	if handler != nil {
		return handler(data)
	}
	return nil
}

func (m *MockMessageQueue) Subscribe(subject string, handler func(data []byte) error) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(subject, handler)
	}
	m.mu.Lock()
	m.handlers[subject] = handler
	m.mu.Unlock()
	return nil
}

func (m *MockMessageQueue) Close() error {
	return nil
}

// GetPublishedMessages returns every message published on a subject.
func (m *MockMessageQueue) GetPublishedMessages(subject string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.published[subject]
}
