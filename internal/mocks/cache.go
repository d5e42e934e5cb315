package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"
)

// MockCache is a mock implementation of the Cache interface
type MockCache struct {
	data              map[string]string
	GetFunc           func(ctx context.Context, key string) (string, error)
	SetFunc           func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DeleteFunc        func(ctx context.Context, key string) error
	DeletePatternFunc func(ctx context.Context, pattern string) error
	PingFunc          func() error
	CloseFunc         func() error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return "", fmt.Errorf("key not found: %s", key)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	switch v := value.(type) {
	case string:
		m.data[key] = v
	case []byte:
		m.data[key] = string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		m.data[key] = string(data)
	}
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	delete(m.data, key)
	return nil
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	if m.DeletePatternFunc != nil {
		return m.DeletePatternFunc(ctx, pattern)
	}
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MockCache) Ping() error {
	if m.PingFunc != nil {
		return m.PingFunc()
	}
	return nil
}

func (m *MockCache) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Has reports whether a key is present, for assertions on invalidation.
func (m *MockCache) Has(key string) bool {
	_, ok := m.data[key]
	return ok
}
