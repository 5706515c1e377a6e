package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// KVStore mock, satisfies kv.Store
type KVStore struct {
	mock.Mock
}

func (m *KVStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KVStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KVStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *KVStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Clipboard mock, satisfies clipboard.Writer
type Clipboard struct {
	mock.Mock
}

func (m *Clipboard) WriteAll(text string) error {
	args := m.Called(text)
	return args.Error(0)
}
