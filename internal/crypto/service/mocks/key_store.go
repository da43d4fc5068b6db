package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyStore is a mock implementation of KeyStore for testing.
type MockKeyStore struct {
	mock.Mock
}

// Put mocks the Put method of KeyStore.
func (m *MockKeyStore) Put(ctx context.Context, keyID string, key []byte) error {
	args := m.Called(ctx, keyID, key)
	return args.Error(0)
}

// Get mocks the Get method of KeyStore.
func (m *MockKeyStore) Get(ctx context.Context, keyID string) ([]byte, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
