package mocks

import (
	"context"
	"crypto/rsa"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockKeyManager is a mock implementation of KeyManager for testing.
type MockKeyManager struct {
	mock.Mock
}

// ExportPrivateKey mocks the ExportPrivateKey method of KeyManager.
func (m *MockKeyManager) ExportPrivateKey(ctx context.Context) (*rsa.PrivateKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsa.PrivateKey), args.Error(1)
}

// ExportPublicKey mocks the ExportPublicKey method of KeyManager.
func (m *MockKeyManager) ExportPublicKey(ctx context.Context) (*rsa.PublicKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsa.PublicKey), args.Error(1)
}

// ExportPublicKeyData mocks the ExportPublicKeyData method of KeyManager.
func (m *MockKeyManager) ExportPublicKeyData(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ContentKey mocks the ContentKey method of KeyManager.
func (m *MockKeyManager) ContentKey(ctx context.Context, noteID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
