package mocks

import (
	"crypto/rsa"

	"github.com/stretchr/testify/mock"
)

// MockKeyWrapper is a mock implementation of KeyWrapper for testing.
type MockKeyWrapper struct {
	mock.Mock
}

// Wrap mocks the Wrap method of KeyWrapper.
func (m *MockKeyWrapper) Wrap(key []byte, recipient *rsa.PublicKey) ([]byte, error) {
	args := m.Called(key, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Unwrap mocks the Unwrap method of KeyWrapper.
func (m *MockKeyWrapper) Unwrap(wrapped []byte, identity *rsa.PrivateKey) ([]byte, error) {
	args := m.Called(wrapped, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ParsePublicKey mocks the ParsePublicKey method of KeyWrapper.
func (m *MockKeyWrapper) ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rsa.PublicKey), args.Error(1)
}
