// Package mocks provides mock implementations of the crypto service
// interfaces for testing.
package mocks

import (
	"github.com/stretchr/testify/mock"

	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
)

// MockEnvelope is a mock implementation of Envelope for testing.
type MockEnvelope struct {
	mock.Mock
}

// SealPayload mocks the SealPayload method of Envelope.
func (m *MockEnvelope) SealPayload(payload *notesDomain.NotePayload, key []byte) ([]byte, error) {
	args := m.Called(payload, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// OpenPayload mocks the OpenPayload method of Envelope.
func (m *MockEnvelope) OpenPayload(blob, key []byte) (*notesDomain.NotePayload, error) {
	args := m.Called(blob, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesDomain.NotePayload), args.Error(1)
}

// Seal mocks the Seal method of Envelope.
func (m *MockEnvelope) Seal(plaintext, key []byte) ([]byte, error) {
	args := m.Called(plaintext, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Open mocks the Open method of Envelope.
func (m *MockEnvelope) Open(blob, key []byte) ([]byte, error) {
	args := m.Called(blob, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
