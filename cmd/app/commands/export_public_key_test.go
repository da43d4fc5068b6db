package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesandrewmyers/memento/internal/crypto/service/mocks"
)

func TestRunExportPublicKey(t *testing.T) {
	ctx := context.Background()

	t.Run("writes PEM to output", func(t *testing.T) {
		keyManager := &mocks.MockKeyManager{}
		keyManager.On("ExportPublicKeyData", ctx).
			Return([]byte("-----BEGIN PUBLIC KEY-----\n"), nil)

		var out bytes.Buffer
		err := RunExportPublicKey(ctx, keyManager, &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "BEGIN PUBLIC KEY")
		keyManager.AssertExpectations(t)
	})

	t.Run("key manager failure", func(t *testing.T) {
		keyManager := &mocks.MockKeyManager{}
		keyManager.On("ExportPublicKeyData", ctx).Return(nil, assert.AnError)

		var out bytes.Buffer
		err := RunExportPublicKey(ctx, keyManager, &out)
		require.Error(t, err)
		assert.Empty(t, out.String())
	})
}
