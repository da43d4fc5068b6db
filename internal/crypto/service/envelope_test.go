package service

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/jamesandrewmyers/memento/internal/crypto/domain"
	notesDomain "github.com/jamesandrewmyers/memento/internal/notes/domain"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func testPayload() *notesDomain.NotePayload {
	return &notesDomain.NotePayload{
		Title:     "Grocery list",
		Body:      "- milk\n- eggs",
		Tags:      []string{"errands", "home"},
		CreatedAt: time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC),
		UpdatedAt: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC),
		Pinned:    true,
	}
}

func TestEnvelopeService_SealOpenPayload(t *testing.T) {
	envelope := NewEnvelope(NewAEADManager(), cryptoDomain.AESGCM)
	key := testKey(t)

	t.Run("round trip", func(t *testing.T) {
		payload := testPayload()

		blob, err := envelope.SealPayload(payload, key)
		require.NoError(t, err)
		assert.Greater(t, len(blob), cryptoDomain.NonceSize+cryptoDomain.TagSize)

		recovered, err := envelope.OpenPayload(blob, key)
		require.NoError(t, err)
		assert.True(t, payload.Equal(recovered))
	})

	t.Run("round trip with empty fields", func(t *testing.T) {
		payload := &notesDomain.NotePayload{
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		}

		blob, err := envelope.SealPayload(payload, key)
		require.NoError(t, err)

		recovered, err := envelope.OpenPayload(blob, key)
		require.NoError(t, err)
		assert.True(t, payload.Equal(recovered))
		assert.Empty(t, recovered.Tags)
	})

	t.Run("tampered blob fails authentication", func(t *testing.T) {
		blob, err := envelope.SealPayload(testPayload(), key)
		require.NoError(t, err)

		// Flip one bit in the ciphertext section.
		blob[cryptoDomain.NonceSize] ^= 0x01

		recovered, err := envelope.OpenPayload(blob, key)
		assert.Nil(t, recovered)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("tampered nonce fails authentication", func(t *testing.T) {
		blob, err := envelope.SealPayload(testPayload(), key)
		require.NoError(t, err)

		blob[0] ^= 0x01

		recovered, err := envelope.OpenPayload(blob, key)
		assert.Nil(t, recovered)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("wrong key fails authentication", func(t *testing.T) {
		blob, err := envelope.SealPayload(testPayload(), key)
		require.NoError(t, err)

		recovered, err := envelope.OpenPayload(blob, testKey(t))
		assert.Nil(t, recovered)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("truncated blob fails authentication", func(t *testing.T) {
		recovered, err := envelope.OpenPayload([]byte("short"), key)
		assert.Nil(t, recovered)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("authenticated but malformed plaintext fails deserialization", func(t *testing.T) {
		blob, err := envelope.Seal([]byte("not a payload"), key)
		require.NoError(t, err)

		recovered, err := envelope.OpenPayload(blob, key)
		assert.Nil(t, recovered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDeserialization)
	})

	t.Run("unknown fields fail deserialization", func(t *testing.T) {
		blob, err := envelope.Seal([]byte(`{"title":"x","extra":true}`), key)
		require.NoError(t, err)

		recovered, err := envelope.OpenPayload(blob, key)
		assert.Nil(t, recovered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDeserialization)
	})
}

func TestMarshalPayload_Deterministic(t *testing.T) {
	t.Run("identical payloads serialize identically", func(t *testing.T) {
		a, err := marshalPayload(testPayload())
		require.NoError(t, err)
		b, err := marshalPayload(testPayload())
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("tag order does not affect serialization", func(t *testing.T) {
		p1 := testPayload()
		p1.Tags = []string{"home", "errands"}
		p2 := testPayload()
		p2.Tags = []string{"errands", "home", "errands"}

		a, err := marshalPayload(p1)
		require.NoError(t, err)
		b, err := marshalPayload(p2)
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("timestamp zone does not affect serialization", func(t *testing.T) {
		zone := time.FixedZone("UTC+2", 2*60*60)
		p1 := testPayload()
		p2 := testPayload()
		p2.CreatedAt = p2.CreatedAt.In(zone)
		p2.UpdatedAt = p2.UpdatedAt.In(zone)

		a, err := marshalPayload(p1)
		require.NoError(t, err)
		b, err := marshalPayload(p2)
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("nanosecond precision survives a round trip", func(t *testing.T) {
		envelope := NewEnvelope(NewAEADManager(), cryptoDomain.AESGCM)
		key := testKey(t)

		payload := testPayload()
		blob, err := envelope.SealPayload(payload, key)
		require.NoError(t, err)

		recovered, err := envelope.OpenPayload(blob, key)
		require.NoError(t, err)
		assert.Equal(t, payload.CreatedAt.Nanosecond(), recovered.CreatedAt.Nanosecond())
	})
}

func TestEnvelopeService_Frame(t *testing.T) {
	envelope := NewEnvelope(NewAEADManager(), cryptoDomain.AESGCM)
	key := testKey(t)

	plaintext := []byte("attachment bytes")
	blob, err := envelope.Seal(plaintext, key)
	require.NoError(t, err)

	t.Run("frame layout", func(t *testing.T) {
		assert.Equal(t, cryptoDomain.NonceSize+len(plaintext)+cryptoDomain.TagSize, len(blob))
		assert.Len(t, FrameNonce(blob), cryptoDomain.NonceSize)
		assert.Len(t, FrameTag(blob), cryptoDomain.TagSize)
	})

	t.Run("fresh nonce per seal", func(t *testing.T) {
		other, err := envelope.Seal(plaintext, key)
		require.NoError(t, err)

		assert.NotEqual(t, FrameNonce(blob), FrameNonce(other))
		assert.NotEqual(t, blob, other)
	})

	t.Run("helpers reject short blobs", func(t *testing.T) {
		assert.Nil(t, FrameNonce([]byte("x")))
		assert.Nil(t, FrameTag([]byte("x")))
	})
}

func TestEnvelopeService_ChaCha20(t *testing.T) {
	envelope := NewEnvelope(NewAEADManager(), cryptoDomain.ChaCha20)
	key := testKey(t)

	payload := testPayload()
	blob, err := envelope.SealPayload(payload, key)
	require.NoError(t, err)

	recovered, err := envelope.OpenPayload(blob, key)
	require.NoError(t, err)
	assert.True(t, payload.Equal(recovered))
}

func TestEnvelopeService_InvalidKey(t *testing.T) {
	envelope := NewEnvelope(NewAEADManager(), cryptoDomain.AESGCM)

	_, err := envelope.Seal([]byte("data"), []byte("short"))
	assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
}
