package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotePayload_Normalize(t *testing.T) {
	t.Run("SortsAndDeduplicatesTags", func(t *testing.T) {
		payload := &NotePayload{Tags: []string{"work", "ideas", "work", "  ideas ", "archive"}}
		payload.Normalize()
		assert.Equal(t, []string{"archive", "ideas", "work"}, payload.Tags)
	})

	t.Run("DropsEmptyTags", func(t *testing.T) {
		payload := &NotePayload{Tags: []string{"", "   ", "keep"}}
		payload.Normalize()
		assert.Equal(t, []string{"keep"}, payload.Tags)
	})

	t.Run("ConvertsTimestampsToUTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
		payload := &NotePayload{CreatedAt: created, UpdatedAt: created}
		payload.Normalize()
		assert.Equal(t, time.UTC, payload.CreatedAt.Location())
		assert.True(t, payload.CreatedAt.Equal(created))
	})
}

func TestNotePayload_Equal(t *testing.T) {
	now := time.Now().UTC()
	base := &NotePayload{
		Title:     "Test Note",
		Body:      "body",
		Tags:      []string{"test-tag"},
		CreatedAt: now,
		UpdatedAt: now,
		Pinned:    false,
	}

	t.Run("EqualPayloads", func(t *testing.T) {
		other := *base
		assert.True(t, base.Equal(&other))
	})

	t.Run("DifferentTitle", func(t *testing.T) {
		other := *base
		other.Title = "Other"
		assert.False(t, base.Equal(&other))
	})

	t.Run("DifferentTags", func(t *testing.T) {
		other := *base
		other.Tags = []string{"another-tag"}
		assert.False(t, base.Equal(&other))
	})

	t.Run("NilIsNotEqual", func(t *testing.T) {
		assert.False(t, base.Equal(nil))
	})

	t.Run("SameInstantDifferentZone", func(t *testing.T) {
		other := *base
		other.CreatedAt = now.In(time.FixedZone("UTC-5", -5*60*60))
		assert.True(t, base.Equal(&other))
	})
}
