package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validEvidence() *Evidence {
	return &Evidence{
		Topic:      "diabetes",
		Title:      "Diabetes overview",
		Source:     SourceHealthSite,
		SourceName: "WebMD",
		URL:        "https://www.webmd.com/diabetes",
	}
}

func TestValidateEvidence(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		assert.NoError(t, ValidateEvidence(validEvidence()))
	})

	t.Run("nil record rejected", func(t *testing.T) {
		err := ValidateEvidence(nil)
		assert.ErrorIs(t, err, ErrInvalidEvidence)
	})

	t.Run("required fields", func(t *testing.T) {
		cases := []struct {
			name    string
			mutate  func(*Evidence)
			wantErr error
		}{
			{"empty topic", func(ev *Evidence) { ev.Topic = "" }, ErrEmptyTopic},
			{"empty title", func(ev *Evidence) { ev.Title = "" }, ErrEmptyTitle},
			{"empty url", func(ev *Evidence) { ev.URL = "" }, ErrEmptyURL},
			{"empty source name", func(ev *Evidence) { ev.SourceName = "" }, ErrEmptySourceName},
			{"invalid source type", func(ev *Evidence) { ev.Source = SourceType(42) }, ErrInvalidSourceType},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				ev := validEvidence()
				tc.mutate(ev)
				err := ValidateEvidence(ev)
				assert.ErrorIs(t, err, ErrInvalidEvidence)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("future timestamp rejected", func(t *testing.T) {
		ev := validEvidence()
		ev.RetrievedAt = time.Now().Add(time.Hour)
		err := ValidateEvidence(ev)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})

	t.Run("zero timestamp allowed", func(t *testing.T) {
		ev := validEvidence()
		ev.RetrievedAt = time.Time{}
		assert.NoError(t, ValidateEvidence(ev))
	})

	t.Run("missing vector allowed", func(t *testing.T) {
		ev := validEvidence()
		ev.Vector = nil
		assert.NoError(t, ValidateEvidence(ev))
	})
}

func TestValidateSourceType(t *testing.T) {
	for _, s := range []SourceType{SourceJournal, SourceHealthSite, SourceCommunity, SourceCurated} {
		assert.NoError(t, ValidateSourceType(s))
	}
	assert.ErrorIs(t, ValidateSourceType(SourceType(0)), ErrInvalidSourceType)
	assert.ErrorIs(t, ValidateSourceType(SourceType(7)), ErrInvalidSourceType)
}

func TestIsValidTimestamp(t *testing.T) {
	assert.True(t, IsValidTimestamp(time.Now().Add(-time.Minute)))
	assert.False(t, IsValidTimestamp(time.Now().Add(time.Minute)))
}
