//go:build unit

package usecase_test

import (
	"encoding/base64"
	"testing"
	"time"

	"promo-engine/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2025, 6, 15, 10, 30, 45, 123456000, time.UTC)

	cursor := usecase.EncodeAfterCursor(at, id)
	gotTime, gotID, err := usecase.DecodeAfterCursor(cursor)
	require.NoError(t, err)

	assert.True(t, gotTime.Equal(at))
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursorRejects(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "!!!not-base64!!!"},
		{name: "unsupported version", cursor: base64.URLEncoding.EncodeToString([]byte("v2:123-" + uuid.NewString()))},
		{name: "missing separator", cursor: base64.URLEncoding.EncodeToString([]byte("v1:123456"))},
		{name: "bad timestamp", cursor: base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString()))},
		{name: "bad uuid", cursor: base64.URLEncoding.EncodeToString([]byte("v1:123-not-a-uuid"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := usecase.DecodeAfterCursor(tc.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, usecase.ValidateLimit(0))
	assert.Equal(t, 20, usecase.ValidateLimit(-5))
	assert.Equal(t, 50, usecase.ValidateLimit(50))
	assert.Equal(t, usecase.MaxListLimit, usecase.ValidateLimit(10000))
}
