package serverutils

import (
	"testing"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequestRegister(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  dto.RegisterRequest{Username: "note_taker-1", Email: "a@b.com", Password: "secret1"},
		},
		{
			name:    "username too short",
			req:     dto.RegisterRequest{Username: "ab", Email: "a@b.com", Password: "secret1"},
			wantErr: "field 'Username' failed on 'min'",
		},
		{
			name:    "username with spaces",
			req:     dto.RegisterRequest{Username: "note taker", Email: "a@b.com", Password: "secret1"},
			wantErr: "field 'Username' failed on 'username'",
		},
		{
			name:    "bad email",
			req:     dto.RegisterRequest{Username: "taker", Email: "nope", Password: "secret1"},
			wantErr: "field 'Email' failed on 'email'",
		},
		{
			name:    "short password",
			req:     dto.RegisterRequest{Username: "taker", Email: "a@b.com", Password: "12345"},
			wantErr: "field 'Password' failed on 'min'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.req)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateRequestCollectsAllFailures(t *testing.T) {
	err := ValidateRequest(dto.CreateNoteRequest{})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "field 'Title' failed on 'required'")
	assert.Contains(t, err.Error(), "field 'Content' failed on 'required'")
}
