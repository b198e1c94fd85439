package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation with SQLSTATE",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "versions_hash_key" (SQLSTATE 23505)`),
			want: true,
		},
		{
			name: "bare code without SQLSTATE marker",
			err:  errors.New("ERROR: duplicate key 23505"),
			want: false,
		},
		{
			name: "code digits inside a hash are not a match",
			err:  errors.New(`version 'a4000123505bc...' not found`),
			want: false,
		},
		{
			name: "foreign key violation",
			err:  errors.New("ERROR: violates foreign key constraint (SQLSTATE 23503)"),
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(errors.New("ERROR: insert or update violates foreign key constraint (SQLSTATE 23503)")))
	assert.False(t, IsForeignKeyViolation(errors.New("SQLSTATE 23505")))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure",
			err:  errors.New("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)"),
			want: true,
		},
		{
			name: "deadlock detected",
			err:  errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"),
			want: true,
		},
		{
			name: "unique violation is not a serialization failure",
			err:  errors.New("SQLSTATE 23505"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSerializationFailure(tt.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(errors.New("SQLSTATE 40001")))
	assert.True(t, IsRetryable(errors.New("SQLSTATE 23505")))
	assert.False(t, IsRetryable(errors.New("SQLSTATE 23503")))
	assert.False(t, IsRetryable(nil))
}
