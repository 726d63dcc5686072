package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDiagnostic(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain message unchanged",
			input:    "relation does not exist",
			expected: "relation does not exist",
		},
		{
			name:     "newlines replaced",
			input:    "ERROR: syntax error\nLINE 1: SELEC\n",
			expected: "ERROR: syntax error LINE 1: SELEC ",
		},
		{
			name:     "carriage returns replaced",
			input:    "first\r\nsecond",
			expected: "first  second",
		},
		{
			name:     "empty message",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatDiagnostic(tt.input))
		})
	}
}

func TestPreparedBlockName(t *testing.T) {
	require.Equal(t, "prepared_blockiroha_default", PreparedBlockName(DefaultDatabaseName))
	require.Equal(t, "prepared_blockdb42", PreparedBlockName("db42"))
}

func TestSessionErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &SessionError{Index: 3, Operation: "open", Cause: cause}

	require.Equal(t, "iroha: session 3 open failed: connection refused", err.Error())
	require.ErrorIs(t, err, cause)
}
