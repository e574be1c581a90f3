package scpi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeESR(t *testing.T) {
	require := require.New(t)

	t.Run("Zero", func(t *testing.T) {
		require.Empty(DecodeESR(0))
	})

	t.Run("SingleBit", func(t *testing.T) {
		require.Equal([]string{"Operation Complete"}, DecodeESR(1))
		require.Equal([]string{"Request Control"}, DecodeESR(2))
		require.Equal([]string{"Power On"}, DecodeESR(128))
	})

	t.Run("MultipleBits", func(t *testing.T) {
		// 34 = bits 1 and 5
		require.Equal([]string{"Request Control", "Command Error"}, DecodeESR(34))
	})

	t.Run("AllBits", func(t *testing.T) {
		flags := DecodeESR(255)
		require.Len(flags, 8)
		require.Equal("Operation Complete", flags[0])
		require.Equal("Power On", flags[7])
	})
}

func TestStatusError(t *testing.T) {
	require := require.New(t)

	t.Run("WithFlags", func(t *testing.T) {
		err := NewStatusError(34)
		require.Equal(byte(34), err.Value)
		require.Equal([]string{"Request Control", "Command Error"}, err.Flags)
		require.Contains(err.Error(), "ESR=34")
		require.Contains(err.Error(), "Request Control, Command Error")
	})

	t.Run("ZeroValue", func(t *testing.T) {
		err := NewStatusError(0)
		require.Empty(err.Flags)
		require.Contains(err.Error(), "no error flags set")
	})
}

func TestParseError(t *testing.T) {
	require := require.New(t)

	err := &ParseError{Raw: "not-a-number"}
	require.Contains(err.Error(), `"not-a-number"`)
	require.ErrorIs(err, ErrProtocol)

	var parseErr *ParseError
	require.True(errors.As(error(err), &parseErr))
	require.Equal("not-a-number", parseErr.Raw)
}
