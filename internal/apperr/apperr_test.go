package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := New(KindPaymentDeclined, "card declined")
	wrapped := fmt.Errorf("confirm payment 2 of 3: %w", base)

	require.Equal(t, KindPaymentDeclined, KindOf(wrapped))
	require.True(t, IsKind(wrapped, KindPaymentDeclined))
	require.False(t, IsKind(wrapped, KindNotFound))
}

func TestKindOfPlainError(t *testing.T) {
	require.Equal(t, Kind(""), KindOf(errors.New("boom")))
	require.Equal(t, Kind(""), KindOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindNetworkUnavailable, "backend unreachable", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "backend unreachable")
	require.Contains(t, err.Error(), "connection refused")
}
