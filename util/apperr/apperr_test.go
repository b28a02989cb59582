package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractors(t *testing.T) {
	err := New(KindConflict, "NO_STOCK", "not enough stock")
	require.Equal(t, KindConflict, KindOf(err))
	require.Equal(t, "NO_STOCK", CodeOf(err))
	require.Equal(t, "not enough stock", err.Error())

	// Extraction survives wrapping.
	wrapped := fmt.Errorf("checkout: %w", err)
	require.Equal(t, KindConflict, KindOf(wrapped))
	require.Equal(t, "NO_STOCK", CodeOf(wrapped))

	plain := errors.New("boom")
	require.Equal(t, KindUnknown, KindOf(plain))
	require.Empty(t, CodeOf(plain))
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindPlatform, "STORAGE_UNREACHABLE", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "STORAGE_UNREACHABLE", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation: http.StatusBadRequest,
		KindConflict:   http.StatusConflict,
		KindNotFound:   http.StatusNotFound,
		KindForbidden:  http.StatusForbidden,
		KindPartial:    http.StatusMultiStatus,
		KindPlatform:   http.StatusBadGateway,
	}
	for kind, want := range cases {
		require.Equal(t, want, HTTPStatus(New(kind, "X", "x")))
	}
	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}
