package e

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestW(t *testing.T) {
	err := W(errors.New("boom"), "000101")
	require.Error(t, err)
	require.True(t, ContainsError(err, "000101"))
	require.True(t, ContainsError(err, "boom"))

	// Wrapping again accumulates the new code
	err = W(err, "000102", "while applying")
	require.True(t, ContainsError(err, "000101"))
	require.True(t, ContainsError(err, "000102"))
	require.True(t, ContainsError(err, "while applying"))
}

func TestN(t *testing.T) {
	err := N("000103", MsgMigrationEmptyUp)
	require.True(t, ContainsError(err, "000103"))
	require.Equal(t, "000103: "+MsgMigrationEmptyUp, Msg(err))
}

func TestAsExtendedError(t *testing.T) {
	require.Nil(t, AsExtendedError(errors.New("plain")))

	err := W(nil, "000104", "created")
	ee := AsExtendedError(err)
	require.NotNil(t, ee)
	require.Equal(t, "000104: created", ee.Message)
}

func TestIsError(t *testing.T) {
	sentinel := errors.New("sentinel")
	ee := AsExtendedError(W(sentinel, "000105"))
	require.NotNil(t, ee)
	require.True(t, ee.IsError(sentinel))
	require.False(t, ee.IsError(errors.New("other")))
}
