package e

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestIsPQError(t *testing.T) {
	pqerr := &pq.Error{Code: PQErr23505UniqueViolation}
	require.True(t, IsPQError(pqerr, PQErr23505UniqueViolation))
	require.False(t, IsPQError(pqerr, "42P01"))
	require.False(t, IsPQError(errors.New("plain"), PQErr23505UniqueViolation))
	require.False(t, IsPQError(nil, PQErr23505UniqueViolation))

	// Detection survives repeated wrapping
	wrapped := W(W(pqerr, "000601"), "000402")
	require.True(t, IsPQError(wrapped, PQErr23505UniqueViolation))
}
