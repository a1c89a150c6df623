package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindUnknownCoin, "coin not found")
	assert.Equal(t, KindUnknownCoin, KindOf(err))
	assert.True(t, IsKind(err, KindUnknownCoin))
	assert.False(t, IsKind(err, KindUpstream))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Wrap(KindUpstream, "balance service unreachable", errors.New("dial tcp: refused"))
	outer := fmt.Errorf("wallet lookup: %w", inner)

	assert.True(t, IsKind(outer, KindUpstream))
	assert.Contains(t, outer.Error(), "dial tcp: refused")
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("untyped")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindPersistence, "link account", cause)
	assert.ErrorIs(t, err, cause)
}
