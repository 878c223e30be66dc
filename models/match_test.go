package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey(t *testing.T) {
	assert.Equal(t, "alice#bob", PairKey("alice", "bob"))
	assert.Equal(t, "alice#bob", PairKey("bob", "alice"))
	assert.Equal(t, PairKey("x", "y"), PairKey("y", "x"))
}

func TestVerdicts(t *testing.T) {
	assert.True(t, IsPositiveVerdict(VerdictLike))
	assert.True(t, IsPositiveVerdict(VerdictSuperLike))
	assert.False(t, IsPositiveVerdict(VerdictPass))
	assert.False(t, IsPositiveVerdict("maybe"))

	assert.True(t, IsValidVerdict(VerdictPass))
	assert.False(t, IsValidVerdict(""))
	assert.False(t, IsValidVerdict("LIKE"))
}
