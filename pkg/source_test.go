package cinder

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource(t *testing.T) {
	s := NewSource(strings.NewReader("ab\nc"), "testing")
	assert.Equal(t, loc(1, 1), s.Location())

	assert.Equal(t, 'a', s.Read())
	assert.Equal(t, 'b', s.Read())
	assert.Equal(t, loc(1, 3), s.Location())

	assert.Equal(t, '\n', s.Read())
	assert.Equal(t, loc(2, 1), s.Location())

	s.Unread()
	assert.Equal(t, loc(1, 3), s.Location())
	assert.Equal(t, '\n', s.Read())

	assert.Equal(t, 'c', s.Read())
	assert.Equal(t, EOF, s.Read())
	assert.Equal(t, EOF, s.Read())
	assert.Equal(t, loc(2, 2), s.Location())

	// Unreading EOF does nothing
	s.Unread()
	assert.Equal(t, EOF, s.Read())
}

func TestErrorHelpers(t *testing.T) {
	syn := eofErrorf(loc(3, 4), "Unexpected end of input")
	assert.True(t, IsIncomplete(syn))
	assert.Equal(t, "testing:3:4: Unexpected end of input", syn.Error())

	wrapped := errors.Join(errors.New("context"), evaluationErrorf(loc(1, 2), "Division by zero."))
	at, ok := LocationOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, loc(1, 2), at)
	assert.Equal(t, "EvaluationError", ErrorKind(wrapped))
	assert.False(t, IsIncomplete(wrapped))

	rt := runtimeErrorf("Unknown AST node type %s during evaluation.", NodeArgList)
	_, ok = LocationOf(rt)
	assert.False(t, ok)
	assert.Equal(t, "RuntimeError", ErrorKind(rt))
	assert.Equal(t, "Unknown AST node type ARGLIST during evaluation.", rt.Error())

	assert.Equal(t, "", ErrorKind(errors.New("plain")))
	assert.Equal(t, "plain", ErrorMessage(errors.New("plain")))
}
