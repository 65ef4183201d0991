package watcher

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestCoalescerUnionsOps(t *testing.T) {
	var c coalescer
	c.add("a.js", Create)
	c.add("a.js", Write)
	c.add("b.js", Write)
	c.add("a.js", Write)

	require.Equal(t, []Event{
		{Path: "a.js", Op: Create | Write},
		{Path: "b.js", Op: Write},
	}, c.take())

	// Taking resets the pending set
	require.Nil(t, c.take())

	c.add("a.js", Remove)
	require.Equal(t, []Event{{Path: "a.js", Op: Remove}}, c.take())
}

func TestOpMapping(t *testing.T) {
	require.Equal(t, Create, opOf(fsnotify.Create))
	require.Equal(t, Write, opOf(fsnotify.Write))
	require.Equal(t, Remove, opOf(fsnotify.Remove))
	require.Equal(t, Rename, opOf(fsnotify.Rename))
	require.Equal(t, Create|Write, opOf(fsnotify.Create|fsnotify.Write))

	// Chmods don't trigger a re-check
	require.Equal(t, Op(0), opOf(fsnotify.Chmod))
}

func TestOpHas(t *testing.T) {
	op := Create | Write
	require.True(t, op.Has(Create))
	require.True(t, op.Has(Write))
	require.False(t, op.Has(Remove))
	require.False(t, op.Has(Rename))
}
