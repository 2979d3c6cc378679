package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slothlang/sloth/lang/bytecode"
)

func TestHeapAllocateGrowsAndReturnsHandles(t *testing.T) {
	h := New()
	a := h.Allocate(Object{Kind: KindBoxed, Boxed: bytecode.Int(1)})
	b := h.Allocate(Object{Kind: KindBoxed, Boxed: bytecode.Int(2)})
	require.NotEqual(t, a, b)

	oa, ok := h.Get(a)
	require.True(t, ok)
	require.Equal(t, bytecode.Int(1), oa.Boxed)

	ob, ok := h.Get(b)
	require.True(t, ok)
	require.Equal(t, bytecode.Int(2), ob.Boxed)
}

func TestHeapFreeAndReallocate(t *testing.T) {
	h := New()
	a := h.Allocate(Object{Kind: KindBoxed, Boxed: bytecode.Int(1)})
	h.Free(a)

	_, ok := h.Get(a)
	require.False(t, ok, "a freed handle must not resolve")

	c := h.Allocate(Object{Kind: KindBoxed, Boxed: bytecode.Int(3)})
	require.Equal(t, a, c, "the free list must recycle the most recently freed slot")
}

func TestHeapGetOutOfBounds(t *testing.T) {
	h := New()
	_, ok := h.Get(42)
	require.False(t, ok)
}

func TestHeapStringObject(t *testing.T) {
	h := New()
	handle := h.Allocate(Object{Kind: KindString, Str: "hello"})
	obj, ok := h.Get(handle)
	require.True(t, ok)
	require.Equal(t, "hello", obj.Str)
}
