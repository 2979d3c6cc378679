package natives

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slothlang/sloth/lang/bytecode"
)

// fakeVM is a minimal natives.VM for exercising native functions without a
// real heap or VM loop.
type fakeVM struct {
	strings map[uint32]string
	next    uint32
}

func newFakeVM() *fakeVM { return &fakeVM{strings: map[uint32]string{}} }

func (f *fakeVM) AllocString(s string) uint32 {
	f.next++
	f.strings[f.next] = s
	return f.next
}

func (f *fakeVM) ReadString(handle uint32) (string, bool) {
	s, ok := f.strings[handle]
	return s, ok
}

func TestStandardRegistryHasAllNatives(t *testing.T) {
	reg := Standard()
	for _, name := range []string{"print", "println", "clock", "random", "sleep", "read_file"} {
		_, ok := reg.Lookup(name)
		require.True(t, ok, name)
	}
}

func TestPrintRoundTrip(t *testing.T) {
	vm := newFakeVM()
	h := vm.AllocString("hi")
	rec, ok := Standard().Lookup("print")
	require.True(t, ok)
	_, err := rec.Fn(vm, []bytecode.Primitive{bytecode.Obj(h)})
	require.NoError(t, err)
}

func TestPrintRejectsNonStringArgument(t *testing.T) {
	vm := newFakeVM()
	rec, ok := Standard().Lookup("print")
	require.True(t, ok)
	_, err := rec.Fn(vm, []bytecode.Primitive{bytecode.Int(1)})
	require.Error(t, err)
	var nativeErr *Error
	require.ErrorAs(t, err, &nativeErr)
	require.Equal(t, InvalidArgument, nativeErr.Kind)
}

func TestRandomIsWithinUnitRange(t *testing.T) {
	rec, ok := Standard().Lookup("random")
	require.True(t, ok)
	v, err := rec.Fn(newFakeVM(), nil)
	require.NoError(t, err)
	require.Equal(t, bytecode.PrimFloat, v.Kind)
	require.GreaterOrEqual(t, v.Float, 0.0)
	require.Less(t, v.Float, 1.0)
}

func TestClockReturnsFloat(t *testing.T) {
	rec, ok := Standard().Lookup("clock")
	require.True(t, ok)
	v, err := rec.Fn(newFakeVM(), nil)
	require.NoError(t, err)
	require.Equal(t, bytecode.PrimFloat, v.Kind)
}

func TestReadFileMissingPathIsUnknownError(t *testing.T) {
	vm := newFakeVM()
	path := vm.AllocString("/nonexistent/path/for/sloth/tests")
	rec, ok := Standard().Lookup("read_file")
	require.True(t, ok)
	_, err := rec.Fn(vm, []bytecode.Primitive{bytecode.Obj(path)})
	require.Error(t, err)
	var nativeErr *Error
	require.ErrorAs(t, err, &nativeErr)
	require.Equal(t, UnknownErr, nativeErr.Kind)
}

func TestSleepRejectsNonIntegerArgument(t *testing.T) {
	rec, ok := Standard().Lookup("sleep")
	require.True(t, ok)
	_, err := rec.Fn(newFakeVM(), []bytecode.Primitive{bytecode.Flt(1.5)})
	require.Error(t, err)
}

func TestSleepZeroReturnsImmediately(t *testing.T) {
	rec, ok := Standard().Lookup("sleep")
	require.True(t, ok)
	_, err := rec.Fn(newFakeVM(), []bytecode.Primitive{bytecode.Int(0)})
	require.NoError(t, err)
}
