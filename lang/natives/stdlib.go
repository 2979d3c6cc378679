package natives

import (
	"math/rand"
	"os"
	"time"

	"github.com/slothlang/sloth/lang/bytecode"
)

// stdlibRecords is a thin, idiomatic rendition of a handful of entries from
// the host standard library the spec treats as an external boundary
// (sloth_std's stdio/time/rand/file modules): thin OS glue with no
// third-party library fitting a one-line syscall wrapper better than the
// standard library itself.
var stdlibRecords = []Record{
	{
		Name: "print", Arity: 1, ReturnsValue: false,
		Doc: "print(s: String): write s to stdout with no trailing newline.",
		Fn:  printFn(false),
	},
	{
		Name: "println", Arity: 1, ReturnsValue: false,
		Doc: "println(s: String): write s to stdout followed by a newline.",
		Fn:  printFn(true),
	},
	{
		Name: "clock", Arity: 0, ReturnsValue: true,
		Doc: "clock() -> Float: seconds elapsed on a monotonic clock.",
		Fn:  clockFn,
	},
	{
		Name: "random", Arity: 0, ReturnsValue: true,
		Doc: "random() -> Float: a uniform value in [0, 1).",
		Fn:  randomFn,
	},
	{
		Name: "sleep", Arity: 1, ReturnsValue: false,
		Doc: "sleep(ms: Integer): block the calling native-call frame for ms milliseconds.",
		Fn:  sleepFn,
	},
	{
		Name: "read_file", Arity: 1, ReturnsValue: true,
		Doc: "read_file(path: String) -> String: read a file's contents into a string.",
		Fn:  readFileFn,
	},
}

func argString(vm VM, args []bytecode.Primitive, i int) (string, error) {
	if i >= len(args) || args[i].Kind != bytecode.PrimObject {
		return "", &Error{Kind: InvalidArgument, Msg: "expected a string argument"}
	}
	s, ok := vm.ReadString(args[i].Object)
	if !ok {
		return "", &Error{Kind: InvalidArgument, Msg: "argument is not a string object"}
	}
	return s, nil
}

func printFn(newline bool) Func {
	return func(vm VM, args []bytecode.Primitive) (bytecode.Primitive, error) {
		s, err := argString(vm, args, 0)
		if err != nil {
			return bytecode.Empty, err
		}
		if newline {
			_, _ = os.Stdout.WriteString(s + "\n")
		} else {
			_, _ = os.Stdout.WriteString(s)
		}
		return bytecode.Empty, nil
	}
}

var startTime = time.Now()

func clockFn(_ VM, _ []bytecode.Primitive) (bytecode.Primitive, error) {
	return bytecode.Flt(time.Since(startTime).Seconds()), nil
}

func randomFn(_ VM, _ []bytecode.Primitive) (bytecode.Primitive, error) {
	return bytecode.Flt(rand.Float64()), nil
}

func sleepFn(_ VM, args []bytecode.Primitive) (bytecode.Primitive, error) {
	if len(args) == 0 || args[0].Kind != bytecode.PrimInteger {
		return bytecode.Empty, &Error{Kind: InvalidArgument, Msg: "sleep expects an integer millisecond count"}
	}
	time.Sleep(time.Duration(args[0].Integer) * time.Millisecond)
	return bytecode.Empty, nil
}

func readFileFn(vm VM, args []bytecode.Primitive) (bytecode.Primitive, error) {
	path, err := argString(vm, args, 0)
	if err != nil {
		return bytecode.Empty, err
	}
	contents, ioErr := os.ReadFile(path)
	if ioErr != nil {
		return bytecode.Empty, &Error{Kind: UnknownErr, Msg: ioErr.Error()}
	}
	handle := vm.AllocString(string(contents))
	return bytecode.Obj(handle), nil
}
