package evaluator

import (
	"fmt"
	"os"

	"github.com/midbel/monkey/object"
)

// builtins is the catalog consulted by evalIdentifier after the
// environment chain misses a name. It is a small immutable map, never a
// mutable global registry.
var builtins = map[string]*object.Builtin{
	"len":   {Name: "len", Fn: builtinLen},
	"first": {Name: "first", Fn: builtinFirst},
	"last":  {Name: "last", Fn: builtinLast},
	"rest":  {Name: "rest", Fn: builtinRest},
	"push":  {Name: "push", Fn: builtinPush},
	"puts":  {Name: "puts", Fn: builtinPuts},
}

func wrongArity(want, got int) *object.Error {
	return object.Newf(object.WrongArity, "wrong number of arguments. got=%d, want=%d", got, want)
}

func builtinLen(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArity(1, len(args))
	}
	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(len(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	default:
		return object.Newf(object.InvalidToken, "argument to `len` not supported, got %s", args[0].Type())
	}
}

func builtinFirst(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArity(1, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.Newf(object.InvalidToken, "argument to `first` must be ARRAY, got %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return object.Null
	}
	return arr.Elements[0]
}

func builtinLast(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArity(1, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.Newf(object.InvalidToken, "argument to `last` must be ARRAY, got %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return object.Null
	}
	return arr.Elements[len(arr.Elements)-1]
}

func builtinRest(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArity(1, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.Newf(object.InvalidToken, "argument to `rest` must be ARRAY, got %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return object.Null
	}
	rest := make([]object.Object, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return &object.Array{Elements: rest}
}

func builtinPush(args ...object.Object) object.Object {
	if len(args) != 2 {
		return wrongArity(2, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return object.Newf(object.InvalidToken, "argument to `push` must be ARRAY, got %s", args[0].Type())
	}
	return arr.Push(args[1])
}

func builtinPuts(args ...object.Object) object.Object {
	for _, arg := range args {
		fmt.Fprintln(os.Stdout, arg.Inspect())
	}
	return object.Null
}
