package ui

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// ActionFunc is a callback that receives only its bound arguments.
type ActionFunc func(args ...any) error

// ElementActionFunc is a callback that receives the pressed Element before
// its bound arguments.
type ElementActionFunc func(e *Element, args ...any) error

type actionKind int

const (
	plainAction actionKind = iota
	elementAction
)

// action is a bound callback together with its arguments.
type action struct {
	kind    actionKind
	plain   ActionFunc
	element ElementActionFunc
	args    []any
	name    string
}

func (a *action) invoke(e *Element) error {
	switch a.kind {
	case elementAction:
		return a.element(e, a.args...)
	default:
		return a.plain(a.args...)
	}
}

func (a *action) String() string {
	if len(a.args) == 0 {
		return a.name + "()"
	}
	parts := make([]string, len(a.args))
	for i, arg := range a.args {
		parts[i] = describeArg(arg)
	}
	return a.name + "(" + strings.Join(parts, ", ") + ")"
}

// describeArg prints scalars by value and everything else by kind or type.
// Stringers are never called: a view argument would print its own grid,
// whose elements may be bound back to the first view.
func describeArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "<nil>"
	case *View:
		return "view(" + v.Name() + ")"
	case *Element:
		return "element(" + v.Name() + ")"
	}
	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%T", arg)
	}
}

// funcName returns the short name of fn as reported by the runtime,
// e.g. "main.(*calculator).compute-fm".
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "<nil>"
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "<unknown>"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
