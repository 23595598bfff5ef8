package kblock

import (
	"reflect"
	"sync"

	"github.com/huandu/go-clone"
)

// Cloner is implemented by payloads that know how to copy themselves. Clone
// must return a value that shares no mutable memory with the receiver.
type Cloner[T any] interface {
	Clone() T
}

// Clone returns an independent copy of v.
//
// Payloads implementing Cloner[T] are copied through their Clone method.
// Values whose type holds no references (scalars, strings, arrays and structs
// of those, exported fields or not) are returned as is. Everything else is
// deep copied, unexported fields included.
func Clone[T any](v T) T {
	switch x := any(v).(type) {
	case nil:
		return v
	case Cloner[T]:
		return x.Clone()
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return v
	}

	if plain(reflect.TypeOf(v)) {
		return v
	}
	if c, ok := clone.Clone(v).(T); ok {
		return c
	}
	return v
}

var plainTypes sync.Map // reflect.Type -> bool

// plain reports whether values of t can be copied by assignment.
func plain(t reflect.Type) bool {
	if cached, ok := plainTypes.Load(t); ok {
		return cached.(bool)
	}
	p := walkPlain(t)
	plainTypes.Store(t, p)
	return p
}

func walkPlain(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || walkPlain(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !walkPlain(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
