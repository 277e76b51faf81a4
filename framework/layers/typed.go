package layers

import (
	"fmt"
	"reflect"
)

// Get resolves T by type under mode and converts the result to T.
//
// A value that is not assignable to T is still accepted when T is (a pointer
// to) a struct embedded in it, so a *Child found for *Parent under Children
// comes back as its embedded *Parent.
//
//	mailer, err := layers.Get[*Mailer](s, layers.Same)
//	notifier, err := layers.Get[Notifier](s, layers.Children)
func Get[T any](s *Stack, mode Mode) (T, error) {
	var zero T
	v, err := s.ResolveByType(reflect.TypeFor[T](), mode)
	if err != nil {
		return zero, err
	}
	typed, ok := convert[T](v)
	if !ok {
		return zero, fmt.Errorf("%w: %s resolved to %T", ErrTypeMismatch, TypeID(reflect.TypeFor[T]()), v)
	}
	return typed, nil
}

// Find is Get reporting failure as false.
func Find[T any](s *Stack, mode Mode) (T, bool) {
	v, err := Get[T](s, mode)
	return v, err == nil
}

// MustGet is Get that panics on failure.
func MustGet[T any](s *Stack, mode Mode) T {
	v, err := Get[T](s, mode)
	if err != nil {
		panic(err)
	}
	return v
}

// GetNamed resolves key by name and type-asserts the result.
func GetNamed[T any](s *Stack, key string) (T, error) {
	var zero T
	v, err := s.ResolveByName(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] resolved to %T", ErrTypeMismatch, key, v)
	}
	return typed, nil
}

func convert[T any](v any) (T, bool) {
	if typed, ok := v.(T); ok {
		return typed, true
	}
	var zero T
	want := reflect.TypeFor[T]()
	found, ok := embedded(reflect.ValueOf(v), want)
	if !ok {
		return zero, false
	}
	return found.Interface().(T), true
}

// embedded walks the anonymous fields of v looking for a value of type want.
func embedded(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	for i := range v.NumField() {
		if !v.Type().Field(i).Anonymous || !v.Type().Field(i).IsExported() {
			continue
		}
		f := v.Field(i)
		if f.Type() == want {
			return f, true
		}
		if want.Kind() == reflect.Pointer && f.Type() == want.Elem() && f.CanAddr() {
			return f.Addr(), true
		}
		if found, ok := embedded(f, want); ok {
			return found, true
		}
	}
	return reflect.Value{}, false
}
