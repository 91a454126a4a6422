// Package clone deep-copies the values that flow through route records and
// navigation targets.
//
// Scalars and times are returned as is. Pointers to scalars are rebuilt.
// Maps and slices of any element type are copied element by element, so
// decoder output such as []map[string]any or []string is never shared.
// Regular expressions, errors, functions, channels, structs and pointers to
// anything but a scalar are returned by reference.
//
// Reference cycles are preserved: a map or slice that appears again anywhere
// in the graph resolves to the copy already made for it.
package clone

import (
	"reflect"
	"regexp"
	"time"
)

// Set is an unordered collection of comparable members.
type Set map[any]struct{}

// identity keys a container by kind, backing pointer and length.
// Length matters for slices: two slices sharing a backing array with
// different lengths are distinct values.
type identity struct {
	kind reflect.Kind
	ptr  uintptr
	n    int
}

// Cloner copies values while tracking containers it has already visited.
// A Cloner must not be shared between goroutines.
type Cloner struct {
	seen map[identity]any
}

// New returns a Cloner with an empty visited map.
func New() *Cloner {
	return &Cloner{seen: make(map[identity]any)}
}

// Value returns a deep copy of v using a fresh Cloner.
func Value(v any) any {
	return New().Value(v)
}

// Map returns a deep copy of m using a fresh Cloner.
func Map(m map[string]any) map[string]any {
	return New().Map(m)
}

// Value returns a deep copy of v.
func (c *Cloner) Value(v any) any {
	switch x := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	case time.Time:
		return x
	case *time.Time:
		return box(x)
	case *bool:
		return box(x)
	case *int:
		return box(x)
	case *int64:
		return box(x)
	case *float64:
		return box(x)
	case *string:
		return box(x)
	case *regexp.Regexp, error:
		// Opaque or shared state; handed out by reference.
		return x
	case map[string]any:
		return c.Map(x)
	case []any:
		return c.Slice(x)
	case Set:
		return c.Set(x)
	default:
		return c.reflected(reflect.ValueOf(x))
	}
}

// reflected copies the maps, slices and boxed scalars the type switch in
// Value does not name, keeping their exact types.
func (c *Cloner) reflected(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v.Interface()
		}
		n := v.Len()
		key := identity{kind: reflect.Slice, ptr: v.Pointer(), n: n}
		if n > 0 {
			if done, ok := c.seen[key]; ok && reflect.TypeOf(done) == v.Type() {
				return done
			}
		}
		out := reflect.MakeSlice(v.Type(), n, n)
		if n > 0 {
			c.seen[key] = out.Interface()
		}
		for i := 0; i < n; i++ {
			out.Index(i).Set(c.element(v.Index(i)))
		}
		return out.Interface()

	case reflect.Map:
		if v.IsNil() {
			return v.Interface()
		}
		key := identity{kind: reflect.Map, ptr: v.Pointer()}
		if done, ok := c.seen[key]; ok && reflect.TypeOf(done) == v.Type() {
			return done
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		c.seen[key] = out.Interface()
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), c.element(iter.Value()))
		}
		return out.Interface()

	case reflect.Pointer:
		if v.IsNil() || !scalar(v.Elem().Kind()) {
			return v.Interface()
		}
		out := reflect.New(v.Elem().Type())
		out.Elem().Set(v.Elem())
		return out.Interface()

	default:
		return v.Interface()
	}
}

// element copies a slice element or map value into a value assignable to
// the container's element type.
func (c *Cloner) element(v reflect.Value) reflect.Value {
	cp := c.Value(v.Interface())
	if cp == nil {
		return reflect.Zero(v.Type())
	}
	return reflect.ValueOf(cp)
}

func scalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// Map returns a deep copy of m. The copy is recorded before its entries are
// visited so that m may contain itself.
func (c *Cloner) Map(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	key := identity{kind: reflect.Map, ptr: reflect.ValueOf(m).Pointer()}
	if done, ok := c.seen[key].(map[string]any); ok {
		return done
	}

	out := make(map[string]any, len(m))
	c.seen[key] = out
	for k, v := range m {
		out[k] = c.Value(v)
	}
	return out
}

// Slice returns a deep copy of s. The copy is recorded before its elements
// are visited so that s may contain itself.
func (c *Cloner) Slice(s []any) []any {
	if s == nil {
		return nil
	}
	key := identity{kind: reflect.Slice, ptr: reflect.ValueOf(s).Pointer(), n: len(s)}
	if len(s) > 0 {
		if done, ok := c.seen[key].([]any); ok {
			return done
		}
	}

	out := make([]any, len(s))
	if len(s) > 0 {
		c.seen[key] = out
	}
	for i, v := range s {
		out[i] = c.Value(v)
	}
	return out
}

// Set returns a copy of s. Members are map keys compared by identity, so
// pointer members keep pointing at the same values. Copying them would
// change membership.
func (c *Cloner) Set(s Set) Set {
	if s == nil {
		return nil
	}
	key := identity{kind: reflect.Map, ptr: reflect.ValueOf(s).Pointer()}
	if done, ok := c.seen[key].(Set); ok {
		return done
	}

	out := make(Set, len(s))
	c.seen[key] = out
	for member := range s {
		out[member] = struct{}{}
	}
	return out
}

func box[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
