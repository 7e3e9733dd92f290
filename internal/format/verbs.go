package format

import (
	"fmt"
	"reflect"
	"strings"
)

// Verbs fmt accepts for each kind of operand. Composite values are checked
// element by element, the way fmt applies the verb to them.
const (
	boolVerbs    = "tv"
	intVerbs     = "bcdoOqxXUv"
	floatVerbs   = "beEfFgGxXv"
	stringVerbs  = "sqxXv"
	pointerVerbs = "bdoxXpv"
	// methodVerbs are the verbs for which fmt calls Error or String.
	methodVerbs = "sqxXv"
)

// maxCheckDepth bounds the walk over nested values. Deeper levels are left
// to fmt unchecked.
const maxCheckDepth = 8

// resolveMethods calls the Error or String method fmt would call for verb
// and returns its text in place of arg. A panic in the method is returned
// as an error, except for nil pointer receivers, which fmt prints as <nil>.
func resolveMethods(arg any, verb rune, flags string) (any, error) {
	text, handled, err := callMethods(arg, verb, flags)
	if !handled {
		return arg, nil
	}
	return text, err
}

// callMethods reports handled=true when fmt would format v through one of
// its methods rather than by kind.
func callMethods(v any, verb rune, flags string) (text string, handled bool, err error) {
	if _, ok := v.(fmt.Formatter); ok {
		// The type formats itself; its verbs are its own business.
		return "", false, nil
	}
	if verb == 'v' && strings.Contains(flags, "#") {
		if g, ok := v.(fmt.GoStringer); ok {
			text, err = callText(v, g.GoString)
			return text, true, err
		}
		return "", false, nil
	}
	if !strings.ContainsRune(methodVerbs, verb) {
		return "", false, nil
	}
	switch m := v.(type) {
	case error:
		text, err = callText(v, m.Error)
		return text, true, err
	case fmt.Stringer:
		text, err = callText(v, m.String)
		return text, true, err
	}
	return "", false, nil
}

func callText(v any, method func() string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
				text, err = "<nil>", nil
				return
			}
			text, err = "", fmt.Errorf("panic in %T method: %v", v, r)
		}
	}()
	return method(), nil
}

// checkVerb reports an error when fmt would print a "%!verb(...)" marker
// for arg anywhere in its output.
func checkVerb(arg any, verb rune, flags string) error {
	if verb == 'T' {
		return nil
	}
	if arg == nil {
		if verb != 'v' {
			return fmt.Errorf("cannot format <nil> with verb %%%c", verb)
		}
		return nil
	}
	if _, ok := arg.(fmt.Formatter); ok && verb != 'p' {
		return nil
	}
	v := reflect.ValueOf(arg)
	if verb == 'p' {
		switch v.Kind() {
		case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
			return nil
		}
		return fmt.Errorf("cannot format %T with verb %%p", arg)
	}
	return checkValue(v, verb, flags, 0)
}

func checkValue(v reflect.Value, verb rune, flags string, depth int) error {
	if !v.IsValid() || depth > maxCheckDepth {
		return nil
	}
	if depth > 0 && v.CanInterface() {
		if _, handled, err := callMethods(v.Interface(), verb, flags); handled {
			return err
		}
	}

	allowed := ""
	switch v.Kind() {
	case reflect.Bool:
		allowed = boolVerbs
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		allowed = intVerbs
	case reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		allowed = floatVerbs
	case reflect.String:
		allowed = stringVerbs
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		allowed = pointerVerbs
	case reflect.Pointer:
		// Only a top-level pointer to a composite is followed.
		if depth == 0 && !v.IsNil() {
			switch v.Elem().Kind() {
			case reflect.Array, reflect.Slice, reflect.Struct, reflect.Map:
				return checkValue(v.Elem(), verb, flags, depth+1)
			}
		}
		allowed = pointerVerbs
	case reflect.Interface:
		return checkValue(v.Elem(), verb, flags, depth+1)
	case reflect.Array, reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 && strings.ContainsRune("sqxX", verb) {
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := checkValue(v.Index(i), verb, flags, depth+1); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := checkValue(iter.Key(), verb, flags, depth+1); err != nil {
				return err
			}
			if err := checkValue(iter.Value(), verb, flags, depth+1); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := checkValue(v.Field(i), verb, flags, depth+1); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
	if !strings.ContainsRune(allowed, verb) {
		return fmt.Errorf("cannot format %s with verb %%%c", v.Type(), verb)
	}
	return nil
}
