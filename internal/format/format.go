// Package format implements the brace templates used for log messages.
//
// A template is literal text with replacement fields:
//
//	{}        the next argument
//	{2}       argument 2 (zero-based)
//	{:x}      the next argument with fmt verb %x
//	{1:08.3f} argument 1 with fmt verb %08.3f
//	{{ }}     literal braces
//
// Automatic and explicit indexes cannot be mixed in one template. Arguments
// that are not referenced are ignored. Each argument is offered to the
// render registry before falling back to fmt.
package format

import (
	"fmt"
	"strconv"
	"strings"

	prierrors "github.com/gxo-labs/prilog/pkg/prilog/v1/errors"
	"github.com/gxo-labs/prilog/pkg/prilog/v1/render"
)

type indexMode int

const (
	indexUnset indexMode = iota
	indexAuto
	indexManual
)

// Sprint formats template with args and returns the result.
func Sprint(reg *render.Registry, template string, args ...any) (string, error) {
	out, err := Append(nil, reg, template, args...)
	return string(out), err
}

// Append formats template with args and appends the result to dst.
// On error the returned slice holds whatever was written before the failure;
// callers that need an all-or-nothing result should truncate it.
func Append(dst []byte, reg *render.Registry, template string, args ...any) ([]byte, error) {
	var (
		mode indexMode
		next int
	)
	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				dst = append(dst, '{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return dst, prierrors.NewFormatError(template, i, "unterminated '{'")
			}
			field := template[i+1 : i+1+end]
			indexPart, spec, _ := strings.Cut(field, ":")

			var idx int
			if indexPart == "" {
				if mode == indexManual {
					return dst, prierrors.NewFormatError(template, i, "cannot switch from manual to automatic argument indexing")
				}
				mode = indexAuto
				idx = next
				next++
			} else {
				n, err := strconv.Atoi(indexPart)
				if err != nil || n < 0 {
					return dst, prierrors.NewFormatError(template, i, fmt.Sprintf("invalid argument index %q", indexPart))
				}
				if mode == indexAuto {
					return dst, prierrors.NewFormatError(template, i, "cannot switch from automatic to manual argument indexing")
				}
				mode = indexManual
				idx = n
			}
			if idx >= len(args) {
				return dst, prierrors.NewFormatError(template, i,
					fmt.Sprintf("argument index %d out of range (%d arguments)", idx, len(args)))
			}

			var err error
			dst, err = appendArg(dst, reg, args[idx], spec)
			if err != nil {
				return dst, prierrors.NewFormatError(template, i, err.Error())
			}
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				dst = append(dst, '}')
				i += 2
				continue
			}
			return dst, prierrors.NewFormatError(template, i, "unmatched '}'")
		default:
			j := strings.IndexAny(template[i:], "{}")
			if j < 0 {
				dst = append(dst, template[i:]...)
				i = len(template)
				continue
			}
			dst = append(dst, template[i:i+j]...)
			i += j
		}
	}
	return dst, nil
}

// appendArg writes one argument. Rendered text is used for the v and s
// verbs; other verbs see the raw value so that, for example, {:x} on a
// render.Pointer prints the address in hex.
func appendArg(dst []byte, reg *render.Registry, arg any, spec string) ([]byte, error) {
	flags, verb, err := parseSpec(spec)
	if err != nil {
		return dst, err
	}
	if verb == 'v' || verb == 's' {
		if text, ok := reg.Render(arg); ok {
			if flags == "" {
				return append(dst, text...), nil
			}
			return fmt.Appendf(dst, "%"+flags+"s", text), nil
		}
	}

	if s, ok := arg.(string); ok && (verb == 'v' || verb == 's') {
		if flags == "" {
			return append(dst, s...), nil
		}
		return fmt.Appendf(dst, "%"+flags+string(verb), s), nil
	}

	// Failures are decided before fmt runs: fmt reports them only as
	// "%!verb(...)" text, which a caller's own argument may also contain.
	arg, err = resolveMethods(arg, verb, flags)
	if err != nil {
		return dst, err
	}
	if err := checkVerb(arg, verb, flags); err != nil {
		return dst, err
	}
	if spec == "" {
		return fmt.Append(dst, arg), nil
	}
	return fmt.Appendf(dst, "%"+flags+string(verb), arg), nil
}

// parseSpec splits a field spec such as "08.3f" into its flag/width/precision
// part and verb. A spec without a trailing letter uses the v verb.
func parseSpec(spec string) (string, rune, error) {
	if spec == "" {
		return "", 'v', nil
	}
	flags, verb := spec, 'v'
	if last := spec[len(spec)-1]; isVerb(last) {
		flags, verb = spec[:len(spec)-1], rune(last)
	}
	if !validFlags(flags) {
		return "", 0, fmt.Errorf("invalid format spec %q", spec)
	}
	return flags, verb, nil
}

func isVerb(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// validFlags accepts [+-# 0]*[0-9]*(\.[0-9]*)?.
func validFlags(s string) bool {
	i := 0
	for i < len(s) && strings.IndexByte("+-# 0", s[i]) >= 0 {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	return i == len(s)
}
