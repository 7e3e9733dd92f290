package render

import (
	"strconv"
	"unsafe"
)

// Pointer is an address captured for logging. It is rendered as a decimal
// number and never dereferenced.
type Pointer uintptr

// Ptr captures the address held by p. Use it to log which object a call
// refers to without printing (or touching) the object itself.
func Ptr[T any](p *T) Pointer {
	return Pointer(uintptr(unsafe.Pointer(p)))
}

// pointerRenderer renders Pointer and unsafe.Pointer values.
type pointerRenderer struct{}

func (pointerRenderer) Render(v any) (string, bool) {
	switch p := v.(type) {
	case Pointer:
		return strconv.FormatUint(uint64(p), 10), true
	case unsafe.Pointer:
		return strconv.FormatUint(uint64(uintptr(p)), 10), true
	}
	return "", false
}
