package render

import (
	"encoding/json"
	"net/url"
)

// View is a borrowed span of character data whose reported length may be
// shorter than the backing slice.
type View interface {
	Bytes() []byte
	Len() int
}

// stringViewRenderer renders URLs and raw character spans as plain text.
type stringViewRenderer struct{}

func (stringViewRenderer) Render(v any) (string, bool) {
	switch s := v.(type) {
	case *url.URL:
		if s == nil {
			return "", true
		}
		return s.String(), true
	case url.URL:
		return s.String(), true
	case json.RawMessage:
		return string(s), true
	case []byte:
		return string(s), true
	case View:
		return viewText(s), true
	}
	return "", false
}

// viewText returns the first Len() bytes of the view, clamped to the data
// actually present.
func viewText(v View) string {
	data := v.Bytes()
	n := v.Len()
	if n < 0 {
		n = 0
	}
	if n > len(data) {
		n = len(data)
	}
	return string(data[:n])
}
