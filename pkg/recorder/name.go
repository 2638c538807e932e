package recorder

import (
	"net/http"
	"reflect"
	"runtime"
	"strings"
)

const fallbackName = "requests"

// handlerName derives an artifact name from the wrapped handler,
// resolved once at wrap time.
func handlerName(h http.Handler) string {
	if h == nil {
		return fallbackName
	}

	value := reflect.ValueOf(h)

	var raw string
	if value.Kind() == reflect.Func {
		fn := runtime.FuncForPC(value.Pointer())
		if fn != nil {
			raw = fn.Name()
		}
	} else {
		raw = reflect.Indirect(value).Type().Name()
	}

	name := sanitizeName(raw)
	if name == "" {
		return fallbackName
	}
	return name
}

// sanitizeName reduces a runtime function name like
// "github.com/acme/shop/handlers.GetUser.func1-fm" to "getuser".
func sanitizeName(raw string) string {
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}

	raw = strings.TrimSuffix(raw, "-fm")

	parts := strings.Split(raw, ".")
	// walk backwards past closure suffixes like func1
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if part == "" || strings.HasPrefix(part, "func") && isDigits(strings.TrimPrefix(part, "func")) {
			continue
		}
		raw = part
		break
	}

	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	res := strings.Trim(b.String(), "_")
	if isDigits(res) {
		return ""
	}
	return res
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
