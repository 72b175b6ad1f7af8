package slogx

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Redacted replaces every credential value that reaches a log line.
const Redacted = "[REDACTED]"

var sensitiveKeys = map[string]struct{}{
	"password":        {},
	"newpassword":     {},
	"confirmpassword": {},
	"currentpassword": {},
	"token":           {},
	"code":            {},
	"authorization":   {},
	"secret":          {},
}

// IsSensitive reports whether a field with this name carries a credential.
// Matching ignores case, underscores and dashes.
func IsSensitive(key string) bool {
	k := strings.ToLower(key)
	k = strings.NewReplacer("_", "", "-", "").Replace(k)
	_, ok := sensitiveKeys[k]
	return ok
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if IsSensitive(a.Key) {
		return slog.String(a.Key, Redacted)
	}
	return a
}

// RedactJSON returns a copy of a JSON document with sensitive fields
// replaced at any depth. Input that is not JSON comes back as a short
// placeholder so raw bodies never leak into logs.
func RedactJSON(data []byte) json.RawMessage {
	if len(data) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return json.RawMessage(`"<non-json body>"`)
	}

	out, err := json.Marshal(redactValue(v))
	if err != nil {
		return json.RawMessage(`"<unencodable body>"`)
	}
	return out
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if IsSensitive(k) {
				t[k] = Redacted
				continue
			}
			t[k] = redactValue(val)
		}
		return t
	case []any:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	default:
		return v
	}
}
