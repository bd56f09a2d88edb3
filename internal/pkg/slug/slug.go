// Package slug derives URL-safe identifiers from titles and resolves
// collisions against the set of slugs already in use.
package slug

import (
	"fmt"
	"strconv"
	"time"
)

// MaxLength bounds generated slugs; longer input is truncated.
const MaxLength = 120

// Normalize turns arbitrary text into a URL-safe slug: lowercase, runs of
// anything outside [a-z0-9] collapsed to a single hyphen, no leading or
// trailing hyphen, at most MaxLength characters. Empty input yields an empty
// string; callers must treat that as "no usable slug".
func Normalize(text string) string {
	out := make([]byte, 0, len(text))
	pendingHyphen := false
	for _, r := range text {
		var c byte
		switch {
		case r >= 'a' && r <= 'z':
			c = byte(r)
		case r >= 'A' && r <= 'Z':
			c = byte(r - 'A' + 'a')
		case r >= '0' && r <= '9':
			c = byte(r)
		default:
			if len(out) > 0 {
				pendingHyphen = true
			}
			continue
		}
		if pendingHyphen {
			out = append(out, '-')
			pendingHyphen = false
		}
		out = append(out, c)
		if len(out) >= MaxLength {
			break
		}
	}
	if len(out) > MaxLength {
		out = out[:MaxLength]
	}
	// Truncation can leave a trailing hyphen.
	for len(out) > 0 && out[len(out)-1] == '-' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// Resolve picks a slug that is guaranteed not to be in existing. An empty
// candidate falls back to "post-<epoch-millis>"; a taken candidate gets a
// numeric suffix starting at -2. The caller supplies existing with the record
// being edited already excluded.
func Resolve(candidate string, existing map[string]struct{}) string {
	if candidate == "" {
		candidate = "post-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if _, taken := existing[candidate]; !taken {
		return candidate
	}
	for counter := 2; ; counter++ {
		next := fmt.Sprintf("%s-%d", candidate, counter)
		if _, taken := existing[next]; !taken {
			return next
		}
	}
}
