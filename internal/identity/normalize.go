package identity

import (
	"strings"
	"unicode"
)

var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// nicknames maps short first names onto the formal name Sleeper usually carries.
var nicknames = map[string]string{
	"mike":  "michael",
	"matt":  "matthew",
	"chris": "christopher",
	"josh":  "joshua",
	"will":  "william",
	"bill":  "william",
	"rob":   "robert",
	"bob":   "robert",
	"jim":   "james",
	"tony":  "anthony",
	"nick":  "nicholas",
	"zach":  "zachary",
	"jon":   "jonathan",
	"pat":   "patrick",
	"cam":   "cameron",
	"tom":   "thomas",
	"dan":   "daniel",
	"joe":   "joseph",
	"drew":  "andrew",
	"andy":  "andrew",
	"ben":   "benjamin",
	"alex":  "alexander",
	"gabe":  "gabriel",
	"ken":   "kenneth",
}

// normalize lower-cases a name, drops punctuation and collapses whitespace.
// Hyphens become spaces so "Amon-Ra" and "Amon Ra" agree.
func normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// tokens returns normalized name tokens with generational suffixes removed.
func tokens(name string) []string {
	fields := strings.Fields(normalize(name))
	for len(fields) > 1 && suffixes[fields[len(fields)-1]] {
		fields = fields[:len(fields)-1]
	}
	return fields
}

// splitName returns the first token and the last token of a free-text name.
func splitName(name string) (first, last string) {
	t := tokens(name)
	switch len(t) {
	case 0:
		return "", ""
	case 1:
		return "", t[0]
	}
	return t[0], t[len(t)-1]
}

func formalFirst(first string) string {
	if formal, ok := nicknames[first]; ok {
		return formal
	}
	return first
}

// initials returns every first initial a first name may legitimately carry.
func initials(first string) []byte {
	if first == "" {
		return nil
	}
	out := []byte{first[0]}
	if formal := formalFirst(first); formal[0] != first[0] {
		out = append(out, formal[0])
	}
	return out
}
