package osc

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// MaxPacketSize is the largest OSC packet this package reads or writes.
const MaxPacketSize = 65507

////
// Utility and helper functions
////
var (
	bufPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 1024))
		},
	}
	bPool = sync.Pool{
		New: func() interface{} {
			b := make([]byte, MaxPacketSize)
			return &b
		},
	}
	padding = [bit32Size]byte{}
)

// getRegEx compiles and returns a regular expression object for the given
// OSC address pattern. Only '*', '?', '[...]', '[!...]' and '{a,b}' are
// special; everything else matches literally. Wildcards never match '/'.
func getRegEx(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteByte('^')

	inBraces := false
	for i := 0; i < len(pattern); {
		switch c := pattern[i]; {
		case c == '*':
			sb.WriteString("[^/]*")
			i++
		case c == '?':
			sb.WriteString("[^/]")
			i++
		case c == '[':
			end := strings.IndexByte(pattern[i+1:], ']')
			if end <= 0 {
				return nil, fmt.Errorf("getRegEx: bad character class in %q", pattern)
			}
			writeClass(&sb, pattern[i+1:i+1+end])
			i += end + 2
		case c == '{':
			if inBraces {
				return nil, fmt.Errorf("getRegEx: nested '{' in %q", pattern)
			}
			inBraces = true
			sb.WriteString("(?:")
			i++
		case c == '}':
			if !inBraces {
				return nil, fmt.Errorf("getRegEx: unmatched '}' in %q", pattern)
			}
			inBraces = false
			sb.WriteByte(')')
			i++
		case c == ',' && inBraces:
			sb.WriteByte('|')
			i++
		default:
			j := i + 1
			for j < len(pattern) && !isPatternByte(pattern[j], inBraces) {
				j++
			}
			sb.WriteString(regexp.QuoteMeta(pattern[i:j]))
			i = j
		}
	}
	if inBraces {
		return nil, fmt.Errorf("getRegEx: unterminated '{' in %q", pattern)
	}

	sb.WriteByte('$')
	return regexp.Compile(sb.String())
}

func isPatternByte(c byte, inBraces bool) bool {
	switch c {
	case '*', '?', '[', '{', '}':
		return true
	case ',':
		return inBraces
	}
	return false
}

// writeClass writes the OSC character class body as a regexp class. A
// leading '!' negates it, '-' keeps its range meaning.
func writeClass(sb *strings.Builder, class string) {
	sb.WriteByte('[')
	if strings.HasPrefix(class, "!") {
		sb.WriteString("^/")
		class = class[1:]
	}
	for i := 0; i < len(class); i++ {
		if class[i] == '-' {
			sb.WriteByte('-')
			continue
		}
		sb.WriteString(regexp.QuoteMeta(class[i : i+1]))
	}
	sb.WriteByte(']')
}
