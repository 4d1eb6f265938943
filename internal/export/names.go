package export

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxNameLength bounds a generated file name, extension excluded.
	DefaultMaxNameLength = 100
	fallbackName         = "section"
	fileExt              = ".txt"
)

// Reserved device names on Windows, compared case-insensitively.
var reservedNames = map[string]bool{
	"con": true, "prn": true, "aux": true, "nul": true,
	"com1": true, "com2": true, "com3": true, "com4": true, "com5": true,
	"com6": true, "com7": true, "com8": true, "com9": true,
	"lpt1": true, "lpt2": true, "lpt3": true, "lpt4": true, "lpt5": true,
	"lpt6": true, "lpt7": true, "lpt8": true, "lpt9": true,
}

// SanitizeName turns a section title into a file-system-safe base name of at
// most maxLen bytes.
func SanitizeName(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}

	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsControl(r), r == utf8.RuneError:
			return '_'
		case strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		}
		return r
	}, title)
	name = strings.Trim(name, " .")

	if name == "" {
		name = fallbackName
	}
	if reservedNames[strings.ToLower(name)] {
		name = "_" + name
	}
	return truncate(name, maxLen)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	out := strings.TrimRight(s[:cut], " .")
	if out == "" {
		return fallbackName[:min(len(fallbackName), n)]
	}
	return out
}

// namer hands out unique file names within one export, in request order.
type namer struct {
	maxLen int
	used   map[string]bool
}

func newNamer(maxLen int) *namer {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}
	return &namer{maxLen: maxLen, used: make(map[string]bool)}
}

// next returns the file name for title. Names are compared
// case-insensitively so that exports stay distinct on case-folding file
// systems.
func (n *namer) next(title string) string {
	base := SanitizeName(title, n.maxLen)
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		suffix := "-" + strconv.Itoa(i)
		name = truncate(base, n.maxLen-len(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name + fileExt
}
