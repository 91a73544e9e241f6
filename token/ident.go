package token

func IsIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

func IsIdentPart(c byte) bool {
	return IsIdentStart(c) || asciiDigit(c)
}

// Ident returns the length of the identifier at the start of d, or 0.
func Ident(d []byte) int {
	if len(d) == 0 || !IsIdentStart(d[0]) {
		return 0
	}
	i := 1
	for i < len(d) && IsIdentPart(d[i]) {
		i++
	}
	return i
}

func IsIdent(v string) bool {
	return v != "" && Ident([]byte(v)) == len(v)
}

// IsKeyword reports whether v is one of the literal keywords which may
// not be used as an unquoted key.
func IsKeyword(v string) bool {
	switch v {
	case "true", "false", "null":
		return true
	}
	return false
}

// NeedsQuote reports whether an object key must be quoted on output.
func NeedsQuote(v string) bool {
	if !IsIdent(v) {
		return true
	}
	switch v {
	case "true", "false", "null", "undefined", "Infinity", "NaN":
		return true
	}
	return false
}

// KPathQuoteField reports whether a field must be quoted in a kinded path.
func KPathQuoteField(v string) bool {
	return !IsIdent(v)
}

// Keyword returns the length of the keyword literal at the start of d
// when it is followed by a token boundary, or 0.
func Keyword(d []byte, kw string) int {
	if len(d) < len(kw) || string(d[:len(kw)]) != kw {
		return 0
	}
	if len(kw) < len(d) && IsIdentPart(d[len(kw)]) {
		return 0
	}
	return len(kw)
}
