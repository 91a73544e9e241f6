package token

import "bytes"

func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Space returns the length of the whitespace run at the start of d.
func Space(d []byte) int {
	i := 0
	for i < len(d) && IsSpace(d[i]) {
		i++
	}
	return i
}

// Comment returns the length of the // or /* */ comment at the start of
// d, or 0. A line comment does not include its newline.
func Comment(d []byte) (int, error) {
	if len(d) < 2 || d[0] != '/' {
		return 0, nil
	}
	switch d[1] {
	case '/':
		if n := bytes.IndexByte(d[2:], '\n'); n >= 0 {
			return n + 2, nil
		}
		return len(d), nil
	case '*':
		if n := bytes.Index(d[2:], []byte("*/")); n >= 0 {
			return n + 4, nil
		}
		return len(d), scanErrf(len(d), ErrUnterminated, "block comment")
	}
	return 0, nil
}

// SkipSpace skips alternating runs of whitespace and, when comments is
// set, comments, until neither advances.
func SkipSpace(d []byte, comments bool) (int, error) {
	i := 0
	for {
		n := Space(d[i:])
		if comments {
			c, err := Comment(d[i+n:])
			if err != nil {
				return i + n, shiftErr(err, i+n)
			}
			n += c
		}
		if n == 0 {
			return i, nil
		}
		i += n
	}
}
