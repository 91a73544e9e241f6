package token

import "fmt"

type TokenType int

const (
	TComment TokenType = iota
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TComma
	TColon
	TKey
	TString
	TNumber
	TBigInt
	TDecimal
	TUUID
	TInstant
	TDuration
	TNull
	TTrue
	TFalse
)

var tokenTypeNames = map[TokenType]string{
	TComment:  "TComment",
	TLCurl:    "TLCurl",
	TRCurl:    "TRCurl",
	TLSquare:  "TLSquare",
	TRSquare:  "TRSquare",
	TComma:    "TComma",
	TColon:    "TColon",
	TKey:      "TKey",
	TString:   "TString",
	TNumber:   "TNumber",
	TBigInt:   "TBigInt",
	TDecimal:  "TDecimal",
	TUUID:     "TUUID",
	TInstant:  "TInstant",
	TDuration: "TDuration",
	TNull:     "TNull",
	TTrue:     "TTrue",
	TFalse:    "TFalse",
}

func (t TokenType) String() string {
	return tokenTypeNames[t]
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// Tokenize appends the tokens of src to dst. It does not check the
// grammar beyond single tokens, so it yields tokens for documents which
// do not parse. On a scan error, the tokens before the error are
// returned with the error.
func Tokenize(dst []Token, src []byte) ([]Token, error) {
	doc := NewPosDoc(src)
	i := 0
	emit := func(tt TokenType, n int) {
		dst = append(dst, Token{Type: tt, Pos: doc.Pos(i), Bytes: src[i : i+n]})
		i += n
	}
	for i < len(src) {
		i += Space(src[i:])
		if i >= len(src) {
			break
		}
		n, err := Comment(src[i:])
		if err != nil {
			return dst, shiftErr(err, i)
		}
		if n > 0 {
			emit(TComment, n)
			continue
		}
		c := src[i]
		switch c {
		case '{':
			emit(TLCurl, 1)
			continue
		case '}':
			emit(TRCurl, 1)
			continue
		case '[':
			emit(TLSquare, 1)
			continue
		case ']':
			emit(TRSquare, 1)
			continue
		case ',':
			emit(TComma, 1)
			continue
		case ':':
			emit(TColon, 1)
			continue
		}
		tt, n, err := scanOne(src[i:])
		if err != nil {
			return dst, shiftErr(err, i)
		}
		if tt == TString && nextIsColon(src[i+n:]) {
			tt = TKey
		}
		emit(tt, n)
	}
	return dst, nil
}

func nextIsColon(d []byte) bool {
	n, _ := SkipSpace(d, true)
	return n < len(d) && d[n] == ':'
}

// scanOne scans a single scalar token, in the same order the parser
// disambiguates.
func scanOne(d []byte) (TokenType, int, error) {
	c := d[0]
	switch {
	case IsQuote(c):
		_, n, err := ScanString(d, 0)
		return TString, n, err
	case Ident(d) > 0 && nextIsColon(d[Ident(d):]):
		return TKey, Ident(d), nil
	case UUIDPrefix(d):
		_, n, err := ScanUUID(d)
		return TUUID, n, err
	case DateShape(d):
		_, _, n, err := ScanInstant(d)
		return TInstant, n, err
	case c == 'P' || c == '-' && len(d) > 1 && d[1] == 'P':
		_, n, err := ScanDuration(d)
		return TDuration, n, err
	case c == '-' || asciiDigit(c):
		lit, n, err := ScanNumber(d)
		if err != nil {
			return TNumber, n, err
		}
		switch lit.Kind {
		case BigIntNumber:
			return TBigInt, n, nil
		case DecimalNumber:
			return TDecimal, n, nil
		}
		return TNumber, n, nil
	}
	if n := Keyword(d, "null"); n > 0 {
		return TNull, n, nil
	}
	if n := Keyword(d, "true"); n > 0 {
		return TTrue, n, nil
	}
	if n := Keyword(d, "false"); n > 0 {
		return TFalse, n, nil
	}
	if n := Ident(d); n > 0 {
		// unquoted key
		return TString, n, nil
	}
	return TString, 0, scanErrf(0, ErrUnexpectedToken, "unexpected %q", c)
}
