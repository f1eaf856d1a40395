package jsoncanon

import "strings"

// NormalizeNumber puts a JSON number's decimal text (as decoded via
// json.Number, so arbitrary precision is preserved) into a canonical form:
// a single leading minus sign if negative, no leading '+', no superfluous
// leading zeros in the integer part, and a lowercase 'e' exponent with no
// leading zeros and no explicit '+' sign. The fractional part is left
// exactly as spelled.
//
// This is the resolution of the "numeric canonicalization rule" open
// question: it normalizes the number's textual representation rather than
// its mathematical value, so "1.0" and "1" are NOT treated as equal (two
// documents differing only in how they spelled a number will still
// produce different value hashes) — which is why the fractional part is
// never trimmed. See DESIGN.md.
func NormalizeNumber(s string) string {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	mantissa, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exp = s[:i], s[i+1:]
	}

	intPart, fracPart := mantissa, ""
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		intPart, fracPart = mantissa[:i], mantissa[i+1:]
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}

	var b strings.Builder
	if neg && !(intPart == "0" && fracPart == "") {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	if exp != "" {
		expNeg := false
		if strings.HasPrefix(exp, "-") {
			expNeg = true
			exp = exp[1:]
		} else if strings.HasPrefix(exp, "+") {
			exp = exp[1:]
		}
		exp = strings.TrimLeft(exp, "0")
		if exp != "" && exp != "0" {
			b.WriteByte('e')
			if expNeg {
				b.WriteByte('-')
			}
			b.WriteString(exp)
		}
	}

	return b.String()
}
