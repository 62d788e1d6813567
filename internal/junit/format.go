package junit

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

var thousand = big.NewInt(1000)

// FormatSeconds renders v with exactly three decimals.
// The exact binary value of v is rounded, ties away from zero, which is the
// behaviour CI tools have always seen from toFixed(3).
func FormatSeconds(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 3, 64)
	}

	neg := v < 0
	r := new(big.Rat).SetFloat64(math.Abs(v))
	r.Mul(r, new(big.Rat).SetInt(thousand))

	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if m.Lsh(m, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}

	whole, frac := new(big.Int).QuoRem(q, thousand, new(big.Int))
	s := whole.String() + "." + leftPad(frac.String(), 3)
	if neg && q.Sign() != 0 {
		s = "-" + s
	}
	return s
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// EscapeAttr replaces double quotes with single quotes.
// No other XML escaping is applied; '<' and '&' pass through unchanged.
func EscapeAttr(s string) string {
	return strings.ReplaceAll(s, `"`, "'")
}

// Classname recovers the containing scope of a spec from its full name.
// The description must be a suffix of fullName; it is removed together
// with the one separator character in front of it. If description is
// empty, is not a suffix, or nothing is left after stripping, fullName is
// returned unchanged.
func Classname(fullName, description string) string {
	scope, ok := stripDescription(fullName, description)
	if !ok {
		return fullName
	}
	return scope
}

func stripDescription(fullName, description string) (string, bool) {
	if description == "" || !strings.HasSuffix(fullName, description) {
		return "", false
	}
	end := len(fullName) - len(description) - 1
	if end <= 0 {
		return "", false
	}
	return fullName[:end], true
}

func cdata(s string) string {
	return "<![CDATA[" + s + "]]>"
}
