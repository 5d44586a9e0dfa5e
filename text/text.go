package text

import (
	"unicode"

	"github.com/go-text/typesetting/language"
)

// IsWhitespace returns true for space, tab, line feed, vertical tab, form feed, and carriage return.
func IsWhitespace(r rune) bool {
	return r == ' ' || 0x09 <= r && r <= 0x0D
}

// AllowsWordBreaking returns true if a line may be broken after r.
func AllowsWordBreaking(r rune) bool {
	switch r {
	case 0x0A, // line feed
		0x20,   // space
		0x26,   // ampersand
		0x28,   // left parenthesis
		0x29,   // right parenthesis
		0x2B,   // plus sign
		0x2D,   // hyphen-minus
		0x2F,   // solidus
		0xAD,   // soft hyphen
		0xB7,   // middle dot
		0x200B, // zero width space
		0x2010, // hyphen
		0x2013: // en dash
		return true
	}
	return false
}

// IsSpacelessScript returns true for scripts that do not separate words by spaces.
func IsSpacelessScript(script language.Script) bool {
	return script == language.Han || script == language.Hangul || script == language.Katakana || script == language.Hiragana || script == language.Bopomofo || script == language.Yi || script == language.Khmer || script == language.Lao || script == language.Thai || script == language.Tibetan || script == language.Myanmar
}

// IsVerticalScript returns true for scripts that are traditionally written top-to-bottom.
func IsVerticalScript(script language.Script) bool {
	return script == language.Bopomofo || script == language.Hiragana || script == language.Katakana || script == language.Han || script == language.Hangul || script == language.Yi
}

var cjkBreakable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{0x2E80, 0x2EFF, 1}, // CJK Radicals Supplement
		{0x2F00, 0x2FDF, 1}, // Kangxi Radicals
		{0x2FF0, 0x2FFF, 1}, // Ideographic Description Characters
		{0x3000, 0x303F, 1}, // CJK Symbols and Punctuation
		{0x3040, 0x309F, 1}, // Hiragana
		{0x30A0, 0x30FF, 1}, // Katakana
		{0x3100, 0x312F, 1}, // Bopomofo
		{0x31A0, 0x31BF, 1}, // Bopomofo Extended
		{0x31C0, 0x31EF, 1}, // CJK Strokes
		{0x31F0, 0x31FF, 1}, // Katakana Phonetic Extensions
		{0x3200, 0x32FF, 1}, // Enclosed CJK Letters and Months
		{0x3300, 0x33FF, 1}, // CJK Compatibility
		{0x3400, 0x4DBF, 1}, // CJK Unified Ideographs Extension A
		{0x4E00, 0x9FFF, 1}, // CJK Unified Ideographs
		{0xA000, 0xA48F, 1}, // Yi Syllables
		{0xA490, 0xA4CF, 1}, // Yi Radicals
		{0xF900, 0xFAFF, 1}, // CJK Compatibility Ideographs
		{0xFE10, 0xFE1F, 1}, // Vertical Forms
		{0xFE30, 0xFE4F, 1}, // CJK Compatibility Forms
		{0xFF00, 0xFFEF, 1}, // Halfwidth and Fullwidth Forms
	},
}

// AllowsIdeographicBreaking returns true if a line may be broken before or after r, which is the case for CJK ideographs, syllabaries, and their punctuation.
func AllowsIdeographicBreaking(r rune) bool {
	if r < 0x2E80 {
		return false
	}
	return unicode.Is(cjkBreakable, r)
}

// AllowsIdeographicBreakingString returns true if all code points allow ideographic breaking.
func AllowsIdeographicBreakingString(rs []rune) bool {
	for _, r := range rs {
		if !AllowsIdeographicBreaking(r) {
			return false
		}
	}
	return true
}

func inRange(r, lo, hi rune) bool {
	return lo <= r && r <= hi
}

// HasUprightVerticalOrientation returns true if r stays upright in vertical text, see Unicode's VerticalOrientation.txt.
func HasUprightVerticalOrientation(r rune) bool {
	if r == 0x02EA || r == 0x02EB { // yin and yang departing tone marks
		return true
	} else if r < 0x1100 {
		return false
	}

	switch {
	case inRange(r, 0xFE30, 0xFE4F): // CJK Compatibility Forms
		return !inRange(r, 0xFE49, 0xFE4F)
	case inRange(r, 0x3000, 0x303F): // CJK Symbols and Punctuation
		return !inRange(r, 0x3008, 0x3011) && !inRange(r, 0x3014, 0x301F) && r != 0x3030
	case inRange(r, 0x30A0, 0x30FF): // Katakana
		return r != 0x30FC
	case inRange(r, 0xFF00, 0xFFEF): // Halfwidth and Fullwidth Forms
		return r != 0xFF08 && r != 0xFF09 && r != 0xFF0D && !inRange(r, 0xFF1A, 0xFF1E) && r != 0xFF3B && r != 0xFF3D && r != 0xFF3F && !inRange(r, 0xFF5B, 0xFFDF) && r != 0xFFE3 && !inRange(r, 0xFFE8, 0xFFEF)
	case inRange(r, 0xFE50, 0xFE6F): // Small Form Variants
		return !inRange(r, 0xFE58, 0xFE5E) && !inRange(r, 0xFE63, 0xFE66)
	case inRange(r, 0x1400, 0x167F), inRange(r, 0x18B0, 0x18FF): // Unified Canadian Aboriginal Syllabics
		return true
	case inRange(r, 0xFE10, 0xFE1F): // Vertical Forms
		return true
	case inRange(r, 0x2E80, 0x2FFF), inRange(r, 0x3190, 0x319F), inRange(r, 0x31C0, 0x31FF), inRange(r, 0x3200, 0x33FF): // radicals, Kanbun, strokes, enclosed and compatibility
		return true
	}
	return IsVerticalScript(language.LookupScript(r))
}

// HasNeutralVerticalOrientation returns true if r may be drawn either upright or rotated in vertical text.
func HasNeutralVerticalOrientation(r rune) bool {
	switch {
	case inRange(r, 0x0080, 0x00FF): // Latin-1 Supplement
		switch r {
		case 0x00A7, 0x00A9, 0x00AE, 0x00B1, 0x00BC, 0x00BD, 0x00BE, 0x00D7, 0x00F7:
			return true
		}
		return false
	case inRange(r, 0x2000, 0x206F): // General Punctuation
		switch r {
		case 0x2016, 0x2020, 0x2021, 0x2030, 0x2031, 0x203B, 0x203C, 0x2042, 0x2047, 0x2048, 0x2049, 0x2051:
			return true
		}
		return false
	case inRange(r, 0x2100, 0x218F): // Letterlike Symbols and Number Forms
		return true
	case inRange(r, 0x2300, 0x23FF): // Miscellaneous Technical
		return inRange(r, 0x2300, 0x2307) || inRange(r, 0x230C, 0x231F) || inRange(r, 0x2324, 0x2328) || r == 0x232B || inRange(r, 0x237D, 0x239A) || inRange(r, 0x23BE, 0x23CD) || r == 0x23CF || inRange(r, 0x23D1, 0x23DB) || inRange(r, 0x23E2, 0x23FF)
	case inRange(r, 0x2400, 0x243F): // Control Pictures
		return r != 0x2423
	case inRange(r, 0x2440, 0x24FF), inRange(r, 0x25A0, 0x25FF): // OCR, Enclosed Alphanumerics, Geometric Shapes
		return true
	case inRange(r, 0x2600, 0x26FF): // Miscellaneous Symbols
		return !inRange(r, 0x261A, 0x261F)
	case inRange(r, 0x2B00, 0x2BFF): // Miscellaneous Symbols and Arrows
		return inRange(r, 0x2B12, 0x2B2F) || inRange(r, 0x2B50, 0x2B59) || inRange(r, 0x2BB8, 0x2BEB)
	case inRange(r, 0x3000, 0x303F), inRange(r, 0x30A0, 0x30FF): // CJK Symbols and Punctuation, Katakana
		return true
	case inRange(r, 0xE000, 0xF8FF): // Private Use Area, used for images
		return true
	case inRange(r, 0xFE30, 0xFE6F), inRange(r, 0xFF00, 0xFFEF): // CJK Compatibility Forms, Small Form Variants, Halfwidth and Fullwidth Forms
		return true
	}
	return r == 0x221E || r == 0x2234 || r == 0x2235
}

// HasRotatedVerticalOrientation returns true if r is rotated sideways in vertical text.
func HasRotatedVerticalOrientation(r rune) bool {
	return !HasUprightVerticalOrientation(r) && !HasNeutralVerticalOrientation(r)
}

// AllowsVerticalWritingMode returns true if any code point stays upright in vertical text.
func AllowsVerticalWritingMode(rs []rune) bool {
	for _, r := range rs {
		if HasUprightVerticalOrientation(r) {
			return true
		}
	}
	return false
}

// IsInComplexShapingScript returns true for code points of scripts whose glyphs join or change shape depending on their neighbours.
func IsInComplexShapingScript(r rune) bool {
	return language.LookupScript(r) == language.Arabic
}

// AllowsLetterSpacing returns true if letter spacing may be applied to all code points without breaking joined scripts.
func AllowsLetterSpacing(rs []rune) bool {
	for _, r := range rs {
		if IsInComplexShapingScript(r) {
			return false
		}
	}
	return true
}

var verticalPunctuation = map[rune]rune{
	'!':      '\uFE15',
	'#':      '\uFF03',
	'$':      '\uFF04',
	'%':      '\uFF05',
	'&':      '\uFF06',
	'(':      '\uFE35',
	')':      '\uFE36',
	'*':      '\uFF0A',
	'+':      '\uFF0B',
	',':      '\uFE10',
	'-':      '\uFE32',
	'.':      '\u30FB',
	'/':      '\uFF0F',
	':':      '\uFE13',
	';':      '\uFE14',
	'<':      '\uFE3F',
	'=':      '\uFF1D',
	'>':      '\uFE40',
	'?':      '\uFE16',
	'@':      '\uFF20',
	'[':      '\uFE47',
	'\\':     '\uFF3C',
	']':      '\uFE48',
	'^':      '\uFF3E',
	'_':      '\uFE33',
	'`':      '\uFF40',
	'{':      '\uFE37',
	'|':      '\u2015',
	'}':      '\uFE38',
	'~':      '\uFF5E',
	'\u00A2': '\uFFE0',
	'\u00A3': '\uFFE1',
	'\u00A5': '\uFFE5',
	'\u00A6': '\uFFE4',
	'\u00AC': '\uFFE2',
	'\u00AF': '\uFFE3',
	'\u2013': '\uFE32',
	'\u2014': '\uFE31',
	'\u2018': '\uFE43',
	'\u2019': '\uFE44',
	'\u201C': '\uFE41',
	'\u201D': '\uFE42',
	'\u2026': '\uFE19',
	'\u2027': '\u30FB',
	'\u20A9': '\uFFE6',
	'\u3001': '\uFE11',
	'\u3002': '\uFE12',
	'\u3008': '\uFE3F',
	'\u3009': '\uFE40',
	'\u300A': '\uFE3D',
	'\u300B': '\uFE3E',
	'\u300C': '\uFE41',
	'\u300D': '\uFE42',
	'\u300E': '\uFE43',
	'\u300F': '\uFE44',
	'\u3010': '\uFE3B',
	'\u3011': '\uFE3C',
	'\u3014': '\uFE39',
	'\u3015': '\uFE3A',
	'\u3016': '\uFE17',
	'\u3017': '\uFE18',
	'\uFF01': '\uFE15',
	'\uFF08': '\uFE35',
	'\uFF09': '\uFE36',
	'\uFF0C': '\uFE10',
	'\uFF0D': '\uFE32',
	'\uFF0E': '\u30FB',
	'\uFF1A': '\uFE13',
	'\uFF1B': '\uFE14',
	'\uFF1C': '\uFE3F',
	'\uFF1E': '\uFE40',
	'\uFF1F': '\uFE16',
	'\uFF3B': '\uFE47',
	'\uFF3D': '\uFE48',
	'\uFF3F': '\uFE33',
	'\uFF5B': '\uFE37',
	'\uFF5C': '\u2015',
	'\uFF5D': '\uFE38',
	'\uFF5F': '\uFE35',
	'\uFF60': '\uFE36',
	'\uFF61': '\uFE12',
	'\uFF62': '\uFE41',
	'\uFF63': '\uFE42',
}

// VerticalizePunctuation returns rs with horizontal punctuation replaced by its vertical presentation form. Punctuation next to code points that are rotated in vertical text is kept. The result has the same length as rs.
func VerticalizePunctuation(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		canReplace := true
		if i+1 < len(rs) {
			_, ok := verticalPunctuation[rs[i+1]]
			canReplace = ok || !HasRotatedVerticalOrientation(rs[i+1])
		}
		if canReplace && 0 < i {
			_, ok := verticalPunctuation[rs[i-1]]
			canReplace = ok || !HasRotatedVerticalOrientation(rs[i-1])
		}

		out[i] = r
		if vertical, ok := verticalPunctuation[r]; ok && canReplace {
			out[i] = vertical
		}
	}
	return out
}
