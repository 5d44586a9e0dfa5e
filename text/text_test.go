package text

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestScriptClassification(t *testing.T) {
	var tests = []struct {
		r           rune
		ideographic bool
		upright     bool
		rotated     bool
	}{
		{'a', false, false, true},
		{'中', true, true, false},
		{'か', true, true, false},
		{'한', false, true, false},
		{'、', true, true, false}, // ideographic comma
		{'〈', true, false, false}, // left angle bracket
		{'ー', true, false, false}, // prolonged sound mark
		{'（', true, false, false}, // fullwidth left parenthesis
		{'\uE000', false, false, false},
		{'×', false, false, false}, // multiplication sign
		{'ا', false, false, true},  // arabic alef
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			test.T(t, AllowsIdeographicBreaking(tt.r), tt.ideographic, "ideographic breaking")
			test.T(t, HasUprightVerticalOrientation(tt.r), tt.upright, "upright")
			test.T(t, HasRotatedVerticalOrientation(tt.r), tt.rotated, "rotated")
		})
	}

	test.That(t, AllowsIdeographicBreakingString([]rune("中国")))
	test.That(t, !AllowsIdeographicBreakingString([]rune("中a")))
	test.That(t, AllowsLetterSpacing([]rune("abc")))
	test.That(t, !AllowsLetterSpacing([]rune("ال")))
	test.That(t, IsInComplexShapingScript('ا'))
}

func TestWordBreaking(t *testing.T) {
	for _, r := range " \n&()+-/\u00AD\u00B7\u200B\u2010\u2013" {
		test.That(t, AllowsWordBreaking(r), string(r))
	}
	for _, r := range "a.,;\u00A0" {
		test.That(t, !AllowsWordBreaking(r), string(r))
	}
	for _, r := range " \t\n\v\f\r" {
		test.That(t, IsWhitespace(r))
	}
	test.That(t, !IsWhitespace('\u00A0'))
}

func TestVerticalizePunctuation(t *testing.T) {
	var tests = []struct {
		in, out string
	}{
		{"中「国」", "中﹁国﹂"},
		{"中、国。", "中︑国︒"},
		{"a-b", "a-b"},       // next to rotated characters
		{"中-国", "中︲国"}, // between upright characters
		{"!?", "︕︖"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			test.String(t, string(VerticalizePunctuation([]rune(tt.in))), tt.out)
		})
	}
}

func TestBidi(t *testing.T) {
	s := NewTaggedString()
	s.AddTextSection("one two", 1.0, nil, nil)
	s.AddTextSection(" three", 2.0, nil, nil)

	lines := BiDi{}.ProcessStyledText(s, []int{4, 8})
	test.T(t, len(lines), 3)
	test.String(t, lines[0].String(), "one ")
	test.String(t, lines[1].String(), "two ")
	test.String(t, lines[2].String(), "three")
	test.T(t, lines[1].SectionIndex(3), 1)
	test.Float(t, lines[2].MaxScale(), 2.0)

	lines = BiDi{}.ProcessStyledText(s, nil)
	test.T(t, len(lines), 1)
	test.String(t, lines[0].String(), "one two three")

	lines = BiDi{}.ProcessStyledText(NewTaggedString(), nil)
	test.T(t, len(lines), 1)
	test.That(t, lines[0].Empty())

	test.T(t, BiDi{}.ProcessText("ab cd", []int{3, 3}), []string{"ab ", "cd"})
}

func TestBidiRightToLeft(t *testing.T) {
	s := NewTaggedString()
	s.AddTextSection("אב", 1.0, nil, nil) // alef bet
	s.AddTextSection("ג", 2.0, nil, nil)       // gimel

	lines := BiDi{}.ProcessStyledText(s, nil)
	test.T(t, len(lines), 1)
	test.String(t, lines[0].String(), "גבא")
	test.T(t, lines[0].SectionIndex(0), 1)
	test.T(t, lines[0].SectionIndex(2), 0)
}
