package text

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/maplabel/atlas"
)

// Images embedded in text are represented by consecutive code points of the Private Use Area of the Basic Multilingual Plane, which allows for 6400 images per label.
const (
	puaBegin rune = '\uE000'
	puaEnd   rune = '\uF8FF'
)

// Strict makes breaches of the TaggedString invariants panic instead of falling back to unstyled text.
var Strict = false

// SectionOptions is the evaluated formatting of a run of text or of an embedded image.
type SectionOptions struct {
	Scale         float64
	FontStackHash atlas.FontStackHash
	FontStack     []string
	TextColor     *color.RGBA
	ImageID       string // non-empty for image sections
}

// NewSectionOptions returns the formatting for a run of text.
func NewSectionOptions(scale float64, fontStack []string, textColor *color.RGBA) SectionOptions {
	return SectionOptions{
		Scale:         scale,
		FontStackHash: atlas.HashFontStack(fontStack),
		FontStack:     fontStack,
		TextColor:     textColor,
	}
}

// ImageSectionOptions returns the formatting for an embedded image, which is always unscaled.
func ImageSectionOptions(imageID string) SectionOptions {
	return SectionOptions{
		Scale:   1.0,
		ImageID: imageID,
	}
}

// IsImage returns true for image sections.
func (s SectionOptions) IsImage() bool {
	return s.ImageID != ""
}

var unstyled = SectionOptions{Scale: 1.0}

// TaggedString is a string where every code point is tagged with the formatting section it belongs to. Code points and section indices are kept in lockstep by all operations, including reordering by bidi, trimming, and punctuation substitution, so that the formatting of each character survives.
type TaggedString struct {
	runes    []rune
	indices  []int
	sections []SectionOptions

	vertical      *bool // cached, reset on mutation
	imageCharCode rune
}

// NewTaggedString returns an empty tagged string.
func NewTaggedString() *TaggedString {
	return &TaggedString{}
}

// NewTaggedStringFromText returns a tagged string with a single section.
func NewTaggedStringFromText(s string, opts SectionOptions) *TaggedString {
	runes := []rune(s)
	return &TaggedString{
		runes:    runes,
		indices:  make([]int, len(runes)),
		sections: []SectionOptions{opts},
	}
}

// Len returns the number of code points.
func (s *TaggedString) Len() int {
	return len(s.runes)
}

// Empty returns true if there are no code points.
func (s *TaggedString) Empty() bool {
	return len(s.runes) == 0
}

// SectionCount returns the number of sections.
func (s *TaggedString) SectionCount() int {
	return len(s.sections)
}

// RawText returns the code points. The result must not be modified.
func (s *TaggedString) RawText() []rune {
	return s.runes
}

func (s *TaggedString) String() string {
	return string(s.runes)
}

// Rune returns the code point at position i.
func (s *TaggedString) Rune(i int) rune {
	return s.runes[i]
}

// SectionIndex returns the index of the section of the code point at position i.
func (s *TaggedString) SectionIndex(i int) int {
	return s.indices[i]
}

// Sections returns all sections. The result must not be modified.
func (s *TaggedString) Sections() []SectionOptions {
	return s.sections
}

// Section returns the formatting of the code point at position i.
func (s *TaggedString) Section(i int) SectionOptions {
	index := s.indices[i]
	if index < 0 || len(s.sections) <= index {
		if Strict {
			panic(ErrSectionIndex)
		}
		Logger().Warn("section index out of range, using unstyled text", "index", index, "sections", len(s.sections))
		return unstyled
	}
	return s.sections[index]
}

// AddTextSection appends text with its own formatting.
func (s *TaggedString) AddTextSection(text string, scale float64, fontStack []string, textColor *color.RGBA) {
	index := len(s.sections)
	for _, r := range text {
		s.runes = append(s.runes, r)
		s.indices = append(s.indices, index)
	}
	s.sections = append(s.sections, NewSectionOptions(scale, fontStack, textColor))
	s.vertical = nil
}

// AddImageSection appends an embedded image, represented by a single code point of the Private Use Area. The image is dropped when all code points have been used.
func (s *TaggedString) AddImageSection(imageID string) {
	r, ok := s.nextImageCharCode()
	if !ok {
		Logger().Warn("exceeded maximum number of images in a label", "image", imageID)
		return
	}
	s.runes = append(s.runes, r)
	s.indices = append(s.indices, len(s.sections))
	s.sections = append(s.sections, ImageSectionOptions(imageID))
	s.vertical = nil
}

func (s *TaggedString) nextImageCharCode() (rune, bool) {
	if s.imageCharCode == 0 {
		s.imageCharCode = puaBegin
		return s.imageCharCode, true
	} else if puaEnd < s.imageCharCode+1 {
		return 0, false
	}
	s.imageCharCode++
	return s.imageCharCode, true
}

// Substring returns the code points in [start,end) as a new tagged string sharing the sections.
func (s *TaggedString) Substring(start, end int) *TaggedString {
	return &TaggedString{
		runes:    append([]rune{}, s.runes[start:end]...),
		indices:  append([]int{}, s.indices[start:end]...),
		sections: s.sections,
	}
}

// Trim removes leading and trailing whitespace.
func (s *TaggedString) Trim() {
	start := 0
	for start < len(s.runes) && IsWhitespace(s.runes[start]) {
		start++
	}
	end := len(s.runes)
	for start < end && IsWhitespace(s.runes[end-1]) {
		end--
	}
	s.runes = s.runes[start:end]
	s.indices = s.indices[start:end]
	s.vertical = nil
}

// MaxScale returns the largest scale of the sections used by the code points, or zero if empty.
func (s *TaggedString) MaxScale() float64 {
	maxScale := 0.0
	for i := range s.runes {
		maxScale = max(maxScale, s.Section(i).Scale)
	}
	return maxScale
}

// HasServerSuggestedBreaks returns true if the text contains zero-width spaces, which mark break opportunities inserted by the data producer.
func (s *TaggedString) HasServerSuggestedBreaks() bool {
	for _, r := range s.runes {
		if r == '\u200B' {
			return true
		}
	}
	return false
}

// VerticalizePunctuation replaces horizontal punctuation by its vertical form in place. The length and the section indices are unchanged.
func (s *TaggedString) VerticalizePunctuation() {
	s.runes = VerticalizePunctuation(s.runes)
	s.vertical = nil
}

// AllowsVerticalWritingMode returns true if any code point is drawn upright in vertical text.
func (s *TaggedString) AllowsVerticalWritingMode() bool {
	if s.vertical == nil {
		vertical := AllowsVerticalWritingMode(s.runes)
		s.vertical = &vertical
	}
	return *s.vertical
}

// GoString shows the code points with their section indices.
func (s *TaggedString) GoString() string {
	sb := strings.Builder{}
	for i, r := range s.runes {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(s.indices[i]))
	}
	return sb.String()
}
