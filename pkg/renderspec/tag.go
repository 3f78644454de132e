package renderspec

// Tag is the closed set of renderable primitive kinds.
type Tag int

const (
	TagMath Tag = iota
	TagRow
	TagIdentifier
	TagNumber
	TagOperator
	TagSup
	TagSub
	TagSubSup
	TagBase
	TagScript
	TagFraction
	TagNumerator
	TagFractionLine
	TagDenominator
	TagSqrt
	TagSurd
	TagRadicand

	tagCount
)

var tagNames = [tagCount]string{
	TagMath:         "mjx-math",
	TagRow:          "mjx-mrow",
	TagIdentifier:   "mjx-mi",
	TagNumber:       "mjx-mn",
	TagOperator:     "mjx-mo",
	TagSup:          "mjx-msup",
	TagSub:          "mjx-msub",
	TagSubSup:       "mjx-msubsup",
	TagBase:         "mjx-base",
	TagScript:       "mjx-script",
	TagFraction:     "mjx-mfrac",
	TagNumerator:    "mjx-num",
	TagFractionLine: "mjx-line",
	TagDenominator:  "mjx-den",
	TagSqrt:         "mjx-msqrt",
	TagSurd:         "mjx-surd",
	TagRadicand:     "mjx-radicand",
}

// String returns the element name, e.g. "mjx-mi". Downstream consumers
// depend on these names staying stable.
func (t Tag) String() string {
	if t < 0 || t >= tagCount {
		return "mjx-unknown"
	}
	return tagNames[t]
}

// Valid reports whether t is one of the defined tags.
func (t Tag) Valid() bool { return t >= 0 && t < tagCount }

// Count is the number of defined tags, for tables indexed by Tag.
const Count = int(tagCount)

// ParseTag maps an element name back to its Tag.
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// IsGlyphTag reports whether t renders a terminal glyph: identifier, number
// or operator. Only these tags are leaf selection targets.
func IsGlyphTag(t Tag) bool {
	return t == TagIdentifier || t == TagNumber || t == TagOperator
}
