// Package protocol turns lines of the wire protocol (§4.2, §6.2) into
// typed Command values, or rejects them outright.
package protocol

// Anchor is the horizontal text alignment within a cell.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorCenter
	AnchorRight
)

func (a Anchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	case AnchorRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAnchor maps a wire token to an Anchor. Unknown tokens map to
// AnchorLeft per §4.2.
func ParseAnchor(tok string) Anchor {
	switch normalizeToken(tok) {
	case "c", "center", "centre", "mid", "middle":
		return AnchorCenter
	case "r", "right":
		return AnchorRight
	default:
		return AnchorLeft
	}
}

// looksLikeAnchor reports whether tok parses as one of the known anchor
// spellings, used by the SET disambiguation rule in §4.2.
func looksLikeAnchor(tok string) bool {
	switch normalizeToken(tok) {
	case "l", "left", "c", "center", "centre", "mid", "middle", "r", "right":
		return true
	default:
		return false
	}
}

// Kind identifies the eight coalescing classes a Command belongs to
// (§4.4). It doubles as the discriminant for the Command union below.
type Kind int

const (
	KindSet Kind = iota
	KindBG
	KindAlign
	KindBar
	KindRingStyle
	KindRingValue
	KindRingSet
	KindArc
)

// Command is a tagged value produced by Parse. Only the fields relevant
// to Kind are meaningful; the rest are zero.
type Command struct {
	Kind Kind
	Row  int
	Col  int

	// KindSet (Fg, Bg, Align, Text) and KindBG (Bg only)
	Text     string
	Fg, Bg   string
	Align    Anchor
	HasAlign bool // whether Align was present on the wire (SET only)

	// KindBar
	BarValue int

	// KindRingStyle / KindRingSet
	FgOuter, FgInner string
	RingBg           string
	SizePx           int
	WidthOuter       int
	WidthInner       int

	// KindRingValue / KindRingSet
	Outer, Inner int
	CenterText   string
	HasCenter    bool

	// KindArc
	Arc1, Arc2 int
}

// Key identifies the coalescing slot a command occupies: (kind, row,
// col). Two commands of different kinds never collide even if they
// land on the same cell — e.g. a BAR and a SET for (r,c) coalesce
// independently.
type Key struct {
	Kind Kind
	Row  int
	Col  int
}

// Key returns the coalescing key for c.
func (c Command) Key() Key {
	return Key{Kind: c.Kind, Row: c.Row, Col: c.Col}
}
