package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// ErrDrop is returned for any malformed line: unknown head, too few
// tokens, or a non-integer where an integer was required. Callers treat
// it as "silently discard the datagram" (§4.2, §7).
var ErrDrop = errors.New("protocol: drop")

// Parse converts one line of the wire protocol into a Command. line may
// still carry surrounding whitespace and a trailing ";" — Parse trims
// both before tokenizing, matching what the Receiver is expected to
// hand it, but tolerates being called directly with raw input too.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ";")
	line = strings.TrimSpace(line)

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrDrop
	}

	switch strings.ToUpper(parts[0]) {
	case "BG":
		return parseBG(parts)
	case "ALIGN":
		return parseAlign(parts)
	case "BAR":
		return parseBar(parts)
	case "RING":
		return parseRingStyle(parts)
	case "RINGVAL":
		return parseRingValue(parts)
	case "RINGSET":
		return parseRingSet(parts)
	case "ARC":
		return parseArc(parts)
	default:
		return parseSet(parts)
	}
}

// parseSet handles the implicit SET form: "c r fg bg [align] text...".
// Token order is col, row — the opposite of BG/ALIGN/BAR.
func parseSet(parts []string) (Command, error) {
	if len(parts) < 4 {
		return Command{}, ErrDrop
	}
	col, err := atoi(parts[0])
	if err != nil {
		return Command{}, ErrDrop
	}
	row, err := atoi(parts[1])
	if err != nil {
		return Command{}, ErrDrop
	}
	fg, bg := parts[2], parts[3]

	rest := parts[4:]
	cmd := Command{Kind: KindSet, Row: row, Col: col, Fg: fg, Bg: bg}

	if len(rest) > 0 && looksLikeAnchor(rest[0]) {
		cmd.Align = ParseAnchor(rest[0])
		cmd.HasAlign = true
		rest = rest[1:]
	}
	cmd.Text = strings.Join(rest, " ")
	return cmd, nil
}

// parseBG handles "BG row col bg". Token order is row, col.
func parseBG(parts []string) (Command, error) {
	if len(parts) < 4 {
		return Command{}, ErrDrop
	}
	row, err := atoi(parts[1])
	if err != nil {
		return Command{}, ErrDrop
	}
	col, err := atoi(parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	return Command{Kind: KindBG, Row: row, Col: col, Bg: parts[3]}, nil
}

// parseAlign handles "ALIGN row col align". Token order is row, col.
func parseAlign(parts []string) (Command, error) {
	if len(parts) < 4 {
		return Command{}, ErrDrop
	}
	row, err := atoi(parts[1])
	if err != nil {
		return Command{}, ErrDrop
	}
	col, err := atoi(parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	return Command{Kind: KindAlign, Row: row, Col: col, Align: ParseAnchor(parts[3]), HasAlign: true}, nil
}

// parseBar handles "BAR row col value". Token order is row, col.
func parseBar(parts []string) (Command, error) {
	if len(parts) < 4 {
		return Command{}, ErrDrop
	}
	row, err := atoi(parts[1])
	if err != nil {
		return Command{}, ErrDrop
	}
	col, err := atoi(parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	value, err := atoi(parts[3])
	if err != nil {
		return Command{}, ErrDrop
	}
	return Command{Kind: KindBar, Row: row, Col: col, BarValue: clamp127(value)}, nil
}

// parseRingStyle handles "RING col row fg_o fg_i bg sz w_o w_i". Token
// order here and for every RING*/ARC variant is col, row.
func parseRingStyle(parts []string) (Command, error) {
	if len(parts) < 9 {
		return Command{}, ErrDrop
	}
	col, row, err := colRow(parts[1], parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	sizePx, err := atoi(parts[6])
	if err != nil {
		return Command{}, ErrDrop
	}
	wOut, err := atoi(parts[7])
	if err != nil {
		return Command{}, ErrDrop
	}
	wIn, err := atoi(parts[8])
	if err != nil {
		return Command{}, ErrDrop
	}
	return Command{
		Kind: KindRingStyle, Row: row, Col: col,
		FgOuter: parts[3], FgInner: parts[4], RingBg: parts[5],
		SizePx: sizePx, WidthOuter: wOut, WidthInner: wIn,
	}, nil
}

// parseRingValue handles "RINGVAL col row outer inner [text...]".
func parseRingValue(parts []string) (Command, error) {
	if len(parts) < 5 {
		return Command{}, ErrDrop
	}
	col, row, err := colRow(parts[1], parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	outer, err := atoi(parts[3])
	if err != nil {
		return Command{}, ErrDrop
	}
	inner, err := atoi(parts[4])
	if err != nil {
		return Command{}, ErrDrop
	}
	cmd := Command{Kind: KindRingValue, Row: row, Col: col, Outer: clamp127(outer), Inner: clamp127(inner)}
	if len(parts) > 5 {
		cmd.CenterText = strings.Join(parts[5:], " ")
		cmd.HasCenter = true
	}
	return cmd, nil
}

// parseRingSet handles "RINGSET col row outer inner fg_o fg_i bg sz w_o w_i".
func parseRingSet(parts []string) (Command, error) {
	if len(parts) < 11 {
		return Command{}, ErrDrop
	}
	col, row, err := colRow(parts[1], parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	outer, err := atoi(parts[3])
	if err != nil {
		return Command{}, ErrDrop
	}
	inner, err := atoi(parts[4])
	if err != nil {
		return Command{}, ErrDrop
	}
	sizePx, err := atoi(parts[8])
	if err != nil {
		return Command{}, ErrDrop
	}
	wOut, err := atoi(parts[9])
	if err != nil {
		return Command{}, ErrDrop
	}
	wIn, err := atoi(parts[10])
	if err != nil {
		return Command{}, ErrDrop
	}
	return Command{
		Kind: KindRingSet, Row: row, Col: col,
		Outer: clamp127(outer), Inner: clamp127(inner),
		FgOuter: parts[5], FgInner: parts[6], RingBg: parts[7],
		SizePx: sizePx, WidthOuter: wOut, WidthInner: wIn,
	}, nil
}

// parseArc handles "ARC col row v1 v2".
func parseArc(parts []string) (Command, error) {
	if len(parts) < 5 {
		return Command{}, ErrDrop
	}
	col, row, err := colRow(parts[1], parts[2])
	if err != nil {
		return Command{}, ErrDrop
	}
	v1, err := atoi(parts[3])
	if err != nil {
		return Command{}, ErrDrop
	}
	v2, err := atoi(parts[4])
	if err != nil {
		return Command{}, ErrDrop
	}
	return Command{Kind: KindArc, Row: row, Col: col, Arc1: clamp127(v1), Arc2: clamp127(v2)}, nil
}

func colRow(colTok, rowTok string) (col, row int, err error) {
	col, err = atoi(colTok)
	if err != nil {
		return 0, 0, err
	}
	row, err = atoi(rowTok)
	if err != nil {
		return 0, 0, err
	}
	return col, row, nil
}

func atoi(s string) (int, error) {
	return strconv.Atoi(s)
}

func clamp127(v int) int {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return v
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
