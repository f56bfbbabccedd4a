package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is one of the four tile colors. Colors carry no ordering beyond identity;
// the declaration order is only used to make output deterministic.
type Color uint8

const (
	Red Color = iota
	Blue
	Orange
	Black
)

const colorCount = 4

// Colors returns every color in canonical order.
func Colors() []Color {
	return []Color{Red, Blue, Orange, Black}
}

// Valid reports whether c is one of the four colors.
func (c Color) Valid() bool {
	return c < colorCount
}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Orange:
		return "Orange"
	case Black:
		return "Black"
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// Code is the single-letter form used in tile codes (K is black).
func (c Color) Code() string {
	switch c {
	case Red:
		return "R"
	case Blue:
		return "B"
	case Orange:
		return "O"
	case Black:
		return "K"
	}
	return "?"
}

// ParseColor accepts a color code ("R") or name ("red"), case-insensitive.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "red":
		return Red, nil
	case "b", "blue":
		return Blue, nil
	case "o", "orange", "y", "yellow":
		return Orange, nil
	case "k", "black":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Number is a tile face value in 1..13.
type Number uint8

const (
	MinNumber Number = 1
	MaxNumber Number = 13
)

// Valid reports whether n lies in 1..13.
func (n Number) Valid() bool {
	return n >= MinNumber && n <= MaxNumber
}

// Next returns n+1, or false when n is 13. It never wraps or saturates.
func (n Number) Next() (Number, bool) {
	if n < MinNumber || n >= MaxNumber {
		return 0, false
	}
	return n + 1, true
}

// Prev returns n-1, or false when n is 1.
func (n Number) Prev() (Number, bool) {
	if n <= MinNumber || n > MaxNumber {
		return 0, false
	}
	return n - 1, true
}

// Value is the face value of n.
func (n Number) Value() Score {
	return Score(n)
}

// Tile is a joker or a regular colored number. The zero value is not a valid tile.
type Tile struct {
	joker  bool
	color  Color
	number Number
}

// Joker returns the joker tile.
func Joker() Tile {
	return Tile{joker: true}
}

// Regular returns the colored number tile. Validity is checked by the constructors
// that consume tiles, so out-of-range numbers are representable but never placed.
func Regular(c Color, n Number) Tile {
	return Tile{color: c, number: n}
}

// IsJoker reports whether t is a joker.
func (t Tile) IsJoker() bool { return t.joker }

// Color returns the tile color; false for a joker.
func (t Tile) Color() (Color, bool) {
	if t.joker {
		return 0, false
	}
	return t.color, true
}

// Number returns the tile number; false for a joker.
func (t Tile) Number() (Number, bool) {
	if t.joker {
		return 0, false
	}
	return t.number, true
}

// Valid reports whether t is a joker or a regular tile with a legal color and number.
func (t Tile) Valid() bool {
	return t.joker || (t.color.Valid() && t.number.Valid())
}

// Code renders the compact form: "R5", "K13", "J".
func (t Tile) Code() string {
	if t.joker {
		return "J"
	}
	return t.color.Code() + strconv.Itoa(int(t.number))
}

func (t Tile) String() string {
	if t.joker {
		return "Joker"
	}
	return fmt.Sprintf("%s %d", t.color, t.number)
}

// ParseTile parses a tile code such as "R5", "b12", "K1" or "J".
func ParseTile(code string) (Tile, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if s == "J" || s == "JOKER" {
		return Joker(), nil
	}
	if len(s) < 2 {
		return Tile{}, &Error{Op: "ParseTile", Kind: KindInvalidTile, Err: fmt.Errorf("malformed code %q", code)}
	}
	c, err := ParseColor(s[:1])
	if err != nil {
		return Tile{}, &Error{Op: "ParseTile", Kind: KindInvalidTile, Err: err}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < int(MinNumber) || n > int(MaxNumber) {
		return Tile{}, &Error{Op: "ParseTile", Kind: KindInvalidTile, Err: fmt.Errorf("bad number in %q", code)}
	}
	return Regular(c, Number(n)), nil
}

// ParseTiles parses a list of tile codes, stopping at the first bad one.
func ParseTiles(codes []string) ([]Tile, error) {
	out := make([]Tile, 0, len(codes))
	for _, code := range codes {
		t, err := ParseTile(code)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// TileCodes renders tiles as codes, preserving order.
func TileCodes(tiles []Tile) []string {
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.Code()
	}
	return out
}

// MarshalText encodes the tile as its code so tiles travel as JSON strings.
func (t Tile) MarshalText() ([]byte, error) {
	return []byte(t.Code()), nil
}

// UnmarshalText decodes a tile code.
func (t *Tile) UnmarshalText(b []byte) error {
	parsed, err := ParseTile(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
