// Package charset holds the fixed character-code table for the split-flap
// display. Each of the device's integer codes maps to a printable
// character, a color token, or the filled block. The table is the wire
// vocabulary of the board gateway and is never modified at runtime.
package charset

import (
	"strings"

	"github.com/dshills/splitflap/internal/board"
)

// Color tokens understood by the device, in palette order.
// The token is also the character stored in a color cell.
const (
	TokenRed    = "RED"
	TokenOrange = "ORANGE"
	TokenYellow = "YELLOW"
	TokenGreen  = "GREEN"
	TokenBlue   = "BLUE"
	TokenPurple = "PURPLE"
	TokenWhite  = "WHITE"
	TokenBlack  = "BLACK"
	TokenFilled = "FILLED"
)

// codeForChar maps printable characters to device codes.
var codeForChar = map[string]int{
	" ": 0,
	"A": 1, "B": 2, "C": 3, "D": 4, "E": 5, "F": 6, "G": 7, "H": 8,
	"I": 9, "J": 10, "K": 11, "L": 12, "M": 13, "N": 14, "O": 15,
	"P": 16, "Q": 17, "R": 18, "S": 19, "T": 20, "U": 21, "V": 22,
	"W": 23, "X": 24, "Y": 25, "Z": 26,
	"1": 27, "2": 28, "3": 29, "4": 30, "5": 31, "6": 32, "7": 33,
	"8": 34, "9": 35, "0": 36,
	"!": 37, "@": 38, "#": 39, "$": 40, "(": 41, ")": 42,
	"-": 44, "+": 46, "&": 47, "=": 48, ";": 49, ":": 50,
	"'": 52, "\"": 53, "%": 54, ",": 55, ".": 56, "/": 59, "?": 60,
	"•": 62,
}

// codeForToken maps color tokens to device codes.
var codeForToken = map[string]int{
	TokenRed:    63,
	TokenOrange: 64,
	TokenYellow: 65,
	TokenGreen:  66,
	TokenBlue:   67,
	TokenPurple: 68,
	TokenWhite:  69,
	TokenBlack:  70,
	TokenFilled: 71,
}

// charForCode is the reverse of codeForChar, built at init.
var charForCode = map[int]string{}

// tokenForCode is the reverse of codeForToken, built at init.
var tokenForCode = map[int]string{}

func init() {
	for ch, code := range codeForChar {
		charForCode[code] = ch
	}
	for token, code := range codeForToken {
		tokenForCode[code] = token
	}
}

// Colors returns the paintable color names in palette order, lowercase.
// FILLED is included last; it renders as a solid block like the colors.
func Colors() []string {
	return []string{"red", "orange", "yellow", "green", "blue", "purple", "white", "black", "filled"}
}

// IsColorToken returns true if s is an uppercase color token (or FILLED).
func IsColorToken(s string) bool {
	_, ok := codeForToken[s]
	return ok
}

// FromCode decodes a device code into a cell. Color codes decode to color
// cells carrying their token and tag; unknown codes decode to a blank.
func FromCode(code int) board.Cell {
	if token, ok := tokenForCode[code]; ok {
		return board.Colored(token)
	}
	if ch, ok := charForCode[code]; ok {
		if ch == " " {
			return board.Blank()
		}
		return board.Glyph(ch)
	}
	return board.Blank()
}

// ToCode encodes a cell into a device code. Unknown characters encode to
// blank (0), matching the device's lenient text conversion.
func ToCode(cell board.Cell) int {
	ch := strings.ToUpper(strings.TrimSpace(cell.Char))
	if ch == "" {
		return 0
	}
	if code, ok := codeForToken[ch]; ok {
		return code
	}
	if code, ok := codeForChar[ch]; ok {
		return code
	}
	return 0
}

// Mappable returns true if the character (after uppercase folding) exists
// in the device character set.
func Mappable(ch string) bool {
	ch = strings.ToUpper(strings.TrimSpace(ch))
	if ch == "" {
		return true
	}
	if _, ok := codeForChar[ch]; ok {
		return true
	}
	_, ok := codeForToken[ch]
	return ok
}
