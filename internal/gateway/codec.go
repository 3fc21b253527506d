package gateway

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/splitflap/internal/board"
	"github.com/dshills/splitflap/internal/charset"
)

// decodeBoard parses a fetch response into a grid of the given size.
// The code-encoded representation ("gridCodes") is preferred because it
// preserves colors; the legacy character matrix ("grid") is accepted as a
// fallback. Short or oversized payloads are normalized, not rejected.
func decodeBoard(body []byte, size board.Size) (board.Grid, error) {
	if codes := gjson.GetBytes(body, "gridCodes"); codes.IsArray() {
		return decodeCodes(codes, size), nil
	}
	if chars := gjson.GetBytes(body, "grid"); chars.IsArray() {
		return decodeChars(chars, size), nil
	}
	return board.Grid{}, fmt.Errorf("%w: neither gridCodes nor grid present", ErrBadPayload)
}

func decodeCodes(codes gjson.Result, size board.Size) board.Grid {
	var rows [][]board.Cell
	codes.ForEach(func(_, row gjson.Result) bool {
		var cells []board.Cell
		row.ForEach(func(_, code gjson.Result) bool {
			cells = append(cells, charset.FromCode(int(code.Int())))
			return true
		})
		rows = append(rows, cells)
		return true
	})
	return board.Normalize(rows, size)
}

// decodeChars parses the legacy representation. Colors are unrecoverable
// here; color tokens arrive as plain strings and are kept as glyph text
// so the diff predicate can still match them against decoded cells.
func decodeChars(chars gjson.Result, size board.Size) board.Grid {
	var rows [][]board.Cell
	chars.ForEach(func(_, row gjson.Result) bool {
		var cells []board.Cell
		row.ForEach(func(_, ch gjson.Result) bool {
			cells = append(cells, board.Glyph(ch.String()))
			return true
		})
		rows = append(rows, cells)
		return true
	})
	return board.Normalize(rows, size)
}

// encodeBoard builds the send payload: a character matrix where color
// cells appear as their uppercase color token.
func encodeBoard(g board.Grid) ([]byte, error) {
	body := []byte(`{"grid":[]}`)
	size := g.Size()
	for r := 0; r < size.Rows; r++ {
		row := make([]string, 0, size.Cols)
		for _, cell := range g.Row(r) {
			switch {
			case cell.IsColor():
				row = append(row, cell.Char)
			case cell.IsBlank():
				row = append(row, " ")
			default:
				row = append(row, cell.Char)
			}
		}
		var err error
		body, err = sjson.SetBytes(body, "grid.-1", row)
		if err != nil {
			return nil, fmt.Errorf("encoding board row %d: %w", r, err)
		}
	}
	return body, nil
}
