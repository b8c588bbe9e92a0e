package extractor

import (
	"regexp"
	"strings"

	"github.com/Chaukil/scanchi/models"
)

// ColumnBoundary is the derived geometry of the two table columns: the
// vertical split between them and the Y below which data rows begin.
type ColumnBoundary struct {
	MidpointX     float64
	HeaderBottomY float64
}

var (
	itemHeaderRe = regexp.MustCompile(`item`)
	// Degraded OCR often drops Vietnamese diacritics, so both the accented
	// and the bare spelling of "lượng" must match.
	quantityHeaderRe = regexp.MustCompile(`lượng|luong`)
)

// LocateColumns scans tokens in order for the first "item" header and the
// first quantity header ("số lượng", diacritic-tolerant). The scan stops as
// soon as both are found; later header-like tokens are ignored. The midpoint
// between the two header boxes becomes the column split.
func LocateColumns(tokens []models.Token) (ColumnBoundary, error) {
	var itemHeader, quantityHeader *models.Token

	for i := range tokens {
		tok := &tokens[i]
		if tok.Box == nil {
			continue
		}
		text := strings.ToLower(tok.Text)
		if itemHeader == nil && itemHeaderRe.MatchString(text) {
			itemHeader = tok
		}
		if quantityHeader == nil && quantityHeaderRe.MatchString(text) {
			quantityHeader = tok
		}
		if itemHeader != nil && quantityHeader != nil {
			break
		}
	}

	if itemHeader == nil || quantityHeader == nil {
		return ColumnBoundary{}, ErrHeadersNotFound
	}

	bottom := itemHeader.Box.Y1
	if quantityHeader.Box.Y1 > bottom {
		bottom = quantityHeader.Box.Y1
	}

	return ColumnBoundary{
		MidpointX:     (itemHeader.Box.X1 + quantityHeader.Box.X0) / 2,
		HeaderBottomY: bottom,
	}, nil
}
