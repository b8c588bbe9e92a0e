// Package extractor reconstructs (item, quantity) records from noisy OCR
// output of tabular packing-list documents. Two strategies are implemented:
// a layout-aware pass over word bounding boxes, and a regex pass over plain
// text lines for recognizers that cannot report geometry.
package extractor

import (
	"errors"

	"github.com/Chaukil/scanchi/models"
)

var (
	// ErrHeadersNotFound means the ITEM / SỐ LƯỢNG column headers could not
	// be located, so the column boundary cannot be derived.
	ErrHeadersNotFound = errors.New("item and quantity column headers not found")

	// ErrNoPairsFound means classification produced zero item or quantity
	// candidates on the layout path.
	ErrNoPairsFound = errors.New("no item-quantity pairs found")

	// ErrNoItemsFound means the line patterns matched nothing on the plain
	// text path.
	ErrNoItemsFound = errors.New("no items found in recognized text")
)

// Extract dispatches an OCR result to the matching strategy. Word tokens with
// bounding boxes go through the column-alignment extractor; plain text falls
// back to line-pattern matching.
func Extract(res models.OCRResult) ([]models.CandidateRecord, error) {
	switch res.Kind {
	case models.ResultWords:
		boundary, err := LocateColumns(res.Words)
		if err != nil {
			return nil, err
		}
		return ExtractLayout(res.Words, boundary)
	default:
		return ExtractLines(SplitLines(res.Text))
	}
}
