package extractor

import (
	"regexp"
	"strconv"

	"github.com/Chaukil/scanchi/models"
)

var (
	// Pattern A: "<index> <item> <quantity>" and nothing else.
	indexItemQuantityRe = regexp.MustCompile(`^(\d+)\s+([A-Za-z0-9]+)\s+(\d+)$`)
	// Pattern B: "<index> <item>" with the quantity possibly on the next line.
	indexItemRe = regexp.MustCompile(`^(\d+)\s+([A-Za-z0-9]+)$`)
)

// maxQuantityDigits separates a bare-digit quantity line from a numeric item
// code on the line-pattern path. Known limitation: a four-digit item code on
// its own line is read as a quantity.
const maxQuantityDigits = 5

// ExtractLines scans trimmed non-empty text lines for "index item quantity"
// and "index item" shapes. When an "index item" line is followed by a short
// all-digit line, that line is consumed as the quantity; otherwise the
// quantity defaults to 1.
func ExtractLines(lines []string) ([]models.CandidateRecord, error) {
	var records []models.CandidateRecord

	for i := 0; i < len(lines); i++ {
		if m := indexItemQuantityRe.FindStringSubmatch(lines[i]); m != nil {
			quantity, err := strconv.Atoi(m[3])
			if err != nil {
				continue
			}
			records = append(records, models.CandidateRecord{Item: m[2], Quantity: quantity})
			continue
		}

		if m := indexItemRe.FindStringSubmatch(lines[i]); m != nil {
			quantity := 1
			if i+1 < len(lines) {
				next := lines[i+1]
				if digitsRe.MatchString(next) && len(next) < maxQuantityDigits {
					if q, err := strconv.Atoi(next); err == nil {
						quantity = q
						i++ // consume the quantity line
					}
				}
			}
			records = append(records, models.CandidateRecord{Item: m[2], Quantity: quantity})
		}
		// Anything else is noise: titles, column headers, totals.
	}

	if len(records) == 0 {
		return nil, ErrNoItemsFound
	}
	return records, nil
}
