package extractor

import (
	"math"
	"regexp"
	"strconv"

	"github.com/Chaukil/scanchi/models"
)

var (
	// Item codes open with at least five uppercase letters, digits or
	// hyphens. Anchored at the start only: OCR sometimes glues trailing
	// punctuation onto a code.
	itemCodeRe = regexp.MustCompile(`^[A-Z0-9-]{5,}`)
	digitsRe   = regexp.MustCompile(`^\d+$`)
)

// quantityPool is a removable working set of quantity candidates. Pairing
// consumes entries so one quantity token can never satisfy two items.
type quantityPool struct {
	tokens []models.Token
	used   []bool
}

func newQuantityPool(tokens []models.Token) *quantityPool {
	return &quantityPool{tokens: tokens, used: make([]bool, len(tokens))}
}

// closest returns the index of the unconsumed quantity with the smallest
// vertical offset to y, provided the offset is under limit. Ties keep the
// first candidate encountered. Returns -1 when nothing qualifies.
func (p *quantityPool) closest(y, limit float64) int {
	best := -1
	smallest := math.Inf(1)
	for i, tok := range p.tokens {
		if p.used[i] {
			continue
		}
		diff := math.Abs(y - tok.Box.Y0)
		if diff < limit && diff < smallest {
			smallest = diff
			best = i
		}
	}
	return best
}

func (p *quantityPool) take(i int) models.Token {
	p.used[i] = true
	return p.tokens[i]
}

// ExtractLayout classifies tokens below the header row into item-column and
// quantity-column candidates by horizontal position linked to lexical shape,
// then pairs each item with the vertically nearest quantity.
func ExtractLayout(tokens []models.Token, boundary ColumnBoundary) ([]models.CandidateRecord, error) {
	var itemTokens, quantityTokens []models.Token

	for _, tok := range tokens {
		if tok.Box == nil || tok.Box.Y0 < boundary.HeaderBottomY {
			continue
		}
		cx := tok.Box.CenterX()
		switch {
		case cx < boundary.MidpointX && itemCodeRe.MatchString(tok.Text):
			itemTokens = append(itemTokens, tok)
		case cx > boundary.MidpointX && digitsRe.MatchString(tok.Text):
			quantityTokens = append(quantityTokens, tok)
		}
	}

	pool := newQuantityPool(quantityTokens)
	records := make([]models.CandidateRecord, 0, len(itemTokens))

	for _, item := range itemTokens {
		// A quantity counts as on the same row when its vertical offset is
		// under one and a half item heights.
		limit := item.Box.Height() * 1.5
		quantity := 1
		if i := pool.closest(item.Box.Y0, limit); i >= 0 {
			q, err := strconv.Atoi(pool.take(i).Text)
			if err == nil {
				quantity = q
			}
		}
		records = append(records, models.CandidateRecord{Item: item.Text, Quantity: quantity})
	}

	if len(records) == 0 {
		return nil, ErrNoPairsFound
	}
	return records, nil
}
