package extractor

import (
	"testing"

	"github.com/Chaukil/scanchi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBoundary splits columns at x=200 with data rows starting below y=60.
var testBoundary = ColumnBoundary{MidpointX: 200, HeaderBottomY: 60}

func TestExtractLayoutPairsByVerticalProximity(t *testing.T) {
	tokens := []models.Token{
		word("WNK79255", 20, 100, 140, 120),
		word("ABC-1234", 20, 160, 140, 180),
		word("35", 300, 102, 330, 120),
		word("7", 300, 158, 315, 178),
	}

	records, err := ExtractLayout(tokens, testBoundary)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, models.CandidateRecord{Item: "WNK79255", Quantity: 35}, records[0])
	assert.Equal(t, models.CandidateRecord{Item: "ABC-1234", Quantity: 7}, records[1])
}

func TestExtractLayoutNeverReusesQuantity(t *testing.T) {
	// Two items on nearly the same row, one quantity token. The first item
	// consumes it; the second falls back to the default quantity.
	tokens := []models.Token{
		word("WNK79255", 20, 100, 140, 120),
		word("XYZ99999", 20, 104, 140, 124),
		word("35", 300, 101, 330, 120),
	}

	records, err := ExtractLayout(tokens, testBoundary)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, 35, records[0].Quantity)
	assert.Equal(t, 1, records[1].Quantity)
}

func TestExtractLayoutVerticalThreshold(t *testing.T) {
	// Item height 20 → threshold 30. The only quantity sits 50 below.
	tokens := []models.Token{
		word("WNK79255", 20, 100, 140, 120),
		word("35", 300, 150, 330, 170),
	}

	records, err := ExtractLayout(tokens, testBoundary)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Quantity)
}

func TestExtractLayoutDiscardsHeaderAndNoise(t *testing.T) {
	tokens := []models.Token{
		word("ITEM", 20, 40, 80, 59),      // above header bottom
		word("abc", 20, 100, 60, 120),     // lowercase, not an item code
		word("AB1", 20, 100, 60, 120),     // too short
		word("12x", 300, 100, 340, 120),   // not purely digits
		word("WNK79255", 20, 140, 140, 160),
		word("4", 300, 141, 312, 160),
	}

	records, err := ExtractLayout(tokens, testBoundary)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "WNK79255", Quantity: 4}, records[0])
}

func TestExtractLayoutWrongSideOfBoundary(t *testing.T) {
	// An item-shaped token in the quantity column and digits in the item
	// column are both noise.
	tokens := []models.Token{
		word("WNK79255", 320, 100, 440, 120),
		word("35", 20, 100, 50, 120),
	}

	_, err := ExtractLayout(tokens, testBoundary)
	assert.ErrorIs(t, err, ErrNoPairsFound)
}

func TestExtractLayoutNoCandidates(t *testing.T) {
	_, err := ExtractLayout(nil, testBoundary)
	assert.ErrorIs(t, err, ErrNoPairsFound)
}

func TestExtractLayoutClosestQuantityWins(t *testing.T) {
	tokens := []models.Token{
		word("WNK79255", 20, 100, 140, 120),
		word("9", 300, 125, 312, 145),  // offset 25
		word("35", 300, 103, 330, 121), // offset 3, closest
	}

	records, err := ExtractLayout(tokens, testBoundary)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, 35, records[0].Quantity)
}
