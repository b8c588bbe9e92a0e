package extractor

import (
	"testing"

	"github.com/Chaukil/scanchi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinesIndexItemQuantity(t *testing.T) {
	records, err := ExtractLines([]string{"9 WNK79255 35"})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "WNK79255", Quantity: 35}, records[0])
}

func TestExtractLinesQuantityOnNextLine(t *testing.T) {
	records, err := ExtractLines([]string{"3 100667", "12"})
	require.NoError(t, err)

	// The quantity line is consumed; it must not produce a second record.
	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "100667", Quantity: 12}, records[0])
}

func TestExtractLinesLookaheadRejected(t *testing.T) {
	records, err := ExtractLines([]string{"3 100667", "ITEM DESCRIPTION TEXT"})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "100667", Quantity: 1}, records[0])
}

func TestExtractLinesLongDigitLineIsNotQuantity(t *testing.T) {
	// A five-digit line is long enough to be another item code, so the
	// first record keeps the default quantity and the digit line is scanned
	// on its own (where it matches nothing).
	records, err := ExtractLines([]string{"3 100667", "54321"})
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "100667", Quantity: 1}, records[0])
}

func TestExtractLinesSkipsNoise(t *testing.T) {
	lines := []string{
		"PACKING LIST 2024",
		"ITEM SO LUONG GHI CHU",
		"1 WNK79255 35",
		"tổng cộng",
		"2 KHB4410 6",
	}

	records, err := ExtractLines(lines)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "WNK79255", records[0].Item)
	assert.Equal(t, "KHB4410", records[1].Item)
}

func TestExtractLinesCursorAdvancesPastConsumedQuantity(t *testing.T) {
	records, err := ExtractLines([]string{"1 AAA111", "4", "2 BBB222", "6"})
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, models.CandidateRecord{Item: "AAA111", Quantity: 4}, records[0])
	assert.Equal(t, models.CandidateRecord{Item: "BBB222", Quantity: 6}, records[1])
}

func TestExtractLinesEmpty(t *testing.T) {
	for name, lines := range map[string][]string{
		"nil":        nil,
		"only noise": {"PACKING LIST", "trang 1/2"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractLines(lines)
			assert.ErrorIs(t, err, ErrNoItemsFound)
		})
	}
}
