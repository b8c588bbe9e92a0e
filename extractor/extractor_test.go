package extractor

import (
	"testing"

	"github.com/Chaukil/scanchi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDispatchesLayoutPath(t *testing.T) {
	res := models.WordsResult([]models.Token{
		word("ITEM", 20, 40, 80, 60),
		word("LƯỢNG", 300, 40, 400, 60),
		word("WNK79255", 20, 100, 140, 120),
		word("35", 300, 102, 330, 120),
	})

	records, err := Extract(res)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "WNK79255", Quantity: 35}, records[0])
}

func TestExtractDispatchesTextPath(t *testing.T) {
	records, err := Extract(models.TextResult("PACKING LIST\n9 WNK79255 35\n"))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, models.CandidateRecord{Item: "WNK79255", Quantity: 35}, records[0])
}

func TestExtractLayoutPathWithoutHeaders(t *testing.T) {
	res := models.WordsResult([]models.Token{
		word("WNK79255", 20, 100, 140, 120),
	})

	records, err := Extract(res)
	assert.ErrorIs(t, err, ErrHeadersNotFound)
	assert.Nil(t, records)
}

func TestExtractEmptyText(t *testing.T) {
	_, err := Extract(models.TextResult(""))
	assert.ErrorIs(t, err, ErrNoItemsFound)
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("  PACKING LIST \n\n 9 WNK79255 35\n   \n")
	assert.Equal(t, []string{"PACKING LIST", "9 WNK79255 35"}, lines)
}
