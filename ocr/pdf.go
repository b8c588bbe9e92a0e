package ocr

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Chaukil/scanchi/models"
	"github.com/ledongthuc/pdf"
)

// rowTolerance is the maximum Y distance between two fragments still
// considered to sit on the same text row.
const rowTolerance = 2.0

// PDFRecognizer reads positioned text straight out of a born-digital PDF,
// skipping Tesseract entirely. The extractor sees the same token stream
// either way.
type PDFRecognizer struct{}

func NewPDFRecognizer() *PDFRecognizer {
	return &PDFRecognizer{}
}

// Recognize extracts every text fragment with its coordinates. The library
// frequently yields char-by-char fragments, so same-row fragments are
// coalesced into word tokens first. PDF Y grows upward from the bottom of
// the page, so coordinates are flipped into the top-down orientation the
// extractor expects.
func (p *PDFRecognizer) Recognize(path string) (models.OCRResult, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return models.OCRResult{}, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var words []models.Token
	var offsetY float64
	firstLine := 0

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		tokens, pageMaxY, rowCount := pageTokens(page.Content().Text, offsetY, firstLine)
		words = append(words, tokens...)

		// Stack pages vertically so later pages sort below earlier ones.
		offsetY += pageMaxY + 20
		firstLine += rowCount
	}

	return models.WordsResult(words), nil
}

// wordSpan is a run of horizontally adjacent fragments joined into one word.
type wordSpan struct {
	text     string
	x0, x1   float64
	y        float64
	fontSize float64
}

// pageTokens turns one page's raw fragments into word tokens: fragments are
// grouped into rows by Y proximity, coalesced into words, flipped into
// top-down coordinates and stamped with their row index.
func pageTokens(texts []pdf.Text, offsetY float64, firstLine int) ([]models.Token, float64, int) {
	rows := groupRows(texts)

	var pageMaxY float64
	for _, t := range texts {
		if t.Y > pageMaxY {
			pageMaxY = t.Y
		}
	}

	// Top row first: PDF Y grows upward.
	sort.Slice(rows, func(a, b int) bool {
		return rows[a][0].Y > rows[b][0].Y
	})

	var tokens []models.Token
	for rowIdx, row := range rows {
		for _, w := range coalesceRow(row) {
			top := offsetY + (pageMaxY - w.y)
			height := w.fontSize
			if height <= 0 {
				height = 10
			}
			tokens = append(tokens, models.Token{
				Text: w.text,
				Box: &models.BBox{
					X0: w.x0,
					Y0: top,
					X1: w.x1,
					Y1: top + height,
				},
				Line: firstLine + rowIdx,
			})
		}
	}
	return tokens, pageMaxY, len(rows)
}

// groupRows clusters text fragments into rows by Y proximity. Blank
// fragments are dropped.
func groupRows(texts []pdf.Text) [][]pdf.Text {
	var rows [][]pdf.Text
	var rowY []float64

	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		placed := false
		for i := range rows {
			if math.Abs(rowY[i]-t.Y) < rowTolerance {
				rows[i] = append(rows[i], t)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, []pdf.Text{t})
			rowY = append(rowY, t.Y)
		}
	}
	return rows
}

// coalesceRow merges horizontally adjacent fragments into words, left to
// right. A gap wider than a third of the font size reads as word-separating
// whitespace and starts a new word.
func coalesceRow(row []pdf.Text) []wordSpan {
	sort.Slice(row, func(a, b int) bool {
		return row[a].X < row[b].X
	})

	var words []wordSpan
	for _, t := range row {
		s := strings.TrimSpace(t.S)
		if s == "" {
			continue
		}

		gapLimit := t.FontSize / 3
		if gapLimit <= 0 {
			gapLimit = 3
		}

		if n := len(words); n > 0 && t.X-words[n-1].x1 <= gapLimit {
			w := &words[n-1]
			w.text += s
			if end := t.X + t.W; end > w.x1 {
				w.x1 = end
			}
			if t.FontSize > w.fontSize {
				w.fontSize = t.FontSize
			}
			continue
		}

		words = append(words, wordSpan{
			text:     s,
			x0:       t.X,
			x1:       t.X + t.W,
			y:        t.Y,
			fontSize: t.FontSize,
		})
	}
	return words
}
