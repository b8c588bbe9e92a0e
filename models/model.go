package models

// BBox is an axis-aligned bounding box in image pixel coordinates.
// (X0, Y0) is the top-left corner, (X1, Y1) the bottom-right.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Token is a single recognized word from one OCR pass. Box is nil when the
// recognizer only produced plain text. Line is the document row index for
// recognizers that report row structure; zero otherwise.
type Token struct {
	Text string  `json:"text"`
	Box  *BBox   `json:"bbox,omitempty"`
	Line int     `json:"line"`
	Conf float64 `json:"confidence,omitempty"`
}

// ResultKind discriminates the two shapes an OCR pass can produce.
type ResultKind int

const (
	// ResultWords means the recognizer produced word tokens with boxes.
	ResultWords ResultKind = iota
	// ResultText means only a flat text string is available.
	ResultText
)

// OCRResult is the tagged variant handed to the extractor: either a word
// list with bounding boxes or a plain text blob.
type OCRResult struct {
	Kind  ResultKind
	Words []Token
	Text  string
}

// WordsResult wraps a token list as an OCRResult.
func WordsResult(words []Token) OCRResult {
	return OCRResult{Kind: ResultWords, Words: words}
}

// TextResult wraps plain recognized text as an OCRResult.
func TextResult(text string) OCRResult {
	return OCRResult{Kind: ResultText, Text: text}
}

// CandidateRecord is one (item, quantity) pair proposed by an extractor,
// pending human confirmation. Quantity is always at least 1.
type CandidateRecord struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// SessionRecord is an accumulated row in a scan session. No two records in
// one session share an item under case-insensitive comparison.
type SessionRecord struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}
