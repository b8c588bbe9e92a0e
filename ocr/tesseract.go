// Package ocr wraps the external recognizers that turn uploaded documents
// into token streams for the extractor: Tesseract for photographs and scans,
// and a PDF text reader for born-digital packing lists.
package ocr

import (
	"fmt"

	"github.com/Chaukil/scanchi/models"
	"github.com/otiai10/gosseract/v2"
)

// Recognizer produces an OCR result from a document on disk.
type Recognizer interface {
	Recognize(path string) (models.OCRResult, error)
}

// TesseractRecognizer runs the Tesseract engine via gosseract. Requires the
// tesseract binary and the configured language data to be installed.
type TesseractRecognizer struct {
	languages string
}

// NewTesseractRecognizer creates a recognizer with the given language hint,
// e.g. "vie+eng". An empty hint defaults to "eng".
func NewTesseractRecognizer(languages string) *TesseractRecognizer {
	if languages == "" {
		languages = "eng"
	}
	return &TesseractRecognizer{languages: languages}
}

// Recognize runs a full recognition pass. Word bounding boxes are preferred;
// when the engine reports none, the flat text is returned so the caller can
// take the line-pattern path.
func (t *TesseractRecognizer) Recognize(path string) (models.OCRResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages); err != nil {
		return models.OCRResult{}, fmt.Errorf("set language %q: %w", t.languages, err)
	}
	if err := client.SetImage(path); err != nil {
		return models.OCRResult{}, fmt.Errorf("set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err == nil && len(boxes) > 0 {
		words := make([]models.Token, 0, len(boxes))
		for _, box := range boxes {
			words = append(words, models.Token{
				Text: box.Word,
				Box: &models.BBox{
					X0: float64(box.Box.Min.X),
					Y0: float64(box.Box.Min.Y),
					X1: float64(box.Box.Max.X),
					Y1: float64(box.Box.Max.Y),
				},
				Conf: float64(box.Confidence) / 100.0,
			})
		}
		return models.WordsResult(words), nil
	}

	text, err := client.Text()
	if err != nil {
		return models.OCRResult{}, fmt.Errorf("recognize text: %w", err)
	}
	return models.TextResult(text), nil
}
