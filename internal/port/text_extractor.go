package port

import "context"

// ExtractedText is the decoded text of a source document.
// MetadataYear is 0 when the document carries no creation date.
type ExtractedText struct {
	Text         string
	Pages        int
	MetadataYear int
}

// TextExtractor decodes a source document into text, one visual row per line.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (*ExtractedText, error)
}
