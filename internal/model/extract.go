package model

import "context"

// Extractor turns a natural-language request into candidate fields.
type Extractor interface {
	ExtractChange(ctx context.Context, text string) (ChangeRequest, error)
	ExtractRead(ctx context.Context, text string) (ReadRequest, error)
	ExtractDelete(ctx context.Context, text string) (DeleteRequest, error)
}
