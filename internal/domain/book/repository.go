package book

import "context"

// Lookup searches a book catalogue with a free text presentation such as
// "'Title', de Author" and returns the ranked matches.
type Lookup interface {
	Find(ctx context.Context, presentation string) ([]Book, error)
}
