package translate

import "context"

// Stub is a no-op translator for offline use.
// Returns an empty translation, which shows up as the placeholder.
type Stub struct{}

// NewStub creates a new no-op translator.
func NewStub() *Stub { return &Stub{} }

// Translate always returns "".
func (s *Stub) Translate(ctx context.Context, word, source, target string) (string, error) {
	return "", nil
}
