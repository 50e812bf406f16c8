package out

import "context"

// Backend persists the serialized state document. Read reports
// apperrors.ErrNotFound when nothing has been written yet. Write must replace
// the document atomically.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}
