package store

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a referenced entity id does not exist in the store.
// Operations given an unresolvable id fail with this sentinel rather than
// silently no-oping, since a missing id is a programming error upstream.
var ErrNotFound = errors.New("not found")

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
