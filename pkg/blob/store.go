package blob

import (
	"context"
	"fmt"
	"io"
	"time"

	"cropdoc/pkg/upload"
)

// Store persists raw image bytes and returns an addressable URL. Handlers
// depend on this interface so tests can substitute the in-memory store and
// production can point at durable object storage.
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Get(ctx context.Context, key string, w io.Writer) error
}

// DiagnosticKey builds the storage key for one uploaded crop photo:
// purpose + owner + timestamp + extension. Nanosecond timestamps keep
// concurrent uploads from the same user collision-free without coordination.
func DiagnosticKey(uid, contentType string, now time.Time) string {
	return fmt.Sprintf("diagnostics/%s/%d%s", uid, now.UnixNano(), upload.ExtensionForMIME(contentType))
}
