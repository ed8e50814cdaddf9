package submission

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const alnum = "abcdefghijklmnopqrstuvwxyz0123456789"

func randAlnum(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a uuid-derived suffix rather than panic.
		return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
	}
	for i, b := range buf {
		buf[i] = alnum[int(b)%len(alnum)]
	}
	return string(buf)
}

// NewSubmissionID generates a client-style idempotency token,
// {epoch-ms}-{random}. Generated once per submit attempt; a retry of
// the same attempt reuses the token it already has.
func NewSubmissionID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), randAlnum(9))
}

// EvidenceKey builds the object-storage key for an uploaded evidence
// file: {uid-or-anon}/{epoch-ms}-{random}.{ext}. The original filename
// never ends up in the key; only its extension survives.
func EvidenceKey(createdBy *uuid.UUID, filename string) string {
	owner := "anon"
	if createdBy != nil {
		owner = createdBy.String()
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", owner, time.Now().UnixMilli(), randAlnum(8), ext)
}

// SanitizeFilename reduces an uploaded filename to a safe character
// set. Used for logging and debugging only, never for storage keys.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
