package submission

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewSubmissionIDShape(t *testing.T) {
	id := NewSubmissionID()
	assert.Regexp(t, `^\d{13}-[a-z0-9]{9}$`, id)
}

func TestNewSubmissionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSubmissionID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestEvidenceKeyAnonymous(t *testing.T) {
	key := EvidenceKey(nil, "My Photo.JPG")
	assert.Regexp(t, `^anon/\d{13}-[a-z0-9]{8}\.jpg$`, key)
}

func TestEvidenceKeyAuthenticated(t *testing.T) {
	uid := uuid.New()
	key := EvidenceKey(&uid, "video.mov")
	assert.Regexp(t, "^"+uid.String()+`/\d{13}-[a-z0-9]{8}\.mov$`, key)
}

func TestEvidenceKeyIgnoresFilenameBody(t *testing.T) {
	key := EvidenceKey(nil, "../../etc/passwd.png")
	assert.NotContains(t, key, "passwd")
	assert.NotContains(t, key, "..")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_photo__1_.jpg", SanitizeFilename("my photo (1).jpg"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
}
