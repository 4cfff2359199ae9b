package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
	"sync"

	"github.com/MKhiriev/go-story-sync/models"
)

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// fieldSeparator keeps adjacent fields from running into each other, so
// ("ab", "c") and ("a", "bc") hash differently.
const fieldSeparator = 0x1f

// Fingerprint returns the hex-encoded SHA-256 digest of the given fields.
func Fingerprint(fields ...string) string {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{fieldSeparator})
	}
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return hex.EncodeToString(sum)
}

// StoryFingerprint is the content fingerprint used to decide whether a remote
// story differs from its local copy. Timestamps are excluded: CreatedAt is
// owned by the local replica once known and UpdatedAt changes on every write.
func StoryFingerprint(s models.Story) string {
	lat, lon := "", ""
	if s.Location != nil {
		lat = strconv.FormatFloat(s.Location.Lat, 'g', -1, 64)
		lon = strconv.FormatFloat(s.Location.Lon, 'g', -1, 64)
	}

	return Fingerprint(s.ID, s.AuthorName, s.Description, s.MediaRef, s.OwnerID, lat, lon)
}
