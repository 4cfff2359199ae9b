package service

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

const defaultNoveltyWindow = 30 * time.Second

type noveltyDetector struct {
	window time.Duration
	now    func() time.Time
}

// NewNoveltyDetector returns a detector flagging stories created at most
// window ago. Stories without CreatedAt never qualify.
func NewNoveltyDetector(window time.Duration) NoveltyDetector {
	if window <= 0 {
		window = defaultNoveltyWindow
	}
	return &noveltyDetector{window: window, now: time.Now}
}

func (d *noveltyDetector) Detect(previouslyKnown map[string]struct{}, snapshot []models.Story, lastNotifiedID string) (models.Story, bool) {
	now := d.now()

	var (
		best  models.Story
		found bool
	)
	for _, s := range snapshot {
		if strings.TrimSpace(s.ID) == "" || s.ID == lastNotifiedID || s.CreatedAt.IsZero() {
			continue
		}
		if _, known := previouslyKnown[s.ID]; known {
			continue
		}
		if now.Sub(s.CreatedAt) > d.window {
			continue
		}

		if !found || models.CompareNewestFirst(s, best) < 0 {
			best, found = s, true
		}
	}

	return best, found
}
