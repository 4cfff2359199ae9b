// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("x", "y")
	b := Fingerprint("x", "y")
	if a != b {
		t.Fatalf("fingerprint must be deterministic: %s != %s", a, b)
	}

	h := sha256.New()
	h.Write([]byte{'x', fieldSeparator, 'y', fieldSeparator})
	if want := hex.EncodeToString(h.Sum(nil)); a != want {
		t.Fatalf("unexpected digest\nwant: %s\ngot:  %s", want, a)
	}
}

func TestFingerprint_FieldBoundaries(t *testing.T) {
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Fatal("adjacent fields must not collide")
	}
}

func TestFingerprint_Concurrent(t *testing.T) {
	want := Fingerprint("same")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Fingerprint("same"); got != want {
				t.Errorf("concurrent fingerprint mismatch: %s", got)
			}
		}()
	}
	wg.Wait()
}

func TestStoryFingerprint(t *testing.T) {
	base := models.Story{ID: "s1", AuthorName: "ann", Description: "hello", MediaRef: "http://m/1.jpg"}

	withTimes := base
	withTimes.CreatedAt = time.Now()
	withTimes.UpdatedAt = time.Now()
	if StoryFingerprint(base) != StoryFingerprint(withTimes) {
		t.Error("timestamps must not affect the fingerprint")
	}

	edited := base
	edited.Description = "hello!"
	if StoryFingerprint(base) == StoryFingerprint(edited) {
		t.Error("description change must change the fingerprint")
	}

	located := base
	located.Location = &models.Location{Lat: 0, Lon: 0}
	if StoryFingerprint(base) == StoryFingerprint(located) {
		t.Error("a location at 0,0 differs from no location")
	}
}
