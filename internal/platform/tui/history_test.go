package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

func TestMatchRow(t *testing.T) {
	start := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	row := MatchRow(storage.MatchRecord{
		Preset:     "classic",
		LeftScore:  3,
		RightScore: 5,
		Rallies:    8,
		StartedAt:  start,
		EndedAt:    start.Add(90 * time.Second),
	})

	expected := []string{"Mar 05 14:30", "classic", "local", "3 - 5", "8", "1:30"}
	if len(row) != len(expected) {
		t.Fatalf("row has %d cells, expected %d", len(row), len(expected))
	}
	for i := range expected {
		if row[i] != expected[i] {
			t.Errorf("cell %d = %q, expected %q", i, row[i], expected[i])
		}
	}
}

func TestHistoryModelLoadsMatches(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "matches.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	start := time.Now().Add(-time.Minute)
	_, err = store.SaveMatch(storage.MatchRecord{
		Preset:     "wide",
		Player:     "bob",
		LeftScore:  1,
		RightScore: 0,
		Rallies:    1,
		StartedAt:  start,
		EndedAt:    start.Add(30 * time.Second),
		Goals:      []storage.Goal{{Seq: 1, Player: "left", Score: 1}},
	})
	if err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}

	m := NewHistoryModel(store, 120, 30)
	if len(m.matches) != 1 {
		t.Fatalf("loaded %d matches, expected 1", len(m.matches))
	}
	if m.detail == nil || len(m.detail.Goals) != 1 {
		t.Fatalf("detail not loaded: %+v", m.detail)
	}

	out := m.View()
	for _, want := range []string{"1 matches", "bob", "wide", "Goals"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryModelWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No matches recorded yet") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}
