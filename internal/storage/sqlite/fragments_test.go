package sqlite

import (
	"context"
	"testing"
)

func TestFragmentsRepo_InsertAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewFragmentsRepo(newTestDB(t))

	seen := make(map[int64]bool)
	for _, text := range []string{"a", "b", "c"} {
		id, err := repo.Insert(ctx, text, []float32{1, 0, 0})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
}

func TestFragmentsRepo_AllRoundTrips(t *testing.T) {
	ctx := context.Background()
	repo := NewFragmentsRepo(newTestDB(t))

	want := []struct {
		text string
		vec  []float32
	}{
		{"past simple", []float32{0.25, -1.5, 3}},
		{"present perfect", []float32{1, 2, -0.125}},
	}
	for _, w := range want {
		if _, err := repo.Insert(ctx, w.text, w.vec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d fragments, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Text != w.text {
			t.Errorf("fragment %d text = %q, want %q", i, got[i].Text, w.text)
		}
		for j, v := range w.vec {
			if got[i].Embedding[j] != v {
				t.Errorf("fragment %d embedding[%d] = %v, want %v", i, j, got[i].Embedding[j], v)
			}
		}
	}
	// Insertion order by id.
	if got[0].ID >= got[1].ID {
		t.Errorf("ids not ascending: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestFragmentsRepo_Count(t *testing.T) {
	ctx := context.Background()
	repo := NewFragmentsRepo(newTestDB(t))

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected empty repo, got %d", n)
	}

	if _, err := repo.Insert(ctx, "x", []float32{1}); err != nil {
		t.Fatal(err)
	}
	if n, err = repo.Count(ctx); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 fragment, got %d", n)
	}
}

func TestVectorCodecRoundTrip(t *testing.T) {
	vec := []float32{0, -1, 1.5, 3.25e-3}
	blob, err := serializeVector(vec)
	if err != nil {
		t.Fatal(err)
	}
	got, err := deserializeVector(blob, len(vec))
	if err != nil {
		t.Fatal(err)
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], vec[i])
		}
	}
}

func TestVectorCodecRejectsWrongLength(t *testing.T) {
	blob, err := serializeVector([]float32{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := deserializeVector(blob, 3); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
