package quiz

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
)

func TestListAll_SortedByName(t *testing.T) {
	birds := append(testBirds(3, 1), testBirds(3, 2)...)
	// Hand the store an unsorted catalog on purpose
	birds[0], birds[5] = birds[5], birds[0]

	catalog := NewCatalogService(newMemoryStore(birds...))

	got, err := catalog.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("Expected 6 birds, got %d", len(got))
	}
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Name < got[j].Name }) {
		t.Error("Expected birds sorted by name")
	}
}

func TestListByDifficulty_FiltersSubsetOfAll(t *testing.T) {
	birds := append(testBirds(4, 1), testBirds(3, 2)...)
	catalog := NewCatalogService(newMemoryStore(birds...))
	ctx := context.Background()

	easy, err := catalog.ListByDifficulty(ctx, 1)
	if err != nil {
		t.Fatalf("ListByDifficulty failed: %v", err)
	}
	if len(easy) != 4 {
		t.Fatalf("Expected 4 birds at difficulty 1, got %d", len(easy))
	}

	all, _ := catalog.ListAll(ctx)
	ids := make(map[uuid.UUID]bool, len(all))
	for _, b := range all {
		ids[b.ID] = true
	}
	for _, b := range easy {
		if *b.DifficultyLevel != 1 {
			t.Errorf("Bird %s has difficulty %d, expected 1", b.Name, *b.DifficultyLevel)
		}
		if !ids[b.ID] {
			t.Errorf("Bird %s not present in full catalog", b.Name)
		}
	}
}

func TestListByDifficulty_NoMatchesIsEmptyNotError(t *testing.T) {
	catalog := NewCatalogService(newMemoryStore(testBirds(4, 1)...))

	got, err := catalog.ListByDifficulty(context.Background(), 3)
	if err != nil {
		t.Fatalf("Expected empty result, got error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no birds, got %d", len(got))
	}
}

func TestSampleRandom_DistinctAndFromPool(t *testing.T) {
	birds := testBirds(6, 1)
	catalog := NewCatalogService(newMemoryStore(birds...))

	pool := make(map[uuid.UUID]bool, len(birds))
	for _, b := range birds {
		pool[b.ID] = true
	}

	got, err := catalog.SampleRandom(context.Background(), 4, nil)
	if err != nil {
		t.Fatalf("SampleRandom failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Expected 4 birds, got %d", len(got))
	}

	seen := make(map[uuid.UUID]bool)
	for _, b := range got {
		if seen[b.ID] {
			t.Errorf("Bird %s sampled twice", b.Name)
		}
		seen[b.ID] = true
		if !pool[b.ID] {
			t.Errorf("Bird %s not from the pool", b.Name)
		}
	}
}

func TestSampleRandom_ClampsToPoolSize(t *testing.T) {
	catalog := NewCatalogService(newMemoryStore(testBirds(3, 1)...))

	got, err := catalog.SampleRandom(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("SampleRandom failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected the whole pool of 3, got %d", len(got))
	}
}

func TestSampleRandom_EveryBirdReachable(t *testing.T) {
	birds := testBirds(6, 1)
	catalog := NewCatalogService(newMemoryStore(birds...))

	seen := make(map[uuid.UUID]int)
	for i := 0; i < 200; i++ {
		got, err := catalog.SampleRandom(context.Background(), 4, nil)
		if err != nil {
			t.Fatalf("SampleRandom failed: %v", err)
		}
		for _, b := range got {
			seen[b.ID]++
		}
	}

	for _, b := range birds {
		if seen[b.ID] == 0 {
			t.Errorf("Bird %s was never sampled in 200 draws", b.Name)
		}
	}
}

func TestSampleRandom_RespectsDifficultyFilter(t *testing.T) {
	birds := append(testBirds(6, 1), testBirds(6, 2)...)
	catalog := NewCatalogService(newMemoryStore(birds...))

	level := 2
	got, err := catalog.SampleRandom(context.Background(), 4, &level)
	if err != nil {
		t.Fatalf("SampleRandom failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("Expected 4 birds, got %d", len(got))
	}
	for _, b := range got {
		if *b.DifficultyLevel != 2 {
			t.Errorf("Bird %s has difficulty %d, expected 2", b.Name, *b.DifficultyLevel)
		}
	}
}

func TestSampleRandom_StoreFailure(t *testing.T) {
	store := newMemoryStore(testBirds(6, 1)...)
	store.failReads = true
	catalog := NewCatalogService(store)

	_, err := catalog.SampleRandom(context.Background(), 4, nil)
	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("Expected DataUnavailableError, got %v", err)
	}
}
