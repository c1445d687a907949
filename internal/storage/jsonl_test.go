package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"liquidityPortal/internal/model"
)

func TestJsonlStorageAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshots.jsonl")
	store := NewJsonlStorage(path)

	first := model.Snapshot{
		ChainID:     8453,
		Pool:        "0x04825CDa198D4134f6Bb914f097b9ab141825bF4",
		Block:       100,
		TotalRaw:    "1000000000",
		ReservedRaw: "250000000",
		Liquidity:   "1000.00",
		Reserved:    "250.00",
		Utilization: "25.00",
		FetchedAt:   "2024-01-01T00:00:00Z",
	}
	second := first
	second.Block = 101
	second.ReservedRaw = "500000000"
	second.Reserved = "500.00"
	second.Utilization = "50.00"

	if err := store.PutSnapshots(context.Background(), []model.Snapshot{first}); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.PutSnapshots(context.Background(), []model.Snapshot{second}); err != nil {
		t.Fatalf("put second: %v", err)
	}
	if err := store.PutSnapshots(context.Background(), nil); err != nil {
		t.Fatalf("put empty: %v", err)
	}

	got, err := store.ReadSnapshots()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []model.Snapshot{first, second}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshots mismatch: %+v != %+v", got, want)
	}
}

func TestJsonlStorageMissingFile(t *testing.T) {
	store := NewJsonlStorage(filepath.Join(t.TempDir(), "absent.jsonl"))
	got, err := store.ReadSnapshots()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no snapshots, got %+v", got)
	}
}

type failingSink struct{}

func (failingSink) PutSnapshots(context.Context, []model.Snapshot) error {
	return errors.New("disk full")
}

func TestMultiWritesAllSinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.jsonl")
	jsonl := NewJsonlStorage(path)
	multi := Multi{failingSink{}, jsonl, Nop{}}

	err := multi.PutSnapshots(context.Background(), []model.Snapshot{{Pool: "0xabc", Utilization: "0.00"}})
	if err == nil {
		t.Fatalf("expected error from failing sink")
	}

	got, err := jsonl.ReadSnapshots()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].Pool != "0xabc" {
		t.Fatalf("jsonl sink not written: %+v", got)
	}
}
