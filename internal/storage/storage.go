package storage

import (
	"context"

	"liquidityPortal/internal/model"
)

// Storage defines a sink for pool snapshots.
type Storage interface {
	PutSnapshots(ctx context.Context, snapshots []model.Snapshot) error
}

// Nop discards every snapshot.
type Nop struct{}

func (Nop) PutSnapshots(context.Context, []model.Snapshot) error {
	return nil
}
