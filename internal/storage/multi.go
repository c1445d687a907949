package storage

import (
	"context"
	"errors"

	"liquidityPortal/internal/model"
)

// Multi writes every snapshot batch to all of its sinks.
type Multi []Storage

func (m Multi) PutSnapshots(ctx context.Context, snapshots []model.Snapshot) error {
	var errs []error
	for _, sink := range m {
		if err := sink.PutSnapshots(ctx, snapshots); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
