package service

import (
	"ModelHub/internal/repo"
	"ModelHub/internal/storage"
	"ModelHub/model"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const reconcileLockKey = "lock:storage:reconcile"

// ReconcileReport summarizes one orphan sweep.
type ReconcileReport struct {
	Scanned int `json:"scanned"`
	Removed int `json:"removed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// ReconcileStorage removes stored objects that no model references. Objects
// younger than grace are kept because their upload may not have committed its
// row yet. With Redis configured only one instance sweeps at a time.
func ReconcileStorage(ctx context.Context, grace time.Duration) (*ReconcileReport, error) {
	if storage.Default == nil {
		return nil, errors.New("storage not initialized")
	}
	if repo.Redis != nil {
		lock := repo.NewRedisLock(repo.Redis, reconcileLockKey, 30*time.Minute)
		if err := lock.Lock(ctx); err != nil {
			return nil, fmt.Errorf("acquire reconcile lock: %w", err)
		}
		defer func() {
			if err := lock.Unlock(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("release reconcile lock", "error", err)
			}
		}()
	}

	objects, err := storage.Default.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	var keys []string
	if err := repo.Db.WithContext(ctx).Model(&model.Model3D{}).Pluck("clave_almacen", &keys).Error; err != nil {
		return nil, err
	}
	referenced := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		referenced[k] = struct{}{}
	}

	report := &ReconcileReport{Scanned: len(objects)}
	cutoff := time.Now().Add(-grace)
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if !obj.LastModified.IsZero() && obj.LastModified.After(cutoff) {
			report.Skipped++
			continue
		}
		if err := storage.Default.Remove(ctx, obj.Key); err != nil {
			slog.Error("remove orphan object", "storage_key", obj.Key, "error", err)
			report.Failed++
			continue
		}
		report.Removed++
	}
	slog.Info("storage reconciled",
		"scanned", report.Scanned,
		"removed", report.Removed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

// IsStorageKeyReferenced reports whether a model row still points at key.
func IsStorageKeyReferenced(ctx context.Context, key string) (bool, error) {
	var count int64
	err := repo.Db.WithContext(ctx).Model(&model.Model3D{}).Where("clave_almacen = ?", key).Count(&count).Error
	return count > 0, err
}
