package service

import (
	"ModelHub/config"
	"ModelHub/internal/dto"
	"ModelHub/internal/repo"
	"ModelHub/internal/storage"
	"ModelHub/model"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

// CleanupScheduler takes over storage keys whose removal failed.
type CleanupScheduler interface {
	ScheduleCleanup(ctx context.Context, storageKey, reason string) error
}

// Cleanup is nil unless the cleanup queue is enabled.
var Cleanup CleanupScheduler

// ListModels returns every model ordered by id.
func ListModels(ctx context.Context) ([]model.Model3D, error) {
	var models []model.Model3D
	err := repo.Db.WithContext(ctx).Order("id ASC").Find(&models).Error
	return models, err
}

// ListModelsByUser returns the models owned by userID.
func ListModelsByUser(ctx context.Context, userID uint64) ([]model.Model3D, error) {
	var models []model.Model3D
	err := repo.Db.WithContext(ctx).Where("id_usuario = ?", userID).Order("id ASC").Find(&models).Error
	return models, err
}

// ListModelsByCategory returns the models filed under categoryID.
func ListModelsByCategory(ctx context.Context, categoryID uint64) ([]model.Model3D, error) {
	var models []model.Model3D
	err := repo.Db.WithContext(ctx).Where("id_categoria = ?", categoryID).Order("id ASC").Find(&models).Error
	return models, err
}

// GetModel loads a model by id.
func GetModel(ctx context.Context, modelID uint64) (*model.Model3D, error) {
	var m model.Model3D
	if err := repo.Db.WithContext(ctx).Where("id = ?", modelID).First(&m).Error; err != nil {
		return nil, translate(err, "modelo")
	}
	return &m, nil
}

// UploadModel stores the file and then records the model. The file goes first
// so a committed row always has its bytes; a failed insert removes the file again.
func UploadModel(ctx context.Context, req *dto.UploadModelRequest) (*model.Model3D, error) {
	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		return nil, invalid("archivo requerido")
	}
	if req.UserID == nil {
		return nil, invalid("id_usuario requerido")
	}
	if req.Reader == nil {
		return nil, invalid("archivo vacío")
	}
	if limit := config.AppConfig.MaxUploadBytes; limit > 0 && req.Size > limit {
		return nil, UploadTooLarge(limit)
	}
	categoryID := model.FallbackCategoryID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}

	if _, err := GetUser(ctx, *req.UserID); err != nil {
		return nil, err
	}
	if _, err := GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	if storage.Default == nil {
		return nil, errors.New("storage not initialized")
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := storage.NewKey(fileName)
	if err := storage.Default.Put(ctx, key, req.Reader, req.Size, contentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	m := &model.Model3D{
		FileName:    fileName,
		StorageKey:  key,
		Size:        req.Size,
		ContentType: contentType,
		Description: req.Description,
		UserID:      *req.UserID,
		CategoryID:  categoryID,
	}
	if err := repo.Db.WithContext(ctx).Create(m).Error; err != nil {
		// 数据库写入失败时回滚已经写入的文件
		if rmErr := storage.Default.Remove(context.WithoutCancel(ctx), key); rmErr != nil {
			slog.Error("remove file after failed insert", "storage_key", key, "error", rmErr)
			scheduleCleanup(ctx, key, "insert failed")
		}
		return nil, err
	}
	slog.Info("model uploaded", "model_id", m.ID, "user_id", m.UserID, "storage_key", key, "size", m.Size)
	return m, nil
}

// DeleteModel removes the model row (and its ratings) and then its file. The
// row goes first so no visible model is ever left without bytes; a file that
// cannot be removed is handed to the cleanup queue.
func DeleteModel(ctx context.Context, modelID uint64) error {
	var m model.Model3D
	err := repo.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", modelID).First(&m).Error; err != nil {
			return translate(err, "modelo")
		}
		if err := tx.Where("id_modelo = ?", modelID).Delete(&model.Rating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
	if err != nil {
		return err
	}

	if storage.Default == nil {
		return errors.New("storage not initialized")
	}
	if err := storage.Default.Remove(ctx, m.StorageKey); err != nil {
		slog.Error("remove model file", "model_id", modelID, "storage_key", m.StorageKey, "error", err)
		scheduleCleanup(ctx, m.StorageKey, "delete failed: "+err.Error())
	}
	slog.Info("model deleted", "model_id", modelID, "storage_key", m.StorageKey)
	return nil
}

// UploadTooLarge is the error for an upload over limit bytes.
func UploadTooLarge(limit int64) error {
	return invalid(fmt.Sprintf("archivo demasiado grande (máximo %d bytes)", limit))
}

func scheduleCleanup(ctx context.Context, key, reason string) {
	if Cleanup == nil {
		return
	}
	if err := Cleanup.ScheduleCleanup(context.WithoutCancel(ctx), key, reason); err != nil {
		slog.Error("schedule storage cleanup", "storage_key", key, "error", err)
	}
}

// OpenModelFile opens the stored bytes of the most recent model uploaded as name.
func OpenModelFile(ctx context.Context, name string) (io.ReadCloser, *model.Model3D, error) {
	var m model.Model3D
	err := repo.Db.WithContext(ctx).
		Where("nombre_archivo = ?", name).
		Order("id DESC").
		First(&m).Error
	if err != nil {
		return nil, nil, translate(err, "archivo")
	}
	if storage.Default == nil {
		return nil, nil, errors.New("storage not initialized")
	}
	body, _, err := storage.Default.Get(ctx, m.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, notFound("archivo")
		}
		return nil, nil, err
	}
	return body, &m, nil
}
