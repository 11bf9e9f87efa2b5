package task

import (
	"ClaimVault/internal/mq"
	"ClaimVault/internal/repo"
	"ClaimVault/internal/storage"
	"ClaimVault/model"
	"context"
	"encoding/json"
	"errors"
	"time"
)

// CleanupMessage is the payload sent to the worker.
type CleanupMessage struct {
	TaskID  uint64 `json:"task_id"`
	Attempt int    `json:"attempt"`
}

// CreateCleanupTask records an orphaned object and enqueues its removal.
// The row is the write-ahead record: even when publishing fails the orphan
// stays observable as a pending task instead of being silently lost.
func CreateCleanupTask(bucket, objectName, reason string) (*model.CleanupTask, error) {
	task := &model.CleanupTask{
		Bucket:     bucket,
		ObjectName: objectName,
		Reason:     reason,
		Status:     "pending",
	}
	if err := repo.Db.Create(task).Error; err != nil {
		return nil, err
	}
	msg := CleanupMessage{
		TaskID:  task.ID,
		Attempt: 0,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		markCleanupTaskFailed(task.ID, err)
		return nil, err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		markCleanupTaskFailed(task.ID, err)
		return nil, err
	}
	if err := publisher.PublishTask(context.Background(), body); err != nil {
		markCleanupTaskFailed(task.ID, err)
		return nil, err
	}
	return task, nil
}

// ProcessCleanupTask removes the orphaned object for one task.
func ProcessCleanupTask(ctx context.Context, taskID uint64) error {
	var t model.CleanupTask
	if err := repo.Db.First(&t, taskID).Error; err != nil {
		return err
	}
	if t.Status == "done" {
		return nil
	}
	if storage.Default == nil {
		return errors.New("storage not initialized")
	}
	if err := repo.Db.Model(&model.CleanupTask{}).
		Where("id = ?", t.ID).
		Update("status", "running").Error; err != nil {
		return err
	}
	if err := storage.Default.RemoveObject(ctx, t.Bucket, t.ObjectName); err != nil {
		return err
	}
	finishedAt := time.Now()
	return repo.Db.Model(&model.CleanupTask{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"status":      "done",
			"finished_at": &finishedAt,
		}).Error
}

// ListCleanupTasks lists recent cleanup tasks.
func ListCleanupTasks(limit int) ([]model.CleanupTask, error) {
	if limit <= 0 {
		limit = 50
	}
	var tasks []model.CleanupTask
	if err := repo.Db.
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func markCleanupTaskFailed(taskID uint64, cause error) {
	finishedAt := time.Now()
	repo.Db.Model(&model.CleanupTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":      "failed",
			"error_msg":   cause.Error(),
			"finished_at": &finishedAt,
		})
}
