package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TasksController handles admin endpoints backed by the task queue.
type TasksController struct {
	client *tasks.Client
}

// NewTasksController creates a new TasksController.
func NewTasksController(client *tasks.Client) *TasksController {
	return &TasksController{client: client}
}

// CleanupOrphanCovers enqueues a sweep of stored cover files that no book
// references anymore. Requires the task queue to be enabled.
// POST /admin/covers/cleanup
func (tc *TasksController) CleanupOrphanCovers(c *gin.Context) {
	if tc.client == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is not enabled")
		return
	}

	ids, err := tc.client.Add(tasks.CleanupOrphanCoversTask{}).Save()
	if err != nil {
		respondInternalError(c, err, "enqueue cover cleanup task")
		return
	}
	zap.L().Info("enqueued cover cleanup task", zap.String("task_id", ids[0]))

	respondAccepted(c, "cleanup task started", gin.H{"task_id": ids[0]})
}

// GetTaskStatus reports the state of a previously enqueued task.
// GET /admin/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.client == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is not enabled")
		return
	}

	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.client.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "look up task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
