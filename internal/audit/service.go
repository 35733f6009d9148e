package audit

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			zap.L().Error("failed to log audit event",
				zap.String("action", event.Action),
				zap.Error(err))
		}
	}()
}

// LogCreate records a creation event for a catalog entity.
func (s *Service) LogCreate(entityType string, entityID uint, name, ip string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: truncate("Created "+entityType+": "+name, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		IPAddress:   ip,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogUpdate records an update event for a catalog entity.
func (s *Service) LogUpdate(entityType string, entityID uint, name, ip string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventUpdate,
		Action:      entityType + "_update",
		Description: truncate("Updated "+entityType+": "+name, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		IPAddress:   ip,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogDelete records a deletion event for a catalog entity.
func (s *Service) LogDelete(entityType string, entityID uint, name, ip string) {
	s.LogAsync(&entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: truncate("Deleted "+entityType+": "+name, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		IPAddress:   ip,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogCoverUpload records a successful cover image upload for a book.
func (s *Service) LogCoverUpload(bookID uint, title, filename string, size int64, ip string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventUpload,
		Action:      "book_cover_upload",
		Description: truncate("Uploaded cover for book: "+title, 500),
		EntityType:  "book",
		EntityID:    &bookID,
		IPAddress:   ip,
		Status:      entities.AuditStatusSuccess,
	}

	metadata := map[string]any{
		"filename":   filename,
		"size_bytes": size,
	}
	if mdBytes, err := json.Marshal(metadata); err == nil {
		event.Metadata = string(mdBytes)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
