// Package store provides GORM-backed persistence for tasks, change
// requests, SLA policies, owners and archives. The enrichment pipeline
// never touches the store directly: callers load a working copy, enrich
// it, and either write the resolved fields back explicitly or discard
// them.
package store

import (
	"errors"
	"fmt"

	"github.com/zulandar/followup/internal/models"
	"github.com/zulandar/followup/internal/pipeline"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

// Store wraps a GORM connection.
type Store struct {
	db *gorm.DB
}

// New wraps an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ListFilters narrows Tasks output. Zero values mean no filter.
type ListFilters struct {
	Unit     string
	Owner    string
	Status   string
	Priority string
	Week     int
}

// CreateTask inserts a task. Title is required; everything else may be
// empty and degrades gracefully downstream.
func (s *Store) CreateTask(t *models.Task) error {
	if t.Title == "" {
		return fmt.Errorf("store: task title is required")
	}
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("store: create task: %w", err)
	}
	return nil
}

// CreateTasks inserts a batch of tasks in one transaction.
func (s *Store) CreateTasks(tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if err := s.db.Create(&tasks).Error; err != nil {
		return fmt.Errorf("store: create %d tasks: %w", len(tasks), err)
	}
	return nil
}

// GetTask fetches one task by ID.
func (s *Store) GetTask(id uint) (*models.Task, error) {
	var t models.Task
	if err := s.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("store: get task %d: %w", id, err)
	}
	return &t, nil
}

// Tasks lists tasks matching the filters, ordered by unit then due date.
func (s *Store) Tasks(f ListFilters) ([]models.Task, error) {
	q := s.db.Model(&models.Task{})
	if f.Unit != "" {
		q = q.Where("unit = ?", f.Unit)
	}
	if f.Owner != "" {
		q = q.Where("owner = ?", f.Owner)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Week != 0 {
		q = q.Where("week = ?", f.Week)
	}
	var tasks []models.Task
	if err := q.Order("unit ASC, due_date ASC, id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	return tasks, nil
}

// TasksByID fetches the given tasks, preserving no particular order.
// Unknown IDs are skipped silently.
func (s *Store) TasksByID(ids []uint) ([]models.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tasks []models.Task
	if err := s.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("store: tasks by id: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies the given column updates to a task.
func (s *Store) UpdateTask(id uint, updates map[string]interface{}) error {
	res := s.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("store: update task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	return nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(id uint) error {
	res := s.db.Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("store: delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: task %d", ErrNotFound, id)
	}
	return nil
}

// ChangeRequests returns the full change-request table.
func (s *Store) ChangeRequests() ([]models.ChangeRequest, error) {
	var crs []models.ChangeRequest
	if err := s.db.Find(&crs).Error; err != nil {
		return nil, fmt.Errorf("store: list change requests: %w", err)
	}
	return crs, nil
}

// CreateChangeRequest inserts a change request.
func (s *Store) CreateChangeRequest(cr *models.ChangeRequest) error {
	if cr.ID == "" {
		return fmt.Errorf("store: change request id is required")
	}
	if err := s.db.Create(cr).Error; err != nil {
		return fmt.Errorf("store: create change request %s: %w", cr.ID, err)
	}
	return nil
}

// Policies returns the full SLA policy table.
func (s *Store) Policies() ([]models.SLAPolicy, error) {
	var rows []models.SLAPolicy
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list sla policies: %w", err)
	}
	return rows, nil
}

// CreateOwner adds a directory entry. Name is required and unique.
func (s *Store) CreateOwner(o *models.Owner) error {
	if o.Name == "" {
		return fmt.Errorf("store: owner name is required")
	}
	if err := s.db.Create(o).Error; err != nil {
		return fmt.Errorf("store: create owner %q: %w", o.Name, err)
	}
	return nil
}

// Owners lists the owner directory, sorted by name.
func (s *Store) Owners() ([]models.Owner, error) {
	var rows []models.Owner
	if err := s.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list owners: %w", err)
	}
	return rows, nil
}

// CreateArchive records a workbook snapshot.
func (s *Store) CreateArchive(a *models.Archive) error {
	if a.Title == "" {
		return fmt.Errorf("store: archive title is required")
	}
	if err := s.db.Create(a).Error; err != nil {
		return fmt.Errorf("store: create archive %q: %w", a.Title, err)
	}
	return nil
}

// Archives lists recorded archives, newest first.
func (s *Store) Archives() ([]models.Archive, error) {
	var rows []models.Archive
	if err := s.db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: list archives: %w", err)
	}
	return rows, nil
}

// SaveEnriched writes the resolved fields of enriched rows back to the
// stored tasks: due date, approval status/by and SLA target-days. Rows
// whose task has no ID (not yet persisted) are skipped. Last write
// wins; callers opt into this explicitly.
func (s *Store) SaveEnriched(rows []pipeline.Row) error {
	for _, r := range rows {
		if r.Task.ID == 0 {
			continue
		}
		updates := map[string]interface{}{
			"due_date":        r.Task.DueDate,
			"approval_status": r.Task.ApprovalStatus,
			"approval_by":     r.Task.ApprovalBy,
			"sla_target_days": r.Task.SLATargetDays,
		}
		if err := s.db.Model(&models.Task{}).Where("id = ?", r.Task.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("store: save enriched task %d: %w", r.Task.ID, err)
		}
	}
	return nil
}
