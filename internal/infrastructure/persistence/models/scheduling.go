package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/docgen/backend/internal/domain/scheduling"
	"github.com/docgen/backend/internal/domain/shared"
)

// DeferredJobModel is the GORM model for deferred_jobs table
type DeferredJobModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Handler   string    `gorm:"type:varchar(100);not null;index"`
	Queue     string    `gorm:"type:varchar(50);index"`
	Payload   []byte    `gorm:"type:jsonb"`
	RunAt     time.Time `gorm:"column:run_at;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for DeferredJobModel
func (DeferredJobModel) TableName() string {
	return "deferred_jobs"
}

// ToDomain converts DeferredJobModel to domain DeferredJob
func (m *DeferredJobModel) ToDomain() (*scheduling.DeferredJob, error) {
	payload := make(map[string]any)
	if len(m.Payload) > 0 {
		if err := json.Unmarshal(m.Payload, &payload); err != nil {
			return nil, err
		}
	}
	return &scheduling.DeferredJob{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Handler: m.Handler,
		Queue:   m.Queue,
		Payload: payload,
		RunAt:   m.RunAt,
		Status:  scheduling.JobStatus(m.Status),
	}, nil
}

// DeferredJobModelFromDomain creates a DeferredJobModel from domain DeferredJob
func DeferredJobModelFromDomain(j *scheduling.DeferredJob) (*DeferredJobModel, error) {
	payload, err := json.Marshal(j.Payload)
	if err != nil {
		return nil, err
	}
	return &DeferredJobModel{
		ID:        j.ID,
		Handler:   j.Handler,
		Queue:     j.Queue,
		Payload:   payload,
		RunAt:     j.RunAt,
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}, nil
}
