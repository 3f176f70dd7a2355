package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

type BlacklistService struct {
	repo  *repositories.BlacklistRepo
	audit *audit.Service
	log   *zap.Logger
}

func NewBlacklistService(repo *repositories.BlacklistRepo, auditSvc *audit.Service, log *zap.Logger) *BlacklistService {
	return &BlacklistService{repo: repo, audit: auditSvc, log: log}
}

func (s *BlacklistService) Create(ctx context.Context, actor audit.Actor, e *models.BlacklistEntry) error {
	if e.SubjectName == "" {
		return fmt.Errorf("subjectName is required")
	}
	if e.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	e.AddedBy = actor.ID
	e.AddedByName = actor.Name

	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "BlacklistEntry",
		EntityID:        e.ID,
		EntityName:      e.SubjectName,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return nil
}

func (s *BlacklistService) GetByID(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BlacklistService) List(ctx context.Context, search string, limit, offset int) ([]models.BlacklistEntry, error) {
	return s.repo.List(ctx, search, limit, offset)
}

func (s *BlacklistService) Delete(ctx context.Context, id uuid.UUID, actor audit.Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionDelete,
		EntityType:      "BlacklistEntry",
		EntityID:        existing.ID,
		EntityName:      existing.SubjectName,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return nil
}
