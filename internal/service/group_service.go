package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

type GroupService struct {
	groupRepo repository.GroupRepository
}

type CreateGroupInput struct {
	CreatorID   uint
	Title       string
	Slug        string
	Description string
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *GroupService) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	title := strings.TrimSpace(in.Title)
	slug := strings.TrimSpace(in.Slug)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if slug == "" {
		return nil, models.NewValidationError("Slug is required")
	}

	group := &models.Group{
		Title:       title,
		Slug:        slug,
		Description: in.Description,
		CreatorID:   in.CreatorID,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group. Only the creator may do this; the group's
// posts survive with their group reference cleared.
func (s *GroupService) DeleteGroup(ctx context.Context, userID, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID != userID {
		return models.NewUnauthorizedError("Only the group creator can delete it")
	}
	return s.groupRepo.Delete(ctx, groupID)
}
