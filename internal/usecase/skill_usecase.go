package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hr-platform/internal/domain"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/logger"
	"hr-platform/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type skillUsecase struct {
	skillRepo domain.SkillRepository
	validate  *validator.Validate
}

func NewSkillUsecase(skillRepo domain.SkillRepository, validate *validator.Validate) domain.SkillUsecase {
	return &skillUsecase{
		skillRepo: skillRepo,
		validate:  validate,
	}
}

func (u *skillUsecase) List(ctx context.Context, query string, page, pageSize int) (*domain.PaginatedResult[domain.Skill], error) {
	page, pageSize = domain.NormalizePage(page, pageSize)

	skills, total, err := u.skillRepo.List(ctx, strings.TrimSpace(query), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(skills, total, page, pageSize), nil
}

func (u *skillUsecase) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	skill, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, skillNotFound(id)
		}
		return nil, err
	}
	return skill, nil
}

func (u *skillUsecase) Create(ctx context.Context, input domain.SkillInput) (*domain.Skill, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	skill := &domain.Skill{Name: input.Name}
	if err := u.skillRepo.Create(ctx, skill); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, skillConflict(input.Name)
		}
		return nil, err
	}

	logger.Log.Info("skill created", "skill_id", skill.ID)
	return skill, nil
}

func (u *skillUsecase) Update(ctx context.Context, id int64, input domain.SkillInput) (*domain.Skill, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	skill := &domain.Skill{ID: id, Name: input.Name}
	if err := u.skillRepo.Update(ctx, skill); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, skillNotFound(id)
		case errors.Is(err, domain.ErrDuplicate):
			return nil, skillConflict(input.Name)
		}
		return nil, err
	}

	logger.Log.Info("skill updated", "skill_id", id)
	return skill, nil
}

func (u *skillUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.skillRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return skillNotFound(id)
		}
		return err
	}

	logger.Log.Info("skill deleted", "skill_id", id)
	return nil
}

func skillNotFound(id int64) *apperror.AppError {
	return apperror.NotFound(fmt.Sprintf("Skill %d not found", id))
}

func skillConflict(name string) *apperror.AppError {
	return apperror.Conflict(fmt.Sprintf("Skill '%s' already exists.", name))
}
