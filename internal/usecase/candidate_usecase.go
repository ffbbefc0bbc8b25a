package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hr-platform/internal/domain"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/logger"
	"hr-platform/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	skillRepo     domain.SkillRepository
	validate      *validator.Validate
}

func NewCandidateUsecase(candidateRepo domain.CandidateRepository, skillRepo domain.SkillRepository, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		skillRepo:     skillRepo,
		validate:      validate,
	}
}

func (u *candidateUsecase) Query(ctx context.Context, q domain.CandidateQuery) (*domain.PaginatedResult[domain.Candidate], error) {
	f := q.Normalize()

	candidates, total, err := u.candidateRepo.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(candidates, total, f.Page, f.PageSize), nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	candidate, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, candidateNotFound(id)
		}
		return nil, err
	}
	return candidate, nil
}

// Create persists the candidate and its skill links atomically. Unknown skill
// ids are reported before anything is written.
func (u *candidateUsecase) Create(ctx context.Context, input domain.CandidateInput, skillIDs []int64) (*domain.Candidate, error) {
	input = trimInput(input)
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	ids := domain.DedupeIDs(skillIDs)
	missing, err := u.missingSkills(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, apperror.NotFound("Skills not found: " + joinIDs(missing, ", "))
	}

	candidate := newCandidate(0, input)
	if err := u.candidateRepo.Create(ctx, candidate, ids); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.Conflict(fmt.Sprintf("Candidate with email '%s' already exists.", input.Email))
		case errors.Is(err, domain.ErrMissingReference):
			// a skill was deleted after the existence check
			return nil, u.skillsGone(ctx, ids, "Skills not found: ", ", ")
		}
		return nil, err
	}

	logger.Log.Info("candidate created", "candidate_id", candidate.ID, "skills", len(ids))
	return u.GetByID(ctx, candidate.ID)
}

// Update replaces the scalar fields; skill links are left as they are.
func (u *candidateUsecase) Update(ctx context.Context, id int64, input domain.CandidateInput) (*domain.Candidate, error) {
	input = trimInput(input)
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	if err := u.candidateRepo.Update(ctx, newCandidate(id, input)); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, candidateNotFound(id)
		case errors.Is(err, domain.ErrDuplicate):
			return nil, apperror.Conflict(fmt.Sprintf("Email '%s' is already in use.", input.Email))
		}
		return nil, err
	}

	logger.Log.Info("candidate updated", "candidate_id", id)
	return u.GetByID(ctx, id)
}

func (u *candidateUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.candidateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return candidateNotFound(id)
		}
		return err
	}

	logger.Log.Info("candidate deleted", "candidate_id", id)
	return nil
}

// AssignSkills links the given skills to the candidate. Pairs that already
// exist are kept, so repeating a call changes nothing.
func (u *candidateUsecase) AssignSkills(ctx context.Context, candidateID int64, skillIDs []int64) (*domain.Candidate, error) {
	ids := domain.DedupeIDs(skillIDs)
	if len(ids) == 0 {
		return u.GetByID(ctx, candidateID)
	}

	if err := u.ensureCandidate(ctx, candidateID); err != nil {
		return nil, err
	}

	missing, err := u.missingSkills(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, apperror.NotFound("Skill ids not found: " + joinIDs(missing, ","))
	}

	if err := u.candidateRepo.AddSkills(ctx, candidateID, ids); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, candidateNotFound(candidateID)
		case errors.Is(err, domain.ErrMissingReference):
			return nil, u.skillsGone(ctx, ids, "Skill ids not found: ", ",")
		}
		return nil, err
	}

	logger.Log.Info("skills assigned", "candidate_id", candidateID, "skill_ids", ids)
	return u.GetByID(ctx, candidateID)
}

func (u *candidateUsecase) RemoveSkill(ctx context.Context, candidateID, skillID int64) (*domain.Candidate, error) {
	if err := u.ensureCandidate(ctx, candidateID); err != nil {
		return nil, err
	}

	if err := u.candidateRepo.RemoveSkill(ctx, candidateID, skillID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Skill %d not assigned to candidate %d", skillID, candidateID))
		}
		return nil, err
	}

	logger.Log.Info("skill removed", "candidate_id", candidateID, "skill_id", skillID)
	return u.GetByID(ctx, candidateID)
}

func (u *candidateUsecase) ensureCandidate(ctx context.Context, id int64) error {
	exists, err := u.candidateRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return candidateNotFound(id)
	}
	return nil
}

// missingSkills returns the ids with no skill row, in request order.
func (u *candidateUsecase) missingSkills(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	existing, err := u.skillRepo.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return domain.MissingIDs(ids, existing), nil
}

// skillsGone builds the NotFound for a foreign key failure, naming the ids
// that are missing now.
func (u *candidateUsecase) skillsGone(ctx context.Context, ids []int64, prefix, sep string) error {
	missing, err := u.missingSkills(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		missing = ids
	}
	return apperror.NotFound(prefix + joinIDs(missing, sep))
}

func newCandidate(id int64, input domain.CandidateInput) *domain.Candidate {
	return &domain.Candidate{
		ID:          id,
		FullName:    input.FullName,
		DateOfBirth: input.DateOfBirth,
		Email:       input.Email,
		Phone:       input.Phone,
	}
}

func trimInput(input domain.CandidateInput) domain.CandidateInput {
	input.FullName = strings.TrimSpace(input.FullName)
	input.DateOfBirth = strings.TrimSpace(input.DateOfBirth)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	return input
}

func candidateNotFound(id int64) *apperror.AppError {
	return apperror.NotFound(fmt.Sprintf("Candidate %d not found", id))
}

func joinIDs(ids []int64, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, sep)
}
