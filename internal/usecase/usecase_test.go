package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hr-platform/internal/domain"
	"hr-platform/internal/usecase"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Query(ctx context.Context, f domain.CandidateFilter) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate, skillIDs []int64) error {
	return m.Called(ctx, c, skillIDs).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) AddSkills(ctx context.Context, candidateID int64, skillIDs []int64) error {
	return m.Called(ctx, candidateID, skillIDs).Error(0)
}

func (m *MockCandidateRepo) RemoveSkill(ctx context.Context, candidateID, skillID int64) error {
	return m.Called(ctx, candidateID, skillID).Error(0)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) List(ctx context.Context, query string, limit, offset int) ([]domain.Skill, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Skill), args.Get(1).(int64), args.Error(2)
}

func (m *MockSkillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockSkillRepo) Create(ctx context.Context, s *domain.Skill) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSkillRepo) Update(ctx context.Context, s *domain.Skill) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSkillRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSkillRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func validInput() domain.CandidateInput {
	return domain.CandidateInput{
		FullName:    "Ana Petrović",
		DateOfBirth: "1997-12-01",
		Email:       "ana@example.com",
		Phone:       "+38160123456",
	}
}

func requireAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func TestCandidateQueryPassesNormalizedFilter(t *testing.T) {
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockSkillRepo), validation.Validator())
	ctx := context.Background()

	want := domain.CandidateFilter{
		Name:     "ana",
		SkillIDs: []int64{2, 1},
		Match:    domain.MatchAll,
		SortBy:   domain.SortByEmail,
		SortDir:  domain.SortDesc,
		Page:     1,
		PageSize: 20,
	}
	candidateRepo.On("Query", ctx, want).Return([]domain.Candidate{{ID: 7}}, int64(41), nil)

	result, err := uc.Query(ctx, domain.CandidateQuery{
		Name: " ana ", SkillIDs: []int64{2, 1, 2}, Match: "All",
		Page: 0, PageSize: 500, SortBy: "EMAIL", SortDir: "desc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(41), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Len(t, result.Data, 1)
	candidateRepo.AssertExpectations(t)
}

func TestCandidateCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject invalid input before touching the store", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		input := validInput()
		input.Email = "not-an-email"
		_, err := uc.Create(ctx, input, nil)
		requireAppError(t, err, http.StatusBadRequest, "")
		assert.Contains(t, err.Error(), "Email")
		candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should list every missing skill id in request order", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		skillRepo.On("ExistingIDs", ctx, []int64{9, 1, 3}).Return([]int64{1}, nil)

		_, err := uc.Create(ctx, validInput(), []int64{9, 1, 3, 9})
		requireAppError(t, err, http.StatusNotFound, "Skills not found: 9, 3")
		candidateRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should translate a duplicate email into Conflict", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		candidateRepo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate"), []int64(nil)).
			Return(domain.ErrDuplicate)

		input := validInput()
		input.Email = "  ANA@example.com "
		_, err := uc.Create(ctx, input, nil)
		requireAppError(t, err, http.StatusConflict, "Candidate with email 'ANA@example.com' already exists.")
	})

	t.Run("Should translate a vanished skill into NotFound", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		skillRepo.On("ExistingIDs", ctx, []int64{4, 5}).Return([]int64{4, 5}, nil).Once()
		candidateRepo.On("Create", ctx, mock.Anything, []int64{4, 5}).Return(domain.ErrMissingReference)
		skillRepo.On("ExistingIDs", ctx, []int64{4, 5}).Return([]int64{4}, nil).Once()

		_, err := uc.Create(ctx, validInput(), []int64{4, 5})
		requireAppError(t, err, http.StatusNotFound, "Skills not found: 5")
	})

	t.Run("Should return the stored projection", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		skillRepo.On("ExistingIDs", ctx, []int64{1}).Return([]int64{1}, nil)
		candidateRepo.On("Create", ctx, mock.Anything, []int64{1}).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Candidate).ID = 12
			}).
			Return(nil)
		stored := &domain.Candidate{ID: 12, FullName: "Ana Petrović", Skills: []domain.SkillRef{{ID: 1, Name: "C#"}}}
		candidateRepo.On("GetByID", ctx, int64(12)).Return(stored, nil)

		got, err := uc.Create(ctx, validInput(), []int64{1})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("Should pass unclassified store errors through", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		boom := errors.New("connection reset")
		candidateRepo.On("Create", ctx, mock.Anything, []int64(nil)).Return(boom)

		_, err := uc.Create(ctx, validInput(), nil)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCandidateUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report a missing candidate", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockSkillRepo), validation.Validator())

		candidateRepo.On("Update", ctx, mock.Anything).Return(domain.ErrNotFound)

		_, err := uc.Update(ctx, 5, validInput())
		requireAppError(t, err, http.StatusNotFound, "Candidate 5 not found")
	})

	t.Run("Should report an email already in use", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockSkillRepo), validation.Validator())

		candidateRepo.On("Update", ctx, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.Update(ctx, 5, validInput())
		requireAppError(t, err, http.StatusConflict, "Email 'ana@example.com' is already in use.")
	})
}

func TestCandidateAssignSkills(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the current projection for an empty list", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		candidateRepo.On("GetByID", ctx, int64(3)).Return(&domain.Candidate{ID: 3}, nil)

		got, err := uc.AssignSkills(ctx, 3, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.ID)
		candidateRepo.AssertNotCalled(t, "AddSkills", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should require the candidate", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, new(MockSkillRepo), validation.Validator())

		candidateRepo.On("Exists", ctx, int64(3)).Return(false, nil)

		_, err := uc.AssignSkills(ctx, 3, []int64{1})
		requireAppError(t, err, http.StatusNotFound, "Candidate 3 not found")
	})

	t.Run("Should fail atomically on unknown skills", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		candidateRepo.On("Exists", ctx, int64(3)).Return(true, nil)
		skillRepo.On("ExistingIDs", ctx, []int64{4, 1, 5}).Return([]int64{1}, nil)

		_, err := uc.AssignSkills(ctx, 3, []int64{4, 1, 5})
		requireAppError(t, err, http.StatusNotFound, "Skill ids not found: 4,5")
		candidateRepo.AssertNotCalled(t, "AddSkills", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should map a candidate deleted mid-flight to NotFound", func(t *testing.T) {
		candidateRepo := new(MockCandidateRepo)
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewCandidateUsecase(candidateRepo, skillRepo, validation.Validator())

		candidateRepo.On("Exists", ctx, int64(3)).Return(true, nil)
		skillRepo.On("ExistingIDs", ctx, []int64{1}).Return([]int64{1}, nil)
		candidateRepo.On("AddSkills", ctx, int64(3), []int64{1}).Return(domain.ErrNotFound)

		_, err := uc.AssignSkills(ctx, 3, []int64{1})
		requireAppError(t, err, http.StatusNotFound, "Candidate 3 not found")
	})
}

func TestCandidateRemoveSkill(t *testing.T) {
	ctx := context.Background()
	candidateRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(candidateRepo, new(MockSkillRepo), validation.Validator())

	candidateRepo.On("Exists", ctx, int64(2)).Return(true, nil)
	candidateRepo.On("RemoveSkill", ctx, int64(2), int64(8)).Return(domain.ErrNotFound)

	_, err := uc.RemoveSkill(ctx, 2, 8)
	requireAppError(t, err, http.StatusNotFound, "Skill 8 not assigned to candidate 2")
}

func TestSkillUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should normalize paging into limit and offset", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(skillRepo, validation.Validator())

		skillRepo.On("List", ctx, "go", 20, 0).Return([]domain.Skill{{ID: 1, Name: "Go"}}, int64(1), nil)

		result, err := uc.List(ctx, "  go ", -1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
		skillRepo.AssertExpectations(t)
	})

	t.Run("Should trim and reject blank names", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(skillRepo, validation.Validator())

		_, err := uc.Create(ctx, domain.SkillInput{Name: "   "})
		requireAppError(t, err, http.StatusBadRequest, "Name is required")
	})

	t.Run("Should translate duplicates into Conflict", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(skillRepo, validation.Validator())

		skillRepo.On("Create", ctx, &domain.Skill{Name: "docker"}).Return(domain.ErrDuplicate)

		_, err := uc.Create(ctx, domain.SkillInput{Name: " docker "})
		requireAppError(t, err, http.StatusConflict, "Skill 'docker' already exists.")
	})

	t.Run("Should report missing skills on update and delete", func(t *testing.T) {
		skillRepo := new(MockSkillRepo)
		uc := usecase.NewSkillUsecase(skillRepo, validation.Validator())

		skillRepo.On("Update", ctx, &domain.Skill{ID: 4, Name: "Go"}).Return(domain.ErrNotFound)
		skillRepo.On("Delete", ctx, int64(4)).Return(domain.ErrNotFound)
		skillRepo.On("GetByID", ctx, int64(4)).Return(nil, domain.ErrNotFound)

		_, err := uc.Update(ctx, 4, domain.SkillInput{Name: "Go"})
		requireAppError(t, err, http.StatusNotFound, "Skill 4 not found")

		err = uc.Delete(ctx, 4)
		requireAppError(t, err, http.StatusNotFound, "Skill 4 not found")

		_, err = uc.GetByID(ctx, 4)
		requireAppError(t, err, http.StatusNotFound, "Skill 4 not found")
	})
}
