package usecase

import (
	"context"
	"fmt"
	"strings"

	"hr-platform/internal/domain"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/logger"
)

// SeedSkills are created on first start when seeding is enabled.
var SeedSkills = []string{
	"C#", "Java", "SQL", "JavaScript", "React", "ASP.NET Core", "Docker", "PostgreSQL",
}

// SeedCandidate is a demo candidate with skills referenced by name.
type SeedCandidate struct {
	Input  domain.CandidateInput
	Skills []string
}

var SeedCandidates = []SeedCandidate{
	{
		Input: domain.CandidateInput{
			FullName:    "Mirko Poledica",
			DateOfBirth: "2002-05-26",
			Email:       "mirkop@example.com",
			Phone:       "225883",
		},
		Skills: []string{"C#", "PostgreSQL"},
	},
	{
		Input: domain.CandidateInput{
			FullName:    "Ana Petrović",
			DateOfBirth: "1997-12-01",
			Email:       "ana@example.com",
			Phone:       "+38160123456",
		},
		Skills: []string{"ASP.NET Core", "C#", "Docker"},
	},
	{
		Input: domain.CandidateInput{
			FullName:    "Marko Marković",
			DateOfBirth: "1995-11-02",
			Email:       "marko@example.com",
			Phone:       "+38162123456",
		},
		Skills: []string{"Java", "SQL"},
	},
}

// Seeder inserts the demo directory through the usecases, so it works on any
// store. Running it again only fills in what is missing.
type Seeder struct {
	skills     domain.SkillUsecase
	candidates domain.CandidateUsecase
}

func NewSeeder(skills domain.SkillUsecase, candidates domain.CandidateUsecase) *Seeder {
	return &Seeder{skills: skills, candidates: candidates}
}

func (s *Seeder) Seed(ctx context.Context) error {
	skillIDs := make(map[string]int64, len(SeedSkills))
	for _, name := range SeedSkills {
		id, err := s.ensureSkill(ctx, name)
		if err != nil {
			return fmt.Errorf("seed skill %q: %w", name, err)
		}
		skillIDs[strings.ToLower(name)] = id
	}

	for _, sc := range SeedCandidates {
		ids := make([]int64, 0, len(sc.Skills))
		for _, name := range sc.Skills {
			ids = append(ids, skillIDs[strings.ToLower(name)])
		}
		if err := s.ensureCandidate(ctx, sc.Input, ids); err != nil {
			return fmt.Errorf("seed candidate %q: %w", sc.Input.Email, err)
		}
	}

	logger.Log.Info("seed completed", "skills", len(SeedSkills), "candidates", len(SeedCandidates))
	return nil
}

func (s *Seeder) ensureSkill(ctx context.Context, name string) (int64, error) {
	skill, err := s.skills.Create(ctx, domain.SkillInput{Name: name})
	if err == nil {
		return skill.ID, nil
	}
	if !apperror.IsConflict(err) {
		return 0, err
	}

	found, err := s.skills.List(ctx, name, 1, domain.MaxPageSize)
	if err != nil {
		return 0, err
	}
	for _, sk := range found.Data {
		if strings.EqualFold(sk.Name, name) {
			return sk.ID, nil
		}
	}
	return 0, fmt.Errorf("skill %q reported as duplicate but not found", name)
}

func (s *Seeder) ensureCandidate(ctx context.Context, input domain.CandidateInput, skillIDs []int64) error {
	_, err := s.candidates.Create(ctx, input, skillIDs)
	if err == nil || !apperror.IsConflict(err) {
		return err
	}

	// Candidate already there: make sure the seeded links exist too.
	found, err := s.candidates.Query(ctx, domain.CandidateQuery{Name: input.FullName, PageSize: domain.MaxPageSize})
	if err != nil {
		return err
	}
	for _, c := range found.Data {
		if strings.EqualFold(c.Email, input.Email) {
			_, err := s.candidates.AssignSkills(ctx, c.ID, skillIDs)
			return err
		}
	}
	// The email belongs to someone else; leave that record alone.
	return nil
}
