package domain

import "context"

// Skill is a flat, name-unique entry in the skill directory.
type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SkillInput is the create/update payload for a skill.
type SkillInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type SkillRepository interface {
	// List returns skills whose name contains query (case-insensitive),
	// ordered by name, along with the total match count.
	List(ctx context.Context, query string, limit, offset int) ([]Skill, int64, error)
	GetByID(ctx context.Context, id int64) (*Skill, error)
	Create(ctx context.Context, skill *Skill) error
	Update(ctx context.Context, skill *Skill) error
	Delete(ctx context.Context, id int64) error
	// ExistingIDs returns the subset of ids that exist.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type SkillUsecase interface {
	List(ctx context.Context, query string, page, pageSize int) (*PaginatedResult[Skill], error)
	GetByID(ctx context.Context, id int64) (*Skill, error)
	Create(ctx context.Context, input SkillInput) (*Skill, error)
	Update(ctx context.Context, id int64, input SkillInput) (*Skill, error)
	Delete(ctx context.Context, id int64) error
}
