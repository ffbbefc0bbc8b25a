package domain

import "context"

// SkillRef is the skill projection embedded in a candidate.
type SkillRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Candidate struct {
	ID          int64      `json:"id"`
	FullName    string     `json:"full_name"`
	DateOfBirth string     `json:"date_of_birth"` // YYYY-MM-DD
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Skills      []SkillRef `json:"skills"`
}

// CandidateInput holds the mutable candidate fields.
type CandidateInput struct {
	FullName    string `json:"full_name" validate:"required,max=80"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Email       string `json:"email" validate:"required,email,max=256"`
	Phone       string `json:"phone" validate:"required,max=20"`
}

// CreateCandidateRequest is the POST /candidates body.
type CreateCandidateRequest struct {
	CandidateInput
	SkillIDs []int64 `json:"skill_ids" binding:"omitempty,dive,gt=0"`
}

// AssignSkillsRequest is the POST /candidates/:id/skills body.
type AssignSkillsRequest struct {
	SkillIDs []int64 `json:"skill_ids" binding:"omitempty,dive,gt=0"`
}

// CandidateExportRequest selects the rows, columns and file format of an export.
type CandidateExportRequest struct {
	Query   CandidateQuery
	Columns []string
	Format  string // xlsx (default) or csv
}

// ExportableColumns lists all columns that can be exported, in default order
var ExportableColumns = []string{
	"id",
	"full_name",
	"date_of_birth",
	"email",
	"phone",
	"skills",
}

type CandidateRepository interface {
	// Query returns one page of candidates matching f and the total match count.
	Query(ctx context.Context, f CandidateFilter) ([]Candidate, int64, error)
	// GetByID returns the candidate with skills ordered by name.
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// Create inserts the candidate and one relation row per skill id atomically.
	Create(ctx context.Context, candidate *Candidate, skillIDs []int64) error
	Update(ctx context.Context, candidate *Candidate) error
	Delete(ctx context.Context, id int64) error
	// AddSkills inserts the missing (candidate, skill) pairs; existing pairs are kept.
	AddSkills(ctx context.Context, candidateID int64, skillIDs []int64) error
	// RemoveSkill deletes one pair and returns ErrNotFound when it does not exist.
	RemoveSkill(ctx context.Context, candidateID, skillID int64) error
}

type CandidateUsecase interface {
	Query(ctx context.Context, q CandidateQuery) (*PaginatedResult[Candidate], error)
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	Create(ctx context.Context, input CandidateInput, skillIDs []int64) (*Candidate, error)
	Update(ctx context.Context, id int64, input CandidateInput) (*Candidate, error)
	Delete(ctx context.Context, id int64) error
	AssignSkills(ctx context.Context, candidateID int64, skillIDs []int64) (*Candidate, error)
	RemoveSkill(ctx context.Context, candidateID, skillID int64) (*Candidate, error)
	// Export renders a query result as a file and returns its bytes and file name.
	Export(ctx context.Context, req CandidateExportRequest) ([]byte, string, error)
}
