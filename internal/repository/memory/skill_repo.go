package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"hr-platform/internal/domain"
)

type skillRepo struct {
	store *Store
}

func NewSkillRepository(store *Store) domain.SkillRepository {
	return &skillRepo{store: store}
}

func (r *skillRepo) List(ctx context.Context, query string, limit, offset int) ([]domain.Skill, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(query))
	var matched []domain.Skill
	for _, sk := range r.store.skills {
		if term == "" || strings.Contains(strings.ToLower(sk.name), term) {
			matched = append(matched, domain.Skill{ID: sk.id, Name: sk.name})
		}
	}
	slices.SortFunc(matched, func(a, b domain.Skill) int {
		if c := compareFold(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return page(matched, limit, offset), int64(len(matched)), nil
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sk, ok := r.store.skills[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.Skill{ID: sk.id, Name: sk.name}, nil
}

func (r *skillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.nameTaken(skill.Name, 0) {
		return fmt.Errorf("%w: skill name %q", domain.ErrDuplicate, skill.Name)
	}
	r.store.nextSkillID++
	skill.ID = r.store.nextSkillID
	r.store.skills[skill.ID] = &skillRow{id: skill.ID, name: skill.Name}
	return nil
}

func (r *skillRepo) Update(ctx context.Context, skill *domain.Skill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.skills[skill.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(skill.Name, skill.ID) {
		return fmt.Errorf("%w: skill name %q", domain.ErrDuplicate, skill.Name)
	}
	row.name = skill.Name
	return nil
}

// Delete removes the skill and every relation row pointing at it.
func (r *skillRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.skills[id]; !ok {
		return domain.ErrNotFound
	}
	for candidateID := range r.store.candidatesBySkill[id] {
		delete(r.store.skillsByCandidate[candidateID], id)
	}
	delete(r.store.candidatesBySkill, id)
	delete(r.store.skills, id)
	return nil
}

func (r *skillRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var existing []int64
	for _, id := range ids {
		if _, ok := r.store.skills[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

// nameTaken reports whether another skill already uses name, ignoring case.
// Callers hold the write lock.
func (r *skillRepo) nameTaken(name string, exceptID int64) bool {
	for _, sk := range r.store.skills {
		if sk.id != exceptID && strings.EqualFold(sk.name, name) {
			return true
		}
	}
	return false
}
