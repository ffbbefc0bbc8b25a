package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"hr-platform/internal/domain"
	"hr-platform/internal/repository/memory"
	"hr-platform/internal/usecase"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type directory struct {
	skills     domain.SkillUsecase
	candidates domain.CandidateUsecase
}

func newDirectory() directory {
	store := memory.NewStore()
	v := validation.Validator()
	skillRepo := memory.NewSkillRepository(store)
	return directory{
		skills:     usecase.NewSkillUsecase(skillRepo, v),
		candidates: usecase.NewCandidateUsecase(memory.NewCandidateRepository(store), skillRepo, v),
	}
}

func (d directory) skill(t *testing.T, name string) int64 {
	t.Helper()
	s, err := d.skills.Create(context.Background(), domain.SkillInput{Name: name})
	require.NoError(t, err)
	return s.ID
}

func (d directory) candidate(t *testing.T, name, dob, email string, skillIDs ...int64) int64 {
	t.Helper()
	c, err := d.candidates.Create(context.Background(), domain.CandidateInput{
		FullName:    name,
		DateOfBirth: dob,
		Email:       email,
		Phone:       "+381601234",
	}, skillIDs)
	require.NoError(t, err)
	return c.ID
}

func ids(cs []domain.Candidate) []int64 {
	out := make([]int64, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func skillIDsOf(c *domain.Candidate) []int64 {
	out := make([]int64, len(c.Skills))
	for i, s := range c.Skills {
		out[i] = s.ID
	}
	return out
}

func TestAssignSkillsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	csharp := d.skill(t, "C#")
	sql := d.skill(t, "SQL")
	c := d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com")

	first, err := d.candidates.AssignSkills(ctx, c, []int64{sql, csharp, sql})
	require.NoError(t, err)
	second, err := d.candidates.AssignSkills(ctx, c, []int64{csharp, sql})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// ordered by name
	assert.Equal(t, []domain.SkillRef{{ID: csharp, Name: "C#"}, {ID: sql, Name: "SQL"}}, second.Skills)
}

func TestRemoveSkillTwice(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	docker := d.skill(t, "Docker")
	c := d.candidate(t, "Marko Marković", "1995-11-02", "marko@example.com", docker)

	got, err := d.candidates.RemoveSkill(ctx, c, docker)
	require.NoError(t, err)
	assert.Empty(t, got.Skills)

	_, err = d.candidates.RemoveSkill(ctx, c, docker)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, fmt.Sprintf("Skill %d not assigned to candidate %d", docker, c), err.Error())

	_, err = d.candidates.RemoveSkill(ctx, 999, docker)
	assert.Equal(t, "Candidate 999 not found", err.Error())
}

func TestDeleteCandidateCascades(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	java := d.skill(t, "Java")
	react := d.skill(t, "React")
	a := d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com", java)
	b := d.candidate(t, "Marko Marković", "1995-11-02", "marko@example.com", java, react)

	require.NoError(t, d.candidates.Delete(ctx, b))
	_, err := d.candidates.GetByID(ctx, b)
	assert.True(t, apperror.IsNotFound(err))

	page, err := d.candidates.Query(ctx, domain.CandidateQuery{SkillIDs: []int64{java, react}})
	require.NoError(t, err)
	assert.Equal(t, []int64{a}, ids(page.Data))

	page, err = d.candidates.Query(ctx, domain.CandidateQuery{SkillIDs: []int64{react}})
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	// both skills are still assignable after the candidate is gone
	got, err := d.candidates.AssignSkills(ctx, a, []int64{react})
	require.NoError(t, err)
	assert.Equal(t, []int64{java, react}, skillIDsOf(got))

	err = d.candidates.Delete(ctx, b)
	assert.Equal(t, fmt.Sprintf("Candidate %d not found", b), err.Error())
}

func TestDeleteSkillCascades(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	java := d.skill(t, "Java")
	react := d.skill(t, "React")
	a := d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com", java, react)
	b := d.candidate(t, "Marko Marković", "1995-11-02", "marko@example.com", java)

	require.NoError(t, d.skills.Delete(ctx, java))

	got, err := d.candidates.GetByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []int64{react}, skillIDsOf(got))

	got, err = d.candidates.GetByID(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, got.Skills)

	page, err := d.candidates.Query(ctx, domain.CandidateQuery{SkillIDs: []int64{java}})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestAnyAndAllMatching(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	x := d.skill(t, "X")
	y := d.skill(t, "Y")
	c1 := d.candidate(t, "Anna One", "1990-01-01", "one@example.com", x)
	c2 := d.candidate(t, "Bob Two", "1991-01-01", "two@example.com", x, y)
	d.candidate(t, "Cara Three", "1992-01-01", "three@example.com")

	anyPage, err := d.candidates.Query(ctx, domain.CandidateQuery{SkillIDs: []int64{x, y}, Match: "any"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{c1, c2}, ids(anyPage.Data))
	assert.Equal(t, int64(2), anyPage.Total)

	allPage, err := d.candidates.Query(ctx, domain.CandidateQuery{SkillIDs: []int64{x, y}, Match: "all"})
	require.NoError(t, err)
	assert.Equal(t, []int64{c2}, ids(allPage.Data))

	// duplicates in the set do not change ALL semantics
	allPage, err = d.candidates.Query(ctx, domain.CandidateQuery{SkillIDs: []int64{x, x, y}, Match: "ALL"})
	require.NoError(t, err)
	assert.Equal(t, []int64{c2}, ids(allPage.Data))

	// an empty set filters nothing
	everyone, err := d.candidates.Query(ctx, domain.CandidateQuery{Match: "all"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), everyone.Total)
}

func TestNameFilterIsCaseInsensitiveSubstring(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	mirko := d.candidate(t, "Mirko Poledica", "2002-05-26", "mirkop@example.com")
	marko := d.candidate(t, "Marko Marković", "1995-11-02", "marko@example.com")
	d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com")

	page, err := d.candidates.Query(ctx, domain.CandidateQuery{Name: "  RKO "})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{mirko, marko}, ids(page.Data))

	// literal wildcard characters match nothing here
	page, err = d.candidates.Query(ctx, domain.CandidateQuery{Name: "%"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestPaginationPartitionsResults(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	names := []string{"Ana Alpha", "Bojan Beta", "Cvijeta Gamma"}
	for i, n := range names {
		d.candidate(t, n, fmt.Sprintf("199%d-01-01", i), fmt.Sprintf("p%d@example.com", i))
	}

	var seen []string
	for page := 1; page <= 3; page++ {
		result, err := d.candidates.Query(ctx, domain.CandidateQuery{Page: page, PageSize: 1, SortBy: "name"})
		require.NoError(t, err)
		require.Len(t, result.Data, 1)
		assert.Equal(t, int64(3), result.Total)
		assert.Equal(t, 3, result.TotalPages)
		seen = append(seen, result.Data[0].FullName)
	}
	assert.Equal(t, names, seen)

	beyond, err := d.candidates.Query(ctx, domain.CandidateQuery{Page: 4, PageSize: 1})
	require.NoError(t, err)
	assert.Empty(t, beyond.Data)
	assert.Equal(t, int64(3), beyond.Total)
}

func TestSortDirectionReversesDistinctKeys(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	oldest := d.candidate(t, "Zed Old", "1980-03-04", "old@example.com")
	youngest := d.candidate(t, "Amy Young", "2001-07-08", "young@example.com")
	middle := d.candidate(t, "Max Middle", "1990-05-06", "mid@example.com")

	asc, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "dob", SortDir: "asc"})
	require.NoError(t, err)
	desc, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "dob", SortDir: "desc"})
	require.NoError(t, err)

	assert.Equal(t, []int64{oldest, middle, youngest}, ids(asc.Data))
	assert.Equal(t, []int64{youngest, middle, oldest}, ids(desc.Data))

	byEmail, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "email"})
	require.NoError(t, err)
	assert.Equal(t, []int64{middle, oldest, youngest}, ids(byEmail.Data))

	// unknown sort key falls back to name
	byName, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "salary"})
	require.NoError(t, err)
	assert.Equal(t, []int64{youngest, middle, oldest}, ids(byName.Data))
}

func TestUniquenessIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	d.skill(t, "PostgreSQL")
	d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com")
	other := d.candidate(t, "Marko Marković", "1995-11-02", "marko@example.com")

	_, err := d.skills.Create(ctx, domain.SkillInput{Name: "postgresql"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	_, err = d.candidates.Create(ctx, domain.CandidateInput{
		FullName: "Ana Again", DateOfBirth: "1990-01-01", Email: "ANA@EXAMPLE.COM", Phone: "123456",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, "Candidate with email 'ANA@EXAMPLE.COM' already exists.", err.Error())

	_, err = d.candidates.Update(ctx, other, domain.CandidateInput{
		FullName: "Marko Marković", DateOfBirth: "1995-11-02", Email: "Ana@Example.com", Phone: "123456",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// keeping one's own email in a different case is not a conflict
	updated, err := d.candidates.Update(ctx, other, domain.CandidateInput{
		FullName: "Marko Marković", DateOfBirth: "1995-11-02", Email: "MARKO@example.com", Phone: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "MARKO@example.com", updated.Email)
}

func TestCreateWithUnknownSkillPersistsNothing(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	known := d.skill(t, "React")

	_, err := d.candidates.Create(ctx, domain.CandidateInput{
		FullName: "Ana Petrović", DateOfBirth: "1997-12-01", Email: "ana@example.com", Phone: "123456",
	}, []int64{known, 404, 405})
	require.Error(t, err)
	assert.Equal(t, "Skills not found: 404, 405", err.Error())

	page, err := d.candidates.Query(ctx, domain.CandidateQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)

	// the email is still free
	d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com", known)
}

func TestUpdateKeepsSkills(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	sql := d.skill(t, "SQL")
	c := d.candidate(t, "Ana Petrović", "1997-12-01", "ana@example.com", sql)

	got, err := d.candidates.Update(ctx, c, domain.CandidateInput{
		FullName: " Ana P. ", DateOfBirth: "1997-12-02", Email: "ana.p@example.com", Phone: "654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana P.", got.FullName)
	assert.Equal(t, "1997-12-02", got.DateOfBirth)
	assert.Equal(t, []int64{sql}, skillIDsOf(got))
}

func TestSkillDirectory(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	for _, n := range []string{"JavaScript", "Java", "C#", "React"} {
		d.skill(t, n)
	}

	result, err := d.skills.List(ctx, "JAVA", 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "Java", result.Data[0].Name)
	assert.Equal(t, "JavaScript", result.Data[1].Name)
	assert.Equal(t, int64(2), result.Total)

	all, err := d.skills.List(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total)
	assert.Equal(t, 2, all.TotalPages)
	assert.Equal(t, "C#", all.Data[0].Name)

	_, err = d.skills.Update(ctx, all.Data[0].ID, domain.SkillInput{Name: "react"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, err.(*apperror.AppError).Code)

	renamed, err := d.skills.Update(ctx, all.Data[0].ID, domain.SkillInput{Name: "  C Sharp "})
	require.NoError(t, err)
	assert.Equal(t, "C Sharp", renamed.Name)
}

func TestSeederIsIdempotent(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	seeder := usecase.NewSeeder(d.skills, d.candidates)

	require.NoError(t, seeder.Seed(ctx))
	require.NoError(t, seeder.Seed(ctx))

	skills, err := d.skills.List(ctx, "", 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(len(usecase.SeedSkills)), skills.Total)

	candidates, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "dob"})
	require.NoError(t, err)
	require.Equal(t, int64(3), candidates.Total)
	assert.Equal(t, "Marko Marković", candidates.Data[0].FullName)
	assert.Len(t, candidates.Data[1].Skills, 3)
}

func TestCandidateFieldsAreFreeForm(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()

	created, err := d.candidates.Create(ctx, domain.CandidateInput{
		FullName:    "Louis XIV 2nd",
		DateOfBirth: "2090-01-01",
		Email:       "louis@example.com",
		Phone:       "+1 555 0100 ext. 7",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Louis XIV 2nd", created.FullName)
	assert.Equal(t, "2090-01-01", created.DateOfBirth)
	assert.Equal(t, "+1 555 0100 ext. 7", created.Phone)

	updated, err := d.candidates.Update(ctx, created.ID, domain.CandidateInput{
		FullName:    "R2-D2",
		DateOfBirth: "1977-05-25",
		Email:       "louis@example.com",
		Phone:       "call reception",
	})
	require.NoError(t, err)
	assert.Equal(t, "R2-D2", updated.FullName)
	assert.Equal(t, "call reception", updated.Phone)

	// calendar dates are still required
	_, err = d.candidates.Update(ctx, created.ID, domain.CandidateInput{
		FullName: "R2-D2", DateOfBirth: "1977-02-30", Email: "louis@example.com", Phone: "1",
	})
	require.Error(t, err)
	assert.Equal(t, "Date of birth must be a date in the format YYYY-MM-DD", err.Error())
}

func TestSortByNameIgnoresCase(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()
	bob := d.candidate(t, "bob", "1990-01-01", "bob@example.com")
	carl := d.candidate(t, "Carl", "1990-01-01", "carl@example.com")
	alice := d.candidate(t, "Alice", "1990-01-01", "alice@example.com")

	asc, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "name"})
	require.NoError(t, err)
	assert.Equal(t, []int64{alice, bob, carl}, ids(asc.Data))

	desc, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "name", SortDir: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, []int64{carl, bob, alice}, ids(desc.Data))
}

func TestSortByPhone(t *testing.T) {
	ctx := context.Background()
	d := newDirectory()

	var created []int64
	for i, phone := range []string{"+38163000", "+38161000", "+38162000"} {
		c, err := d.candidates.Create(ctx, domain.CandidateInput{
			FullName:    fmt.Sprintf("Person %c", 'A'+i),
			DateOfBirth: "1990-01-01",
			Email:       fmt.Sprintf("person%d@example.com", i),
			Phone:       phone,
		}, nil)
		require.NoError(t, err)
		created = append(created, c.ID)
	}

	asc, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "phone"})
	require.NoError(t, err)
	assert.Equal(t, []int64{created[1], created[2], created[0]}, ids(asc.Data))

	desc, err := d.candidates.Query(ctx, domain.CandidateQuery{SortBy: "Phone", SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []int64{created[0], created[2], created[1]}, ids(desc.Data))
}
