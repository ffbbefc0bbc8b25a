package v1

import (
	"fmt"
	"net/http"
	"strings"

	"hr-platform/internal/delivery/http/response"
	"hr-platform/internal/domain"
	"hr-platform/internal/usecase"
	"hr-platform/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/export", handler.Export)
		candidates.GET("/:id", handler.GetByID)
		candidates.POST("", handler.Create)
		candidates.PUT("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
		candidates.POST("/:id/skills", handler.AssignSkills)
		candidates.DELETE("/:id/skills/:skillId", handler.RemoveSkill)
	}
}

// bindCandidateQuery reads the shared search parameters of List and Export.
func bindCandidateQuery(c *gin.Context) (domain.CandidateQuery, error) {
	q := domain.CandidateQuery{
		Name:     c.Query("name"),
		Match:    c.Query("match"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		SortBy:   c.Query("sortBy"),
		SortDir:  c.Query("dir"),
	}

	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		q.SkillIDs = parseIDList(raw)
		if len(q.SkillIDs) == 0 {
			return q, apperror.BadRequest("Invalid 'skills' value")
		}
	}
	return q, nil
}

// List godoc
// @Summary      Search candidates
// @Description  Filters candidates by name substring and skills, sorted and paginated. The total match count is also returned in X-Total-Count.
// @Tags         candidates
// @Produce      json
// @Param        name      query     string  false  "Case-insensitive substring of the full name"
// @Param        skills    query     string  false  "Comma-separated skill ids"
// @Param        match     query     string  false  "any (default) or all"
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        pageSize  query     int     false  "Items per page, 1-100 (default: 20)"
// @Param        sortBy    query     string  false  "name (default), dob, email or phone"
// @Param        dir       query     string  false  "asc (default) or desc"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.Candidate]}
// @Failure      400  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	q, err := bindCandidateQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.candidateUC.Query(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Candidates retrieved", result.Total, result)
}

// Export godoc
// @Summary      Export candidates to Excel/CSV
// @Description  Downloads up to 10,000 candidates matching the same filters as the search endpoint
// @Tags         candidates
// @Produce      application/octet-stream
// @Param        format   query     string  false  "xlsx (default) or csv"
// @Param        columns  query     string  false  "Comma-separated columns: id, full_name, date_of_birth, email, phone, skills"
// @Param        name     query     string  false  "Case-insensitive substring of the full name"
// @Param        skills   query     string  false  "Comma-separated skill ids"
// @Param        match    query     string  false  "any (default) or all"
// @Param        sortBy   query     string  false  "name (default), dob, email or phone"
// @Param        dir      query     string  false  "asc (default) or desc"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /candidates/export [get]
func (h *CandidateHandler) Export(c *gin.Context) {
	q, err := bindCandidateQuery(c)
	if err != nil {
		c.Error(err)
		return
	}

	format := c.DefaultQuery("format", usecase.ExportFormatXLSX)
	req := domain.CandidateExportRequest{
		Query:   q,
		Columns: parseList(c.Query("columns")),
		Format:  format,
	}

	data, filename, err := h.candidateUC.Export(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, usecase.ContentType(format), data)
}

// GetByID godoc
// @Summary      Get a candidate
// @Description  Returns the candidate with skills ordered by name
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved", candidate)
}

// Create godoc
// @Summary      Create a candidate
// @Description  Creates a candidate and links the given skills. Every skill id must exist.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      domain.CreateCandidateRequest  true  "Candidate JSON"
// @Success      201  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var req domain.CreateCandidateRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Create(c.Request.Context(), req.CandidateInput, req.SkillIDs)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), candidate.ID))
	response.Success(c, http.StatusCreated, "Candidate created", candidate)
}

// Update godoc
// @Summary      Update a candidate
// @Description  Replaces name, date of birth, email and phone. Skills are not changed.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      int                    true  "Candidate ID"
// @Param        candidate  body      domain.CandidateInput  true  "Candidate JSON"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var input domain.CandidateInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate updated", candidate)
}

// Delete godoc
// @Summary      Delete a candidate
// @Description  Deletes the candidate and its skill links
// @Tags         candidates
// @Param        id   path  int  true  "Candidate ID"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AssignSkills godoc
// @Summary      Assign skills to a candidate
// @Description  Links the given skills. Already linked skills are ignored; unknown ids fail the whole request.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id      path      int                         true  "Candidate ID"
// @Param        skills  body      domain.AssignSkillsRequest  true  "Skill ids"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/skills [post]
func (h *CandidateHandler) AssignSkills(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.AssignSkillsRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.AssignSkills(c.Request.Context(), id, req.SkillIDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skills assigned", candidate)
}

// RemoveSkill godoc
// @Summary      Remove a skill from a candidate
// @Tags         candidates
// @Produce      json
// @Param        id       path      int  true  "Candidate ID"
// @Param        skillId  path      int  true  "Skill ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id}/skills/{skillId} [delete]
func (h *CandidateHandler) RemoveSkill(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	skillID, err := parseID(c, "skillId")
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.RemoveSkill(c.Request.Context(), id, skillID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill removed", candidate)
}
