package v1

import (
	"net/http"

	"hr-platform/internal/delivery/http/response"
	"hr-platform/internal/domain"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(r *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	skills := r.Group("/skills")
	{
		skills.GET("", handler.List)
		skills.GET("/:id", handler.GetByID)
		skills.POST("", handler.Create)
		skills.PUT("/:id", handler.Update)
		skills.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List skills
// @Description  Skills ordered by name, optionally filtered by a case-insensitive name substring
// @Tags         skills
// @Produce      json
// @Param        query     query     string  false  "Name substring"
// @Param        page      query     int     false  "Page number (default: 1)"
// @Param        pageSize  query     int     false  "Items per page, 1-100 (default: 20)"
// @Success      200  {object}  response.Response{data=domain.PaginatedResult[domain.Skill]}
// @Router       /skills [get]
func (h *SkillHandler) List(c *gin.Context) {
	result, err := h.skillUC.List(c.Request.Context(), c.Query("query"), queryInt(c, "page"), queryInt(c, "pageSize"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Skills retrieved", result.Total, result)
}

// GetByID godoc
// @Summary      Get a skill
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response{data=domain.Skill}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [get]
func (h *SkillHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	skill, err := h.skillUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill retrieved", skill)
}

// Create godoc
// @Summary      Create a skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        skill  body      domain.SkillInput  true  "Skill JSON"
// @Success      201  {object}  response.Response{data=domain.Skill}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /skills [post]
func (h *SkillHandler) Create(c *gin.Context) {
	var input domain.SkillInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	skill, err := h.skillUC.Create(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Skill created", skill)
}

// Update godoc
// @Summary      Rename a skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        id     path      int                true  "Skill ID"
// @Param        skill  body      domain.SkillInput  true  "Skill JSON"
// @Success      200  {object}  response.Response{data=domain.Skill}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /skills/{id} [put]
func (h *SkillHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var input domain.SkillInput
	if err := bindJSON(c, &input); err != nil {
		c.Error(err)
		return
	}

	skill, err := h.skillUC.Update(c.Request.Context(), id, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill updated", skill)
}

// Delete godoc
// @Summary      Delete a skill
// @Description  Deletes the skill and unlinks it from every candidate
// @Tags         skills
// @Param        id   path  int  true  "Skill ID"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [delete]
func (h *SkillHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.skillUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
