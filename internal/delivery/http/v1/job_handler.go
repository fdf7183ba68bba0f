package v1

import (
	"net/http"

	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Reads are open to everyone
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}
}

// CreateJobRequest carries no binding rules: field validation happens in the
// usecase so that an incomplete job is reported the same way the store would.
type CreateJobRequest struct {
	Title       string           `json:"title"`
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Company     domain.Company   `json:"company"`
	Location    string           `json:"location"`
	Salary      float64          `json:"salary"`
	PostedDate  domain.Date      `json:"postedDate" swaggertype:"string" example:"2024-01-31"`
	Status      domain.JobStatus `json:"status" example:"open"`
}

// UpdateJobRequest is a partial job. Omitted fields keep their stored value.
type UpdateJobRequest struct {
	Title       *string              `json:"title"`
	Type        *string              `json:"type"`
	Description *string              `json:"description"`
	Company     *domain.CompanyPatch `json:"company"`
	Location    *string              `json:"location"`
	Salary      *float64             `json:"salary"`
	PostedDate  *domain.Date         `json:"postedDate" swaggertype:"string"`
	Status      *domain.JobStatus    `json:"status"`
}

func (r UpdateJobRequest) toPatch() domain.JobPatch {
	return domain.JobPatch{
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		Company:     r.Company,
		Location:    r.Location,
		Salary:      r.Salary,
		PostedDate:  r.PostedDate,
		Status:      r.Status,
	}
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting owned by the authenticated user
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  domain.Job
// @Failure      400  {object}  response.ErrorBody
// @Failure      401  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("malformed job payload"))
		return
	}

	userID, _ := c.Get(string(domain.KeyUserID))
	ownerID, _ := userID.(uuid.UUID)

	job := &domain.Job{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		PostedDate:  req.PostedDate,
		Status:      req.Status,
	}

	if err := h.jobUC.CreateJob(c.Request.Context(), ownerID, job); err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, job)
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Get every job posting
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   domain.Job
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, jobs)
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	job, err := h.jobUC.GetJobDetails(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Partially update a job. Company fields are merged individually.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  response.ErrorBody
// @Failure      401  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("malformed job payload"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, req.toPatch())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Tags         jobs
// @Param        id   path      string  true  "Job ID"
// @Success      204
// @Failure      401  {object}  response.ErrorBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	response.NoContent(c, http.StatusNoContent)
}

// parseJobID reports a malformed id the same way as a missing job.
func parseJobID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.InvalidID())
		return uuid.Nil, false
	}
	return id, true
}
