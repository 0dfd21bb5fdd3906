package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"monkid.com/backoffice/internal/modules/teacher/dto"
	teacherService "monkid.com/backoffice/internal/modules/teacher/service"
	"monkid.com/backoffice/pkg/apperror"
	commonDto "monkid.com/backoffice/pkg/dto"
	"monkid.com/backoffice/pkg/response"
	"monkid.com/backoffice/pkg/validator"
)

type TeacherHandler struct {
	service         teacherService.TeacherService
	defaultPageSize int
	maxPageSize     int
}

func NewTeacherHandler(service teacherService.TeacherService, defaultPageSize, maxPageSize int) *TeacherHandler {
	return &TeacherHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (h *TeacherHandler) List(c *gin.Context) {
	var q commonDto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}
	q = q.Normalize(h.defaultPageSize, h.maxPageSize)

	teachers, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewPaginatedResponse(teachers, total, q, response.RequestURL(c)))
}

func (h *TeacherHandler) Create(c *gin.Context) {
	var input dto.TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	res, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *TeacherHandler) Retrieve(c *gin.Context) {
	id, err := teacherID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TeacherHandler) Salary(c *gin.Context) {
	id, err := teacherID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Salary(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TeacherHandler) Update(c *gin.Context) {
	h.update(c, false)
}

func (h *TeacherHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

func (h *TeacherHandler) update(c *gin.Context, partial bool) {
	id, err := teacherID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.TeacherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	res, err := h.service.Update(c.Request.Context(), id, input, partial)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *TeacherHandler) Delete(c *gin.Context) {
	id, err := teacherID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TeacherHandler) BulkDelete(c *gin.Context) {
	var req commonDto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	deleted, err := h.service.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.BulkDeleteResponse{Deleted: deleted})
}

func teacherID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("teacher not found: %w", apperror.ErrNotFound)
	}
	return id, nil
}
