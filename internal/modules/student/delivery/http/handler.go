package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"monkid.com/backoffice/internal/modules/student/dto"
	studentService "monkid.com/backoffice/internal/modules/student/service"
	"monkid.com/backoffice/pkg/apperror"
	commonDto "monkid.com/backoffice/pkg/dto"
	"monkid.com/backoffice/pkg/response"
	"monkid.com/backoffice/pkg/validator"
)

type StudentHandler struct {
	service         studentService.StudentService
	defaultPageSize int
	maxPageSize     int
}

func NewStudentHandler(service studentService.StudentService, defaultPageSize, maxPageSize int) *StudentHandler {
	return &StudentHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (h *StudentHandler) List(c *gin.Context) {
	var q commonDto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}
	q = q.Normalize(h.defaultPageSize, h.maxPageSize)

	students, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, commonDto.NewPaginatedResponse(students, total, q, response.RequestURL(c)))
}

func (h *StudentHandler) Create(c *gin.Context) {
	var input dto.CreateStudentInput
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

func (h *StudentHandler) Retrieve(c *gin.Context) {
	seq, err := sequentialNumber(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Get(c.Request.Context(), seq)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *StudentHandler) Fees(c *gin.Context) {
	seq, err := sequentialNumber(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.service.Fees(c.Request.Context(), seq)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Update serves both PUT and PATCH; students have no required fields.
func (h *StudentHandler) Update(c *gin.Context) {
	seq, err := sequentialNumber(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.StudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	res, err := h.service.Update(c.Request.Context(), seq, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	seq, err := sequentialNumber(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), seq); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StudentHandler) BulkDelete(c *gin.Context) {
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

func sequentialNumber(c *gin.Context) (uuid.UUID, error) {
	seq, err := uuid.Parse(c.Param("seq"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("student not found: %w", apperror.ErrNotFound)
	}
	return seq, nil
}
