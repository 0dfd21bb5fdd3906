package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"monkid.com/backoffice/internal/modules/attendance/dto"
	attendanceService "monkid.com/backoffice/internal/modules/attendance/service"
	"monkid.com/backoffice/pkg/apperror"
	"monkid.com/backoffice/pkg/response"
	"monkid.com/backoffice/pkg/validator"
)

type AttendanceHandler struct {
	service attendanceService.AttendanceService
}

func NewAttendanceHandler(service attendanceService.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

func (h *AttendanceHandler) Save(c *gin.Context) {
	var input dto.AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	res, err := h.service.Save(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AttendanceHandler) Get(c *gin.Context) {
	teacherID, err := uuid.Parse(c.Param("teacherId"))
	if err != nil {
		response.ResponseError(c, fmt.Errorf("attendance record not found: %w", apperror.ErrNotFound))
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.ResponseError(c, apperror.NewValidationError("year", "a valid integer is required"))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		response.ResponseError(c, apperror.NewValidationError("month", "a valid integer is required"))
		return
	}

	res, err := h.service.Get(c.Request.Context(), teacherID, year, month)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
