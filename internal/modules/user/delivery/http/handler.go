package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"monkid.com/backoffice/internal/modules/user/dto"
	userService "monkid.com/backoffice/internal/modules/user/service"
	"monkid.com/backoffice/pkg/response"
	"monkid.com/backoffice/pkg/validator"
)

type UserHandler struct {
	service userService.UserService
}

func NewUserHandler(service userService.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ResponseError(c, validator.FromBindError(err))
		return
	}

	res, err := h.service.Register(c.Request.Context(), input, c.ClientIP())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := response.MustGetUser(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
