package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	statService "monkid.com/backoffice/internal/modules/stat/service"
	"monkid.com/backoffice/pkg/response"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{statService: statService}
}

func (h *StatHandler) Overview(c *gin.Context) {
	res, err := h.statService.Overview(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
