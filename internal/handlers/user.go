package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/requestdata"
	"github.com/yungbote/genomelens-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}
