package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/genomelens-backend/internal/apperr"
	"github.com/yungbote/genomelens-backend/internal/requestdata"
	"github.com/yungbote/genomelens-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Stream opens a long-lived event stream scoped to the caller's user channel.
// Genome and trait updates for any of the user's profiles arrive here.
func (sh *SSEHandler) Stream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondServiceError(c, apperr.ErrUnauthorized)
		return
	}
	client := sh.hub.NewSSEClient(rd.UserID)
	sh.hub.AddChannel(client, sse.UserChannel(rd.UserID))
	defer sh.hub.RemoveClient(client)
	sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
