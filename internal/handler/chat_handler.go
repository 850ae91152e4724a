package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iqbaldf/chatline/internal/bootstrap"
	"github.com/iqbaldf/chatline/internal/logic"
	"github.com/iqbaldf/chatline/internal/types"
)

// ChatHandler handles one chat turn: POST /api/chat
func ChatHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, types.NewInvalidInputError(err.Error()))
			return
		}

		l := logic.NewChatLogic(c.Request.Context(), svcCtx)
		resp, err := l.SendMessage(&req)
		if err != nil {
			sendError(c, err)
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// sendError writes the JSON error envelope. Clients parse every response as
// JSON, so errors must never fall through to an HTML error page.
func sendError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(types.HTTPStatusOf(err), types.ErrorResponse{
		Error: types.ErrorBody{
			Code:    string(types.KindOf(err)),
			Message: err.Error(),
		},
	})
}
