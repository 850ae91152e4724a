package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iqbaldf/chatline/internal/bootstrap"
	"github.com/iqbaldf/chatline/internal/types"
)

// ModelsHandler returns the static model catalog
func ModelsHandler(svcCtx *bootstrap.ServiceContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.ModelsResponse{Models: svcCtx.Registry.Catalog()})
	}
}
