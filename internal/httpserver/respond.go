package httpserver

import (
	"errors"
	"net/http"

	"flowershop/internal/domain"
	cartsvc "flowershop/internal/service/cart"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes with the generic
// Korean messages the storefront shows.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "요청한 대상을 찾을 수 없습니다"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "이미 존재하는 항목입니다"})
	case errors.Is(err, domain.ErrInvalid),
		errors.Is(err, cartsvc.ErrInvalidQuantity),
		errors.Is(err, cartsvc.ErrNoActor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "서버 오류가 발생했습니다"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
