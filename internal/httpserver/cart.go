package httpserver

import (
	"net/http"

	cartsvc "flowershop/internal/service/cart"
	"github.com/gin-gonic/gin"
)

// deviceHeader carries the browser-generated device id for guests. Logged-in
// requests ignore it; the account cart always wins.
const deviceHeader = "X-Device-ID"

func cartActor(c *gin.Context) cartsvc.Actor {
	if u := currentUser(c); u != nil {
		return cartsvc.Actor{UserID: u.ID}
	}
	return cartsvc.Actor{DeviceID: c.GetHeader(deviceHeader)}
}

type cartResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

func respondCart(c *gin.Context, session *cartsvc.Cart) {
	c.JSON(http.StatusOK, cartResponse{
		Items: session.Items(),
		Total: session.Total(),
		Count: session.Count(),
	})
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Open(c.Request.Context(), cartActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, session)
	}
}

type addCartItemRequest struct {
	Product  cartsvc.ProductInfo `json:"product"`
	Quantity int                 `json:"quantity"`
}

func addCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "장바구니 요청을 확인해주세요")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		session, err := svc.Open(c.Request.Context(), cartActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := session.Add(c.Request.Context(), req.Product, req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, session)
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func setCartQuantityHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "장바구니 요청을 확인해주세요")
			return
		}
		session, err := svc.Open(c.Request.Context(), cartActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := session.SetQuantity(c.Request.Context(), c.Param("productId"), req.Quantity); err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, session)
	}
}

func removeCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Open(c.Request.Context(), cartActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := session.Remove(c.Request.Context(), c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, session)
	}
}

func clearCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Open(c.Request.Context(), cartActor(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := session.Clear(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		respondCart(c, session)
	}
}
