package httpserver

import (
	"net/http"

	"flowershop/internal/domain"
	cartsvc "flowershop/internal/service/cart"
	ordersvc "flowershop/internal/service/order"
	"github.com/gin-gonic/gin"
)

// orderView is an order with its Korean display label attached. The stored
// status stays in the payload for the admin console.
type orderView struct {
	domain.Order
	StatusLabel string `json:"status_label"`
}

func viewOrder(o domain.Order) orderView {
	return orderView{Order: o, StatusLabel: ordersvc.LabelForStatus(o.Status)}
}

func viewOrders(orders []domain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, viewOrder(o))
	}
	return out
}

func placeOrderHandler(svc *ordersvc.Service, carts *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		var in ordersvc.PlaceInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, "주문 정보를 확인해주세요")
			return
		}
		session, err := carts.Open(c.Request.Context(), cartsvc.Actor{UserID: user.ID})
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := svc.Place(c.Request.Context(), user.ID, session.Items(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := session.Clear(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, viewOrder(*order))
	}
}

func listMyOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListForUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": viewOrders(orders)})
	}
}
