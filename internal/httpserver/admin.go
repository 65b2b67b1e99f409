package httpserver

import (
	"net/http"
	"time"

	"flowershop/internal/domain"
	orderrepo "flowershop/internal/repository/order"
	userrepo "flowershop/internal/repository/user"
	ordersvc "flowershop/internal/service/order"
	"github.com/gin-gonic/gin"
)

// adminOrderRow flattens the first item into top-level columns for the
// admin order table, which renders one product per row.
type adminOrderRow struct {
	orderView
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

func listAllOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		rows := make([]adminOrderRow, 0, len(orders))
		for _, o := range orders {
			row := adminOrderRow{orderView: viewOrder(o)}
			// the admin table renders the first item's product
			if len(o.Items) > 0 {
				row.ProductName = o.Items[0].ProductName
				row.Quantity = o.Items[0].Quantity
			}
			rows = append(rows, row)
		}
		c.JSON(http.StatusOK, gin.H{"orders": rows})
	}
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func updateOrderStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
			badRequest(c, "변경할 상태를 확인해주세요")
			return
		}
		if err := svc.UpdateStatusLabel(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "주문 상태가 변경되었습니다"})
	}
}

type orderFilesRequest struct {
	DeliveryDate    *string `json:"delivery_date"`
	DeliveryPhoto   *string `json:"delivery_photo"`
	ConfirmationDoc *string `json:"confirmation_doc"`
}

func updateOrderFilesHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderFilesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "배송 정보를 확인해주세요")
			return
		}
		var in orderrepo.DeliveryUpdate
		if req.DeliveryDate != nil {
			d, err := time.Parse("2006-01-02", *req.DeliveryDate)
			if err != nil {
				badRequest(c, "배송일 형식은 YYYY-MM-DD 입니다")
				return
			}
			in.DeliveryDate = &d
		}
		in.DeliveryPhoto = req.DeliveryPhoto
		in.ConfirmationDoc = req.ConfirmationDoc
		if err := svc.UpdateDelivery(c.Request.Context(), c.Param("id"), in); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "배송 정보가 저장되었습니다"})
	}
}

func deleteOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listUsersHandler(repo userrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := repo.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

type userRoleRequest struct {
	Role string `json:"role"`
}

func updateUserRoleHandler(repo userrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "변경할 권한을 확인해주세요")
			return
		}
		switch req.Role {
		case domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin:
		default:
			badRequest(c, "변경할 권한을 확인해주세요")
			return
		}
		if err := repo.UpdateRole(c.Request.Context(), c.Param("id"), req.Role); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "권한이 변경되었습니다"})
	}
}

func deleteUserHandler(repo userrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("id") == currentUser(c).ID {
			badRequest(c, "본인 계정은 삭제할 수 없습니다")
			return
		}
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func dailySalesHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		day := time.Now()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				badRequest(c, "날짜 형식은 YYYY-MM-DD 입니다")
				return
			}
			day = parsed
		}
		buckets, err := svc.DailySales(c.Request.Context(), day)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sales": buckets})
	}
}

func monthlySalesHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		year := time.Now().Year()
		if raw := c.Query("year"); raw != "" {
			parsed, err := time.Parse("2006", raw)
			if err != nil {
				badRequest(c, "연도 형식은 YYYY 입니다")
				return
			}
			year = parsed.Year()
		}
		buckets, err := svc.MonthlySales(c.Request.Context(), year)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sales": buckets})
	}
}
