package controllers

import (
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Orders *services.OrderService }

func NewOrderController(o *services.OrderService) *OrderController {
	return &OrderController{Orders: o}
}

// GET /orders?status=OPEN|CLOSE
func (o *OrderController) List(c *gin.Context) {
	rows, err := o.Orders.List(utils.GatewayContext(c), c.Query("status"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// PATCH /orders/:id/status
func (o *OrderController) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := o.Orders.UpdateStatus(utils.GatewayContext(c), c.Param("id"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, view)
}
