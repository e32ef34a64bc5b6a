package controllers

import (
	"net/http"

	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TableController struct{ Tables *services.TableService }

func NewTableController(t *services.TableService) *TableController {
	return &TableController{Tables: t}
}

// GET /tables
func (t *TableController) List(c *gin.Context) {
	list, err := t.Tables.List(utils.GatewayContext(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// PATCH /tables/:number/status
func (t *TableController) UpdateStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	table, err := t.Tables.UpdateStatus(utils.GatewayContext(c), c.Param("number"), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, table)
}

// GET /tables/:number/qr  (image/png)
func (t *TableController) QRCode(c *gin.Context) {
	png, err := t.Tables.QRCode(c.Param("number"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	c.Header("X-Order-Link", t.Tables.OrderLink(c.Param("number")))
	c.Data(http.StatusOK, "image/png", png)
}
