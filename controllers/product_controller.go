package controllers

import (
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type InventoryRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type ProductController struct{ Products *services.ProductService }

func NewProductController(p *services.ProductService) *ProductController {
	return &ProductController{Products: p}
}

// GET /products?category=&q=
func (p *ProductController) List(c *gin.Context) {
	rows, err := p.Products.List(utils.GatewayContext(c), c.Query("category"), c.Query("q"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /products/categories
func (p *ProductController) Categories(c *gin.Context) {
	rows, err := p.Products.Categories(utils.GatewayContext(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /products
func (p *ProductController) Create(c *gin.Context) {
	var in services.ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	prod, err := p.Products.Create(utils.GatewayContext(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, prod)
}

// PUT /products/:id
func (p *ProductController) Update(c *gin.Context) {
	var in services.ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	prod, err := p.Products.Update(utils.GatewayContext(c), c.Param("id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, prod)
}

// DELETE /products/:id
func (p *ProductController) Delete(c *gin.Context) {
	if err := p.Products.Delete(utils.GatewayContext(c), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}

// POST /products/:id/inventory  {quantity: +n | -n}
func (p *ProductController) AdjustInventory(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	prod, err := p.Products.AdjustInventory(utils.GatewayContext(c), c.Param("id"), req.Quantity)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, prod)
}
