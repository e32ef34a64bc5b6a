package controllers

import (
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type NoteRequest struct {
	Notes string `json:"notes"`
}

type TableRequest struct {
	TableNumber string `json:"tableNumber"`
}

type PaymentRequest struct {
	PaymentMethodType string `json:"paymentMethodType"`
}

// CartController serves the sales screen: the session's working cart, the
// catalog it prices from and order submission.
type CartController struct {
	Catalog *services.CatalogService
	Carts   *services.CartService
	Submit  *services.SubmissionService
}

func NewCartController(catalog *services.CatalogService, carts *services.CartService, submit *services.SubmissionService) *CartController {
	return &CartController{Catalog: catalog, Carts: carts, Submit: submit}
}

// cartResult writes the view even when err is set so the screen can re-render.
func cartResult(c *gin.Context, view services.CartView, err error) {
	if err != nil {
		resp.ErrorWithData(c, err, view)
		return
	}
	resp.OK(c, view)
}

// GET /sales/catalog  (refreshes products, tables and payment methods together)
func (s *CartController) RefreshCatalog(c *gin.Context) {
	errs := s.Catalog.RefreshAll(utils.GatewayContext(c))
	failed := map[string]string{}
	for r, err := range errs {
		if err != nil {
			failed[string(r)] = services.UserMessage(err)
		}
	}
	out := gin.H{
		"products":       s.Catalog.Products(),
		"tables":         services.Summarize(s.Catalog.Tables()),
		"paymentMethods": s.Catalog.PaymentMethods(),
	}
	if len(failed) > 0 {
		out["errors"] = failed
	}
	resp.OK(c, out)
}

// GET /sales/cart
func (s *CartController) View(c *gin.Context) {
	resp.OK(c, s.Carts.View(utils.CurrentSessionID(c)))
}

// POST /sales/cart/items
func (s *CartController) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := s.Carts.AddProduct(utils.CurrentSessionID(c), req.ProductID)
	cartResult(c, view, err)
}

// PATCH /sales/cart/items/:index  {quantity}
func (s *CartController) SetQuantity(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := s.Carts.SetQuantity(utils.CurrentSessionID(c), i, req.Quantity)
	cartResult(c, view, err)
}

// POST /sales/cart/items/:index/increment
func (s *CartController) Increment(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	view, err := s.Carts.Increment(utils.CurrentSessionID(c), i)
	cartResult(c, view, err)
}

// POST /sales/cart/items/:index/decrement
func (s *CartController) Decrement(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	view, err := s.Carts.Decrement(utils.CurrentSessionID(c), i)
	cartResult(c, view, err)
}

// DELETE /sales/cart/items/:index
func (s *CartController) RemoveLine(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	view, err := s.Carts.RemoveLine(utils.CurrentSessionID(c), i)
	cartResult(c, view, err)
}

// PUT /sales/cart/items/:index/notes
func (s *CartController) SetNote(c *gin.Context) {
	i, ok := lineIndex(c)
	if !ok {
		return
	}
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := s.Carts.SetNote(utils.CurrentSessionID(c), i, req.Notes)
	cartResult(c, view, err)
}

// PUT /sales/cart/table
func (s *CartController) SelectTable(c *gin.Context) {
	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := s.Carts.SelectTable(utils.CurrentSessionID(c), req.TableNumber)
	cartResult(c, view, err)
}

// PUT /sales/cart/payment-method
func (s *CartController) SelectPaymentMethod(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := s.Carts.SelectPaymentMethod(utils.CurrentSessionID(c), req.PaymentMethodType)
	cartResult(c, view, err)
}

// DELETE /sales/cart
func (s *CartController) Reset(c *gin.Context) {
	view, err := s.Carts.Reset(utils.CurrentSessionID(c))
	cartResult(c, view, err)
}

// POST /sales/cart/submit
func (s *CartController) SubmitOrder(c *gin.Context) {
	res, err := s.Submit.Submit(utils.GatewayContext(c), utils.CurrentSessionID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, res)
}
