package controllers

import (
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct{ Users *services.UserService }

func NewUserController(u *services.UserService) *UserController {
	return &UserController{Users: u}
}

// GET /users
func (u *UserController) List(c *gin.Context) {
	rows, err := u.Users.List(utils.GatewayContext(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /users/:id
func (u *UserController) Detail(c *gin.Context) {
	user, err := u.Users.Get(utils.GatewayContext(c), c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// POST /users
func (u *UserController) Create(c *gin.Context) {
	var in services.UserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := u.Users.Create(utils.GatewayContext(c), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, user)
}

// PUT /users/:id
func (u *UserController) Update(c *gin.Context) {
	var in services.UserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := u.Users.Update(utils.GatewayContext(c), c.Param("id"), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// DELETE /users/:id
func (u *UserController) Delete(c *gin.Context) {
	if err := u.Users.Delete(utils.GatewayContext(c), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": c.Param("id")})
}
