package controllers

import (
	"github.com/ADat1304/Project-cafe/pkg/resp"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct{ Auth *services.AuthService }

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := a.Auth.Login(utils.GatewayContext(c), req.Username, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, res)
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.Auth.Logout(c.Request.Context(), utils.CurrentSessionID(c)); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"loggedOut": true})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	s := utils.CurrentSession(c)
	resp.OK(c, gin.H{
		"username":  s.Username,
		"fullName":  s.FullName,
		"roles":     s.RoleList(),
		"expiresAt": s.ExpiresAt,
	})
}
