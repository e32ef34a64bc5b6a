package services

import (
	"context"
	"strings"

	"github.com/ADat1304/Project-cafe/entity"
	"github.com/ADat1304/Project-cafe/gateway"
	"github.com/ADat1304/Project-cafe/utils"
)

type UserGateway interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	CreateUser(ctx context.Context, req gateway.UserCreationRequest) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, req gateway.UserUpdateRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type UserIn struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	FullName string   `json:"fullname"`
	Roles    []string `json:"roles"`
}

// UserService manages employee accounts on the gateway.
type UserService struct {
	gw UserGateway
}

func NewUserService(gw UserGateway) *UserService { return &UserService{gw: gw} }

func (s *UserService) List(ctx context.Context) ([]entity.User, error) { return s.gw.ListUsers(ctx) }

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.gw.GetUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in *UserIn) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, invalid(InvalidField, "username", "username is required")
	}
	if len(in.Password) < 6 {
		return nil, invalid(InvalidField, "password", "password must be at least 6 characters")
	}
	roles := utils.NormalizeRoles(in.Roles...)
	if len(roles) == 0 {
		roles = []string{utils.RoleStaff}
	}
	return s.gw.CreateUser(ctx, gateway.UserCreationRequest{
		Username: username,
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		Roles:    roles,
	})
}

// Update changes only the fields that are set.
func (s *UserService) Update(ctx context.Context, id string, in *UserIn) (*entity.User, error) {
	if in.Password != "" && len(in.Password) < 6 {
		return nil, invalid(InvalidField, "password", "password must be at least 6 characters")
	}
	return s.gw.UpdateUser(ctx, id, gateway.UserUpdateRequest{
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
		Roles:    utils.NormalizeRoles(in.Roles...),
	})
}

func (s *UserService) Delete(ctx context.Context, id string) error { return s.gw.DeleteUser(ctx, id) }
