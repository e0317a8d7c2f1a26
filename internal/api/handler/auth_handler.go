package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/api/response"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type AuthHandler struct {
	userService service.IUserService
}

func NewAuthHandler(userService service.IUserService) *AuthHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &AuthHandler{
		userService: userService,
	}
}

// Register POST /api/auth/register
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	user, accessToken, err := a.userService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}

	response.CreatedJSON(w, dto.AuthResponseDTO{
		Token: accessToken,
		User:  convertUserToDTO(user),
	})
}

// Login POST /api/auth/login
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	user, accessToken, err := a.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}

	response.SuccessJSON(w, dto.AuthResponseDTO{
		Token: accessToken,
		User:  convertUserToDTO(user),
	})
}

// Me GET /api/auth/me
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.userService.GetUser(r.Context(), currentUserID(r))
	if err != nil {
		response.ErrorJSON(w, r, err)
		return
	}
	response.SuccessJSON(w, convertUserToDTO(user))
}
