package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/olekhymko/contacts-api/constant"
	"github.com/olekhymko/contacts-api/model"
	utilsContext "github.com/olekhymko/contacts-api/utils/context"
	"github.com/olekhymko/contacts-api/utils/errors"
	validatorx "github.com/olekhymko/contacts-api/utils/validator"
)

// Register handler
// @Summary Register user
// @Description Register a new user and queue a confirmation email
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errorResponse
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email and password, receive JWT token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errorResponse
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Refresh handler
// @Summary Refresh token pair
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RefreshRequest true "Refresh Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} errorResponse
// @Router /refresh [post]
func (s *RestHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.RefreshToken(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ConfirmEmail handler
// @Summary Confirm email address
// @Description Confirm a user's email via the mailed token
// @Tags Auth
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorResponse
// @Router /confirm/{token} [get]
func (s *RestHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := mux.Vars(r)["token"]

	if err := s.UserApp.ConfirmEmail(ctx, token); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, map[string]string{"message": "email confirmed"})
}

// UpdateAvatar handler
// @Summary Update avatar URL
// @Description Replace the authenticated user's avatar URL
// @Tags Users
// @Accept json
// @Produce json
// @Param request body model.UpdateAvatarRequest true "Avatar Request"
// @Success 200 {object} model.UserEntity
// @Failure 400 {object} errorResponse
// @Security BearerAuth
// @Router /api/users/avatar [patch]
func (s *RestHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.UpdateAvatar(ctx, userID, req.AvatarURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
