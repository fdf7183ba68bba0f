package v1

import (
	"net/http"

	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/internal/domain"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase, middlewares ...gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	users := public.Group("/users", middlewares...)
	{
		users.POST("/signup", handler.Signup)
		users.POST("/login", handler.Login)
	}
}

type SignupRequest struct {
	Name             string                  `json:"name" binding:"required,no_emoji"`
	Username         string                  `json:"username" binding:"required,not_blank,max=64"`
	Password         string                  `json:"password" binding:"required,max=72"`
	PhoneNumber      string                  `json:"phone_number" binding:"omitempty,valid_phone"`
	Gender           string                  `json:"gender"`
	DateOfBirth      domain.Date             `json:"date_of_birth" swaggertype:"string" example:"1990-01-01"`
	MembershipStatus domain.MembershipStatus `json:"membership_status" binding:"omitempty,oneof=Active Inactive"`
	Address          string                  `json:"address"`
	ProfilePicture   string                  `json:"profile_picture"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary      User registration
// @Description  Create an account and receive a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        signup  body      SignupRequest  true  "Account details"
// @Success      201     {object}  domain.AuthResult
// @Failure      400     {object}  response.ErrorBody
// @Failure      429     {object}  response.ErrorBody
// @Router       /users/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	result, err := h.authUC.Signup(c.Request.Context(), domain.SignupInput{
		Name:             req.Name,
		Username:         req.Username,
		Password:         req.Password,
		PhoneNumber:      req.PhoneNumber,
		Gender:           req.Gender,
		DateOfBirth:      req.DateOfBirth,
		MembershipStatus: req.MembershipStatus,
		Address:          req.Address,
		ProfilePicture:   req.ProfilePicture,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

// Login godoc
// @Summary      User login
// @Description  Exchange a username and password for a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  LoginResponse
// @Failure      400    {object}  response.ErrorBody
// @Failure      401    {object}  response.ErrorBody
// @Failure      429    {object}  response.ErrorBody
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), domain.LoginInput{
		Username:  req.Username,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(response.RequestIDKey),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.JSON(c, http.StatusOK, LoginResponse{Token: token})
}
