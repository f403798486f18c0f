package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "rentalog/internal/errors"
	"rentalog/internal/middleware"
	"rentalog/internal/models"
	"rentalog/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	sessions     *middleware.Sessions
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, sessions *middleware.Sessions, cookieSecure bool) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions, cookieSecure: cookieSecure}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID      uint        `json:"id"`
	Email   string      `json:"email"`
	NIB     string      `json:"nib"`
	Role    models.Role `json:"role"`
	IsAdmin bool        `json:"is_admin"`
	AgentID *uint       `json:"agent_id,omitempty"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		NIB:     user.NIB,
		Role:    user.Role,
		IsAdmin: user.Role.IsAdminTier(),
		AgentID: user.AgentID,
	}
}

// Signup handles account registration
// @Summary     Register an account
// @Description Register an agent or administrator account. Agents get an agent record.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body services.SignupInput true "Account data"
// @Success     201 {object} UserResponse "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": newUserResponse(user)})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate and start a session. The token is returned and set as an HttpOnly cookie.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and session started"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, _, err := h.sessions.Issue(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, AuthResponse{Token: token, User: newUserResponse(user)})
}

// Logout ends the browser session
// @Summary     Logout user
// @Description Clear the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]string "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user
// @Summary     Get current user
// @Description Get the authenticated user's profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := gin.H{"user": newUserResponse(user)}
	if user.Agent != nil {
		resp["agent"] = user.Agent
	}
	c.JSON(http.StatusOK, resp)
}
