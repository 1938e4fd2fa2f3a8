package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pdf-collab-api/internal/application/ports"
	"pdf-collab-api/internal/application/services"
	userDB "pdf-collab-api/internal/infrastructure/db/postgres/user"
	"pdf-collab-api/internal/interface/api/rest/dto/auth"
	"pdf-collab-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteSignup, ac.SignupHandler)
	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) SignupHandler(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"message": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateSignup(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing fields",
			"details": errs,
		})
		return
	}

	_, err := ac.authService.Signup(
		c.Request.Context(),
		req.Name,
		validator.NormalizeEmail(req.Email),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"message": "Internal server error"},
		)
		ac.logger.Error("Signup() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"message": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Missing fields",
			"details": errs,
		})
		return
	}

	token, u, err := ac.authService.Login(
		c.Request.Context(),
		validator.NormalizeEmail(req.Email),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"message": "Internal server error"},
		)
		ac.logger.Error("Login() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Token: token,
		Name:  u.Name,
		Email: u.Email,
	})
}
