package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"miniblog/config"
	"miniblog/models"
	"miniblog/utils"
)

// AuthController handles user registration and credential login.
type AuthController struct {
	db  *gorm.DB
	cfg config.AppConfig
}

// NewAuthController creates an AuthController bound to an explicit database handle.
func NewAuthController(db *gorm.DB, cfg config.AppConfig) *AuthController {
	return &AuthController{db: db, cfg: cfg}
}

// Register creates a new user and returns a signed token.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, utils.BindingErrors(err, map[string]string{
			"Name":     "Name is required",
			"Email":    "Please include a valid email",
			"Password": "Please enter a password with 6 or more characters",
		}, "Invalid request payload"))
		return
	}

	// Emails are case-normalized so duplicates cannot differ by case only.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.ValidationFailed(ctx, []utils.FieldError{{Msg: "User with this email already exists"}})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ServerError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}

	if err := a.db.Create(&user).Error; err != nil {
		// Lost a race against a concurrent registration for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.ValidationFailed(ctx, []utils.FieldError{{Msg: "User with this email already exists"}})
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	token, err := utils.GenerateToken([]byte(a.cfg.JWTSecret), user.ID, user.Name, utils.TokenTTL)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"msg":   "User registered successfully",
		"token": token,
	})
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(ctx, utils.BindingErrors(err, map[string]string{
			"Email":    "Please include a valid email",
			"Password": "Password is required",
		}, "Invalid request payload"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ValidationFailed(ctx, []utils.FieldError{{Msg: "Invalid credentials"}})
			return
		}
		utils.ServerError(ctx, err)
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.ValidationFailed(ctx, []utils.FieldError{{Msg: "Invalid credentials"}})
		return
	}

	token, err := utils.GenerateToken([]byte(a.cfg.JWTSecret), user.ID, user.Name, utils.TokenTTL)
	if err != nil {
		utils.ServerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"msg":   "User logged in successfully",
		"token": token,
	})
}
