package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/retry"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type AuthHandler struct {
	db         *gorm.DB
	issuer     *identity.Issuer
	resolver   *tenant.Resolver
	checkEmail func(email string) bool
}

func NewAuthHandler(db *gorm.DB, issuer *identity.Issuer, resolver *tenant.Resolver) *AuthHandler {
	return &AuthHandler{
		db:         db,
		issuer:     issuer,
		resolver:   resolver,
		checkEmail: validators.IsEmailDomainValid,
	}
}

// WithEmailCheck replaces the email domain check (DNS lookup by default).
func (h *AuthHandler) WithEmailCheck(fn func(string) bool) *AuthHandler {
	h.checkEmail = fn
	return h
}

// --------- Requests ---------

type RegisterRequest struct {
	ShopName    string `json:"shop_name" binding:"required"`
	ShopCode    string `json:"shop_code" binding:"required"`
	ShopPhone   string `json:"shop_phone"`
	ShopAddress string `json:"shop_address"`
	Timezone    string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.ShopCode))
	email := validators.NormalizeEmail(req.Email)

	if !h.checkEmail(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	var (
		user models.User
		shop models.Tenant
	)

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Tenant{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("code_already_exists")
		}

		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("email_already_exists")
		}

		user = models.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		shop = models.Tenant{
			OwnerID:  user.ID,
			Code:     code,
			Name:     req.ShopName,
			Phone:    req.ShopPhone,
			Address:  req.ShopAddress,
			Email:    email,
			Timezone: tz,
			Active:   true,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}

		profile := models.Profile{
			UserID:   user.ID,
			TenantID: &shop.ID,
			FullName: req.Name,
			Phone:    req.Phone,
			Role:     models.RoleAdmin,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if retry.IsConflict(err) {
			httperr.Conflict(c, "code_already_exists", "Shop code or email is already registered.")
			return
		}
		writeError(c, err)
		return
	}

	token, err := h.issuer.Issue(&user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tenant": shop,
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		writeError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := h.issuer.Issue(&user)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"user":  user,
		"token": token,
	}

	principal := &identity.Principal{ID: user.ID, Role: user.Role}
	if tid, err := h.resolver.Resolve(c.Request.Context(), principal); err == nil {
		resp["tenant_id"] = tid
	}

	c.JSON(http.StatusOK, resp)
}
