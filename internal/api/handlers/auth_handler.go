// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gestor-frete-api-server/config"
	"gestor-frete-api-server/internal/auth"
	"gestor-frete-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	DB  *mongo.Database
	Cfg config.Config
}

// portalRole maps the :portal path segment to the role its tokens carry.
func portalRole(portal string) (string, bool) {
	switch portal {
	case "driver":
		return models.RoleDriver, true
	case "posto":
		return models.RolePosto, true
	case "client":
		return models.RoleClient, true
	case "admin":
		return models.RoleAdmin, true
	}
	return "", false
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	// Driver signup must name the CPF the admin registered; client signup
	// names the client the account belongs to.
	CPF        string `json:"cpf"`
	ClientName string `json:"clientName"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Login authenticates a portal account and issues a role-scoped token.
func (h *AuthHandler) Login(c *gin.Context) {
	role, ok := portalRole(c.Param("portal"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown portal"})
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var account models.Account
	err := h.DB.Collection("accounts").
		FindOne(context.Background(), bson.M{"email": req.Email, "role": role}).
		Decode(&account)
	if err != nil {
		// Same message for unknown account and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, account.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha incorretos"})
		return
	}

	if account.Status != "active" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Conta bloqueada"})
		return
	}

	// Driver onboarding is admin-gated: the registry entry must be
	// authorized before the portal opens.
	if role == models.RoleDriver {
		var driver models.Driver
		err := h.DB.Collection("drivers").
			FindOne(context.Background(), bson.M{"driverID": account.DriverID}).
			Decode(&driver)
		if err != nil || !driver.Authenticated || !driver.Active {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cadastro aguardando liberação do administrador"})
			return
		}
	}

	expiration, err := time.ParseDuration(h.Cfg.JWT.Expiration)
	if err != nil {
		expiration = 24 * time.Hour
	}

	token, err := auth.GenerateJWT([]byte(h.Cfg.JWT.Secret), expiration, auth.JWTClaims{
		AccountID:  account.AccountID,
		Email:      account.Email,
		Role:       account.Role,
		DriverID:   account.DriverID,
		ClientName: account.ClientName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"account": gin.H{
			"accountID":  account.AccountID,
			"email":      account.Email,
			"name":       account.Name,
			"role":       account.Role,
			"driverID":   account.DriverID,
			"clientName": account.ClientName,
		},
	})
}

// Signup registers a portal account. Admin accounts are seeded, never
// self-registered.
func (h *AuthHandler) Signup(c *gin.Context) {
	role, ok := portalRole(c.Param("portal"))
	if !ok || role == models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown portal"})
		return
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accounts := h.DB.Collection("accounts")

	count, err := accounts.CountDocuments(context.Background(), bson.M{"email": req.Email, "role": role})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for account"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe uma conta com este e-mail"})
		return
	}

	account := models.Account{
		AccountID: fmt.Sprintf("acc-%s", uuid.New().String()[:8]),
		Email:     req.Email,
		Name:      req.Name,
		Role:      role,
		Phone:     req.Phone,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	switch role {
	case models.RoleDriver:
		// The account only works once it is linked to a registered driver.
		if req.CPF == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CPF é obrigatório para cadastro de motorista"})
			return
		}
		var driver models.Driver
		err := h.DB.Collection("drivers").
			FindOne(context.Background(), bson.M{"cpf": req.CPF}).
			Decode(&driver)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CPF não cadastrado pelo administrador"})
			return
		}
		account.DriverID = driver.DriverID
	case models.RoleClient:
		if req.ClientName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Nome do cliente é obrigatório"})
			return
		}
		account.ClientName = req.ClientName
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	account.Password = hashed

	if _, err := accounts.InsertOne(context.Background(), account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":    "success",
		"accountID": account.AccountID,
	})
}

// ResetPassword replaces the password after matching the phone registered
// on the account.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	role, ok := portalRole(c.Param("portal"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown portal"})
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accounts := h.DB.Collection("accounts")

	var account models.Account
	err := accounts.FindOne(context.Background(), bson.M{"email": req.Email, "role": role}).Decode(&account)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conta não encontrada"})
		return
	}

	if account.Phone == "" || account.Phone != req.Phone {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Telefone não confere com o cadastro"})
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = accounts.UpdateOne(context.Background(),
		bson.M{"accountID": account.AccountID},
		bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Senha redefinida com sucesso"})
}
