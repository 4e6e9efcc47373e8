// server/internal/api/handlers/driver_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gestor-frete-api-server/internal/api/middleware"
	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/settlement"
	"gestor-frete-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DriverHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type DriverPayload struct {
	Name       string   `json:"name" binding:"required"`
	CPF        string   `json:"cpf" binding:"required"`
	Phone      string   `json:"phone" binding:"required"`
	Plates     []string `json:"plates" binding:"required,min=1"`
	ClientName string   `json:"clientName"`
}

func (h *DriverHandler) broadcast(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Collection: "drivers", Action: action, ID: id})
	}
}

// CreateDriver registers a motorista. CPF and plates must be unique
// across the registry.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var payload DriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("drivers")

	count, err := collection.CountDocuments(context.Background(), bson.M{"cpf": payload.CPF})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for driver"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Já existe um motorista com este CPF"})
		return
	}

	count, err = collection.CountDocuments(context.Background(), bson.M{"plates": bson.M{"$in": payload.Plates}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for plates"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Placa já cadastrada para outro motorista"})
		return
	}

	driver := models.Driver{
		DriverID:   fmt.Sprintf("MOT-%s", uuid.New().String()[:8]),
		Name:       payload.Name,
		CPF:        payload.CPF,
		Phone:      payload.Phone,
		Plates:     payload.Plates,
		ClientName: payload.ClientName,
		Active:     true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := collection.InsertOne(context.Background(), driver); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver"})
		return
	}

	h.broadcast("created", driver.DriverID)
	c.JSON(http.StatusCreated, driver)
}

// GetDrivers lists the registry. The posto only needs active drivers for
// lookup at the pump; the admin sees everyone.
func (h *DriverHandler) GetDrivers(c *gin.Context) {
	filter := bson.M{}
	if c.GetString(middleware.CtxRole) == models.RolePosto {
		filter["active"] = true
	}

	cursor, err := h.DB.Collection("drivers").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query drivers"})
		return
	}
	defer cursor.Close(context.Background())

	var drivers []models.Driver
	if err = cursor.All(context.Background(), &drivers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode drivers"})
		return
	}

	if drivers == nil {
		drivers = []models.Driver{}
	}

	c.JSON(http.StatusOK, drivers)
}

// UpdateDriver edits the registry entry.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	driverID := c.Param("id")

	var payload DriverPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("drivers")

	// The plates must not collide with another driver's.
	count, err := collection.CountDocuments(context.Background(), bson.M{
		"plates":   bson.M{"$in": payload.Plates},
		"driverID": bson.M{"$ne": driverID},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for plates"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Placa já cadastrada para outro motorista"})
		return
	}

	result, err := collection.UpdateOne(context.Background(), bson.M{"driverID": driverID}, bson.M{"$set": bson.M{
		"name":       payload.Name,
		"cpf":        payload.CPF,
		"phone":      payload.Phone,
		"plates":     payload.Plates,
		"clientName": payload.ClientName,
		"updatedAt":  time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Motorista não encontrado"})
		return
	}

	h.broadcast("updated", driverID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Motorista atualizado"})
}

// AuthorizeDriver releases an onboarded driver for portal login.
func (h *DriverHandler) AuthorizeDriver(c *gin.Context) {
	driverID := c.Param("id")

	result, err := h.DB.Collection("drivers").UpdateOne(context.Background(),
		bson.M{"driverID": driverID},
		bson.M{"$set": bson.M{"authenticated": true, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Motorista não encontrado"})
		return
	}

	h.broadcast("updated", driverID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Acesso do motorista liberado"})
}

// DeactivateDriver flips the active flag off; the registry entry stays.
func (h *DriverHandler) DeactivateDriver(c *gin.Context) {
	driverID := c.Param("id")

	result, err := h.DB.Collection("drivers").UpdateOne(context.Background(),
		bson.M{"driverID": driverID},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Motorista não encontrado"})
		return
	}

	h.broadcast("updated", driverID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Motorista desativado"})
}

// GetBalance returns the net amount owed to a driver plus the unpaid line
// items behind it, ready for the admin's batching screen.
func (h *DriverHandler) GetBalance(c *gin.Context) {
	driverID := c.Param("id")
	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver {
		driverID = c.GetString(middleware.CtxDriverID)
	}

	freights, fuels, supplies, err := h.loadRecords(context.Background(), driverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load driver records"})
		return
	}

	balance := settlement.DriverBalance(freights, fuels, supplies)
	items := settlement.UnpaidItems(freights, fuels, supplies)
	if items == nil {
		items = []settlement.LineItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": balance,
		"display": settlement.FormatBRL(balance.UnpaidTotal),
		"items":   items,
	})
}

// GetProfile returns the registry entry behind the logged-in driver.
func (h *DriverHandler) GetProfile(c *gin.Context) {
	driverID := c.GetString(middleware.CtxDriverID)

	var driver models.Driver
	err := h.DB.Collection("drivers").
		FindOne(context.Background(), bson.M{"driverID": driverID}).
		Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Motorista não encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve driver"})
		}
		return
	}

	c.JSON(http.StatusOK, driver)
}

// GetStats summarizes the logged-in driver's dashboard numbers.
func (h *DriverHandler) GetStats(c *gin.Context) {
	driverID := c.GetString(middleware.CtxDriverID)

	freights, fuels, supplies, err := h.loadRecords(context.Background(), driverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load driver records"})
		return
	}

	pending := 0
	completed := 0
	for _, f := range freights {
		if f.Status == models.StatusPending {
			pending++
		} else {
			completed++
		}
	}

	balance := settlement.DriverBalance(freights, fuels, supplies)

	c.JSON(http.StatusOK, gin.H{
		"pendingFreights":   pending,
		"completedFreights": completed,
		"fuelPurchases":     len(fuels),
		"supplies":          len(supplies),
		"unpaidTotal":       balance.UnpaidTotal,
		"display":           settlement.FormatBRL(balance.UnpaidTotal),
	})
}

func (h *DriverHandler) loadRecords(ctx context.Context, driverID string) ([]models.Freight, []models.FuelPurchase, []models.OtherSupply, error) {
	filter := bson.M{"driverID": driverID}

	var freights []models.Freight
	cursor, err := h.DB.Collection("freights").Find(ctx, filter)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cursor.All(ctx, &freights); err != nil {
		return nil, nil, nil, err
	}

	var fuels []models.FuelPurchase
	cursor, err = h.DB.Collection("fuel_purchases").Find(ctx, filter)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cursor.All(ctx, &fuels); err != nil {
		return nil, nil, nil, err
	}

	var supplies []models.OtherSupply
	cursor, err = h.DB.Collection("supplies").Find(ctx, filter)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cursor.All(ctx, &supplies); err != nil {
		return nil, nil, nil, err
	}

	return freights, fuels, supplies, nil
}
