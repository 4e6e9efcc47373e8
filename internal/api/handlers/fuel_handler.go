// server/internal/api/handlers/fuel_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gestor-frete-api-server/internal/api/middleware"
	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/s3"
	"gestor-frete-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type FuelHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Hub        *socket.Hub
}

type FuelPurchasePayload struct {
	Date          string  `json:"date" binding:"required"` // YYYY-MM-DD
	DriverID      string  `json:"driverID"`
	ClientName    string  `json:"clientName"`
	Liters        float64 `json:"liters" binding:"required,gt=0"`
	PricePerLiter float64 `json:"pricePerLiter" binding:"required,gt=0"`
}

func (h *FuelHandler) broadcast(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Collection: "fuel_purchases", Action: action, ID: id})
	}
}

// CreateFuelPurchase registers an abastecimento. The attendant (posto)
// names the driver; a driver token registers against itself.
func (h *FuelHandler) CreateFuelPurchase(c *gin.Context) {
	var payload FuelPurchasePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseRequestDate(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida, use o formato YYYY-MM-DD"})
		return
	}

	driverID := payload.DriverID
	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver {
		driverID = c.GetString(middleware.CtxDriverID)
	}
	if driverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driverID is required"})
		return
	}

	var driver models.Driver
	err = h.DB.Collection("drivers").
		FindOne(context.Background(), bson.M{"driverID": driverID, "active": true}).
		Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Motorista não encontrado ou inativo"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check driver"})
		}
		return
	}

	purchase := models.FuelPurchase{
		PurchaseID:    fmt.Sprintf("ABS-%s", uuid.New().String()[:8]),
		Date:          date,
		DriverID:      driverID,
		ClientName:    payload.ClientName,
		Liters:        payload.Liters,
		PricePerLiter: payload.PricePerLiter,
		Status:        models.StatusComplete,
		RegisteredBy:  c.GetString(middleware.CtxAccountID),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	purchase.ComputeTotal()

	if _, err := h.DB.Collection("fuel_purchases").InsertOne(context.Background(), purchase); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fuel purchase"})
		return
	}

	h.broadcast("created", purchase.PurchaseID)
	c.JSON(http.StatusCreated, purchase)
}

// GetFuelPurchases lists abastecimentos. The posto sees what it
// registered, a driver sees their own, the admin filters freely.
func (h *FuelHandler) GetFuelPurchases(c *gin.Context) {
	filter := bson.M{}

	switch c.GetString(middleware.CtxRole) {
	case models.RoleDriver:
		filter["driverID"] = c.GetString(middleware.CtxDriverID)
	case models.RolePosto:
		filter["registeredBy"] = c.GetString(middleware.CtxAccountID)
	default:
		if driverID := c.Query("driver"); driverID != "" {
			filter["driverID"] = driverID
		}
	}

	boolQueryFilter(c, filter, "paid", "paid")
	dateRangeFilter(c, filter, "date")

	cursor, err := h.DB.Collection("fuel_purchases").Find(context.Background(), filter, listOptions(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query fuel purchases"})
		return
	}
	defer cursor.Close(context.Background())

	var purchases []models.FuelPurchase
	if err = cursor.All(context.Background(), &purchases); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode fuel purchases"})
		return
	}

	if purchases == nil {
		purchases = []models.FuelPurchase{}
	}

	c.JSON(http.StatusOK, purchases)
}

// UpdateFuelPurchase edits an abastecimento and re-derives the total.
func (h *FuelHandler) UpdateFuelPurchase(c *gin.Context) {
	purchaseID := c.Param("id")

	var payload FuelPurchasePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseRequestDate(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida, use o formato YYYY-MM-DD"})
		return
	}

	collection := h.DB.Collection("fuel_purchases")

	var purchase models.FuelPurchase
	if err := collection.FindOne(context.Background(), bson.M{"purchaseID": purchaseID}).Decode(&purchase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Abastecimento não encontrado"})
		return
	}

	if purchase.PaymentID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Abastecimento já liquidado em um pagamento"})
		return
	}

	purchase.Date = date
	purchase.ClientName = payload.ClientName
	purchase.Liters = payload.Liters
	purchase.PricePerLiter = payload.PricePerLiter
	purchase.ComputeTotal()

	_, err = collection.UpdateOne(context.Background(), bson.M{"purchaseID": purchaseID}, bson.M{"$set": bson.M{
		"date":          purchase.Date,
		"clientName":    purchase.ClientName,
		"liters":        purchase.Liters,
		"pricePerLiter": purchase.PricePerLiter,
		"total":         purchase.Total,
		"updatedAt":     time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fuel purchase"})
		return
	}

	h.broadcast("updated", purchaseID)
	c.JSON(http.StatusOK, purchase)
}

// TogglePaid flips the paid flag directly, outside batching.
func (h *FuelHandler) TogglePaid(c *gin.Context) {
	purchaseID := c.Param("id")
	collection := h.DB.Collection("fuel_purchases")

	var purchase models.FuelPurchase
	if err := collection.FindOne(context.Background(), bson.M{"purchaseID": purchaseID}).Decode(&purchase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Abastecimento não encontrado"})
		return
	}

	if purchase.PaymentID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Abastecimento pertence a um lote de pagamento; exclua o pagamento para reverter"})
		return
	}

	_, err := collection.UpdateOne(context.Background(), bson.M{"purchaseID": purchaseID},
		bson.M{"$set": bson.M{"paid": !purchase.Paid, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update fuel purchase"})
		return
	}

	h.broadcast("updated", purchaseID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "paid": !purchase.Paid})
}

// DeleteFuelPurchase removes an abastecimento, reversing any payment
// linkage (the payment total grows back by the removed charge).
func (h *FuelHandler) DeleteFuelPurchase(c *gin.Context) {
	purchaseID := c.Param("id")
	collection := h.DB.Collection("fuel_purchases")

	var purchase models.FuelPurchase
	if err := collection.FindOne(context.Background(), bson.M{"purchaseID": purchaseID}).Decode(&purchase); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Abastecimento não encontrado"})
		return
	}

	if purchase.PaymentID != "" {
		_, err := h.DB.Collection("payments").UpdateOne(context.Background(),
			bson.M{"paymentID": purchase.PaymentID},
			bson.M{
				"$pull": bson.M{"fuelIDs": purchase.PurchaseID},
				"$inc":  bson.M{"netTotal": purchase.Total},
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach fuel purchase from payment"})
			return
		}
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"purchaseID": purchaseID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fuel purchase"})
		return
	}

	h.broadcast("deleted", purchaseID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Abastecimento excluído"})
}

// UploadReceipt attaches the comprovante de abastecimento.
func (h *FuelHandler) UploadReceipt(c *gin.Context) {
	purchaseID := c.Param("id")
	collection := h.DB.Collection("fuel_purchases")

	count, err := collection.CountDocuments(context.Background(), bson.M{"purchaseID": purchaseID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Abastecimento não encontrado"})
		return
	}

	pointer, err := receiveUpload(c, h.S3Uploader, fmt.Sprintf("fuel-purchases/%s", purchaseID))
	if err != nil {
		return
	}

	_, err = collection.UpdateOne(context.Background(), bson.M{"purchaseID": purchaseID},
		bson.M{"$set": bson.M{"receipt": pointer, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
		return
	}

	h.broadcast("updated", purchaseID)
	c.JSON(http.StatusOK, pointer)
}
