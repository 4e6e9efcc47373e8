// server/internal/api/handlers/supply_handler.go
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

type SupplyHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Hub        *socket.Hub
}

type SupplyPayload struct {
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	DriverID    string  `json:"driverID"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,gt=0"`
}

func (h *SupplyHandler) broadcast(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Collection: "supplies", Action: action, ID: id})
	}
}

// CreateSupply registers an "outros insumos" charge against a driver.
func (h *SupplyHandler) CreateSupply(c *gin.Context) {
	var payload SupplyPayload
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

	supply := models.OtherSupply{
		SupplyID:    fmt.Sprintf("INS-%s", uuid.New().String()[:8]),
		Date:        date,
		DriverID:    driverID,
		Quantity:    payload.Quantity,
		Description: payload.Description,
		UnitPrice:   payload.UnitPrice,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	supply.ComputeTotal()

	if _, err := h.DB.Collection("supplies").InsertOne(context.Background(), supply); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supply"})
		return
	}

	h.broadcast("created", supply.SupplyID)
	c.JSON(http.StatusCreated, supply)
}

// GetSupplies lists insumos; drivers see their own, the admin filters.
func (h *SupplyHandler) GetSupplies(c *gin.Context) {
	filter := bson.M{}

	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver {
		filter["driverID"] = c.GetString(middleware.CtxDriverID)
	} else if driverID := c.Query("driver"); driverID != "" {
		filter["driverID"] = driverID
	}

	boolQueryFilter(c, filter, "paid", "paid")
	dateRangeFilter(c, filter, "date")

	cursor, err := h.DB.Collection("supplies").Find(context.Background(), filter, listOptions(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query supplies"})
		return
	}
	defer cursor.Close(context.Background())

	var supplies []models.OtherSupply
	if err = cursor.All(context.Background(), &supplies); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode supplies"})
		return
	}

	if supplies == nil {
		supplies = []models.OtherSupply{}
	}

	c.JSON(http.StatusOK, supplies)
}

// UpdateSupply edits an insumo and re-derives the total.
func (h *SupplyHandler) UpdateSupply(c *gin.Context) {
	supplyID := c.Param("id")

	var payload SupplyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseRequestDate(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida, use o formato YYYY-MM-DD"})
		return
	}

	collection := h.DB.Collection("supplies")

	var supply models.OtherSupply
	if err := collection.FindOne(context.Background(), bson.M{"supplyID": supplyID}).Decode(&supply); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
		return
	}

	if supply.PaymentID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Insumo já liquidado em um pagamento"})
		return
	}

	supply.Date = date
	supply.Quantity = payload.Quantity
	supply.Description = payload.Description
	supply.UnitPrice = payload.UnitPrice
	supply.ComputeTotal()

	_, err = collection.UpdateOne(context.Background(), bson.M{"supplyID": supplyID}, bson.M{"$set": bson.M{
		"date":        supply.Date,
		"quantity":    supply.Quantity,
		"description": supply.Description,
		"unitPrice":   supply.UnitPrice,
		"total":       supply.Total,
		"updatedAt":   time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supply"})
		return
	}

	h.broadcast("updated", supplyID)
	c.JSON(http.StatusOK, supply)
}

// TogglePaid flips the paid flag directly, outside batching.
func (h *SupplyHandler) TogglePaid(c *gin.Context) {
	supplyID := c.Param("id")
	collection := h.DB.Collection("supplies")

	var supply models.OtherSupply
	if err := collection.FindOne(context.Background(), bson.M{"supplyID": supplyID}).Decode(&supply); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
		return
	}

	if supply.PaymentID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Insumo pertence a um lote de pagamento; exclua o pagamento para reverter"})
		return
	}

	_, err := collection.UpdateOne(context.Background(), bson.M{"supplyID": supplyID},
		bson.M{"$set": bson.M{"paid": !supply.Paid, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supply"})
		return
	}

	h.broadcast("updated", supplyID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "paid": !supply.Paid})
}

// DeleteSupply removes an insumo, reversing any payment linkage.
func (h *SupplyHandler) DeleteSupply(c *gin.Context) {
	supplyID := c.Param("id")
	collection := h.DB.Collection("supplies")

	var supply models.OtherSupply
	if err := collection.FindOne(context.Background(), bson.M{"supplyID": supplyID}).Decode(&supply); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
		return
	}

	if supply.PaymentID != "" {
		_, err := h.DB.Collection("payments").UpdateOne(context.Background(),
			bson.M{"paymentID": supply.PaymentID},
			bson.M{
				"$pull": bson.M{"supplyIDs": supply.SupplyID},
				"$inc":  bson.M{"netTotal": supply.Total},
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach supply from payment"})
			return
		}
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"supplyID": supplyID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supply"})
		return
	}

	h.broadcast("deleted", supplyID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Insumo excluído"})
}

// UploadReceipt attaches the comprovante do insumo.
func (h *SupplyHandler) UploadReceipt(c *gin.Context) {
	supplyID := c.Param("id")
	collection := h.DB.Collection("supplies")

	count, err := collection.CountDocuments(context.Background(), bson.M{"supplyID": supplyID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Insumo não encontrado"})
		return
	}

	pointer, err := receiveUpload(c, h.S3Uploader, fmt.Sprintf("supplies/%s", supplyID))
	if err != nil {
		return
	}

	_, err = collection.UpdateOne(context.Background(), bson.M{"supplyID": supplyID},
		bson.M{"$set": bson.M{"receipt": pointer, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
		return
	}

	h.broadcast("updated", supplyID)
	c.JSON(http.StatusOK, pointer)
}
