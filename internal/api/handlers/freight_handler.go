// server/internal/api/handlers/freight_handler.go
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

type FreightHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Hub        *socket.Hub
}

type FreightPayload struct {
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	DriverID    string  `json:"driverID"`
	ClientName  string  `json:"clientName" binding:"required"`
	DistanceKM  float64 `json:"distanceKM" binding:"required,gt=0"`
	WeightTons  float64 `json:"weightTons" binding:"required,gt=0"`
	DriverRate  float64 `json:"driverRate" binding:"required,gt=0"`
	CarrierRate float64 `json:"carrierRate" binding:"required,gt=0"`
}

func (h *FreightHandler) broadcast(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Collection: "freights", Action: action, ID: id})
	}
}

// CreateFreight registers a new transport job. Drivers create their own;
// the admin names the driver in the payload. Totals are derived here,
// never taken from the request.
func (h *FreightHandler) CreateFreight(c *gin.Context) {
	var payload FreightPayload
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

	freight := models.Freight{
		FreightID:   fmt.Sprintf("FRT-%s", uuid.New().String()[:8]),
		Date:        date,
		DriverID:    driverID,
		ClientName:  payload.ClientName,
		DistanceKM:  payload.DistanceKM,
		WeightTons:  payload.WeightTons,
		DriverRate:  payload.DriverRate,
		CarrierRate: payload.CarrierRate,
		Status:      models.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	freight.ComputeTotals()

	if _, err := h.DB.Collection("freights").InsertOne(context.Background(), freight); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create freight"})
		return
	}

	h.broadcast("created", freight.FreightID)
	c.JSON(http.StatusCreated, freight)
}

// GetFreights lists freights. Driver and client tokens are forced onto
// their own records; the admin filters freely (driver, status, paid,
// clientPaid, date range) with pagination.
func (h *FreightHandler) GetFreights(c *gin.Context) {
	filter := bson.M{}

	switch c.GetString(middleware.CtxRole) {
	case models.RoleDriver:
		filter["driverID"] = c.GetString(middleware.CtxDriverID)
	case models.RoleClient:
		filter["clientName"] = c.GetString(middleware.CtxClientName)
	default:
		if driverID := c.Query("driver"); driverID != "" {
			filter["driverID"] = driverID
		}
		if client := c.Query("client"); client != "" {
			filter["clientName"] = client
		}
	}

	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	boolQueryFilter(c, filter, "paid", "paid")
	boolQueryFilter(c, filter, "clientPaid", "clientPaid")
	dateRangeFilter(c, filter, "date")

	cursor, err := h.DB.Collection("freights").Find(context.Background(), filter, listOptions(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query freights"})
		return
	}
	defer cursor.Close(context.Background())

	var freights []models.Freight
	if err = cursor.All(context.Background(), &freights); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode freights"})
		return
	}

	if freights == nil {
		freights = []models.Freight{}
	}

	c.JSON(http.StatusOK, freights)
}

// UpdateFreight edits the editable fields and re-derives the totals.
// A freight already settled by a payment cannot be edited.
func (h *FreightHandler) UpdateFreight(c *gin.Context) {
	freightID := c.Param("id")

	var payload FreightPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseRequestDate(payload.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data inválida, use o formato YYYY-MM-DD"})
		return
	}

	collection := h.DB.Collection("freights")

	var freight models.Freight
	if err := collection.FindOne(context.Background(), bson.M{"freightID": freightID}).Decode(&freight); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
		return
	}

	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver && freight.DriverID != c.GetString(middleware.CtxDriverID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		return
	}

	if freight.PaymentID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Frete já liquidado em um pagamento"})
		return
	}

	freight.Date = date
	freight.ClientName = payload.ClientName
	freight.DistanceKM = payload.DistanceKM
	freight.WeightTons = payload.WeightTons
	freight.DriverRate = payload.DriverRate
	freight.CarrierRate = payload.CarrierRate
	freight.ComputeTotals()

	_, err = collection.UpdateOne(context.Background(), bson.M{"freightID": freightID}, bson.M{"$set": bson.M{
		"date":         freight.Date,
		"clientName":   freight.ClientName,
		"distanceKM":   freight.DistanceKM,
		"weightTons":   freight.WeightTons,
		"driverRate":   freight.DriverRate,
		"carrierRate":  freight.CarrierRate,
		"driverTotal":  freight.DriverTotal,
		"carrierTotal": freight.CarrierTotal,
		"updatedAt":    time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update freight"})
		return
	}

	h.broadcast("updated", freightID)
	c.JSON(http.StatusOK, freight)
}

// CompleteFreight marks a pending freight as complete, making it count
// toward the driver's balance.
func (h *FreightHandler) CompleteFreight(c *gin.Context) {
	freightID := c.Param("id")

	filter := bson.M{"freightID": freightID, "status": models.StatusPending}
	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver {
		filter["driverID"] = c.GetString(middleware.CtxDriverID)
	}

	result, err := h.DB.Collection("freights").UpdateOne(context.Background(), filter,
		bson.M{"$set": bson.M{"status": models.StatusComplete, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update freight"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado ou já concluído"})
		return
	}

	h.broadcast("updated", freightID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Frete " + freightID + " concluído"})
}

// TogglePaid flips the driver-side paid flag directly, outside batching.
// Items settled by a payment must go through the payment instead.
func (h *FreightHandler) TogglePaid(c *gin.Context) {
	h.toggleFlag(c, "paid")
}

// ToggleClientPaid flips the carrier-side flag. It is independent of the
// driver-side flag; a freight may be client-paid before it is costed.
func (h *FreightHandler) ToggleClientPaid(c *gin.Context) {
	h.toggleFlag(c, "clientPaid")
}

func (h *FreightHandler) toggleFlag(c *gin.Context, field string) {
	freightID := c.Param("id")
	collection := h.DB.Collection("freights")

	var freight models.Freight
	if err := collection.FindOne(context.Background(), bson.M{"freightID": freightID}).Decode(&freight); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
		return
	}

	if field == "paid" && freight.PaymentID != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Frete pertence a um lote de pagamento; exclua o pagamento para reverter"})
		return
	}

	newValue := !freight.Paid
	if field == "clientPaid" {
		newValue = !freight.ClientPaid
	}

	_, err := collection.UpdateOne(context.Background(), bson.M{"freightID": freightID},
		bson.M{"$set": bson.M{field: newValue, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update freight"})
		return
	}

	h.broadcast("updated", freightID)
	c.JSON(http.StatusOK, gin.H{"status": "success", field: newValue})
}

// DeleteFreight removes a freight. When the freight was settled by a
// payment the linkage is reversed first: the id leaves the payment and
// the payment total is recomputed.
func (h *FreightHandler) DeleteFreight(c *gin.Context) {
	freightID := c.Param("id")
	collection := h.DB.Collection("freights")

	var freight models.Freight
	if err := collection.FindOne(context.Background(), bson.M{"freightID": freightID}).Decode(&freight); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
		return
	}

	if freight.PaymentID != "" {
		_, err := h.DB.Collection("payments").UpdateOne(context.Background(),
			bson.M{"paymentID": freight.PaymentID},
			bson.M{
				"$pull": bson.M{"freightIDs": freight.FreightID},
				"$inc":  bson.M{"netTotal": -freight.DriverTotal},
			})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach freight from payment"})
			return
		}
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"freightID": freightID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete freight"})
		return
	}

	h.broadcast("deleted", freightID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Frete excluído"})
}

// UploadReceipt stores a comprovante image in one of the freight's three
// slots (loading, unloading, reception).
func (h *FreightHandler) UploadReceipt(c *gin.Context) {
	freightID := c.Param("id")
	kind := models.ReceiptKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tipo de comprovante inválido"})
		return
	}

	collection := h.DB.Collection("freights")

	var freight models.Freight
	if err := collection.FindOne(context.Background(), bson.M{"freightID": freightID}).Decode(&freight); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
		return
	}

	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver && freight.DriverID != c.GetString(middleware.CtxDriverID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
		return
	}

	pointer, err := receiveUpload(c, h.S3Uploader, fmt.Sprintf("freights/%s/%s", freightID, kind))
	if err != nil {
		return // receiveUpload already wrote the response
	}

	field := map[models.ReceiptKind]string{
		models.ReceiptLoading:   "loadingReceipt",
		models.ReceiptUnloading: "unloadingReceipt",
		models.ReceiptReception: "receptionReceipt",
	}[kind]

	_, err = collection.UpdateOne(context.Background(), bson.M{"freightID": freightID},
		bson.M{"$set": bson.M{field: pointer, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
		return
	}

	h.broadcast("updated", freightID)
	c.JSON(http.StatusOK, pointer)
}

// UploadDocument attaches the freight's document (CT-e, nota...).
func (h *FreightHandler) UploadDocument(c *gin.Context) {
	freightID := c.Param("id")
	collection := h.DB.Collection("freights")

	count, err := collection.CountDocuments(context.Background(), bson.M{"freightID": freightID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Frete não encontrado"})
		return
	}

	pointer, err := receiveUpload(c, h.S3Uploader, fmt.Sprintf("freights/%s/document", freightID))
	if err != nil {
		return
	}

	_, err = collection.UpdateOne(context.Background(), bson.M{"freightID": freightID},
		bson.M{"$set": bson.M{"document": pointer, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save document"})
		return
	}

	h.broadcast("updated", freightID)
	c.JSON(http.StatusOK, pointer)
}
