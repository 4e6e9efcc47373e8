// server/internal/api/handlers/payment_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gestor-frete-api-server/internal/api/middleware"
	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/s3"
	"gestor-frete-api-server/internal/settlement"
	"gestor-frete-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
	Hub        *socket.Hub
}

type CreatePaymentRequest struct {
	DriverID   string   `json:"driverID" binding:"required"`
	FreightIDs []string `json:"freightIDs"`
	FuelIDs    []string `json:"fuelIDs"`
	SupplyIDs  []string `json:"supplyIDs"`
}

func (h *PaymentHandler) broadcast(action, id string) {
	if h.Hub != nil {
		h.Hub.Broadcast(socket.Event{Collection: "payments", Action: action, ID: id})
	}
}

// CreatePayment batches the selected unpaid line items of one driver into
// a payment: computes the net total and the period label, persists the
// payment and marks every constituent item paid and linked.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := context.Background()

	freights, fuels, supplies, err := h.loadDriverRecords(ctx, req.DriverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load driver records"})
		return
	}

	allUnpaid := settlement.UnpaidItems(freights, fuels, supplies)

	selected, err := selectItems(allUnpaid, req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	draft, err := settlement.BuildDraft(selected, allUnpaid)
	if err != nil {
		if errors.Is(err, settlement.ErrEmptySelection) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	payment := models.Payment{
		PaymentID:   fmt.Sprintf("PAG-%s", uuid.New().String()[:8]),
		DriverID:    req.DriverID,
		PeriodLabel: draft.PeriodLabel,
		NetTotal:    draft.NetTotal,
		FreightIDs:  draft.FreightIDs,
		FuelIDs:     draft.FuelIDs,
		SupplyIDs:   draft.SupplyIDs,
		CreatedAt:   time.Now(),
	}

	if _, err := h.DB.Collection("payments").InsertOne(ctx, payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	if err := h.linkItems(ctx, payment, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment created but linking items failed", "details": err.Error()})
		return
	}

	h.broadcast("created", payment.PaymentID)
	c.JSON(http.StatusCreated, payment)
}

// selectItems resolves the requested ids against the driver's unpaid
// items, rejecting ids that are unknown, already paid or someone else's.
func selectItems(allUnpaid []settlement.LineItem, req CreatePaymentRequest) ([]settlement.LineItem, error) {
	byID := make(map[string]settlement.LineItem, len(allUnpaid))
	for _, item := range allUnpaid {
		byID[item.ID] = item
	}

	var selected []settlement.LineItem
	for _, group := range [][]string{req.FreightIDs, req.FuelIDs, req.SupplyIDs} {
		for _, id := range group {
			item, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("item %s não está pendente para este motorista", id)
			}
			selected = append(selected, item)
		}
	}
	return selected, nil
}

// linkItems marks (or unmarks) every item of a payment. paid=true sets
// the paid flag and the paymentID link; paid=false reverses both.
func (h *PaymentHandler) linkItems(ctx context.Context, payment models.Payment, paid bool) error {
	update := bson.M{"$set": bson.M{"paid": paid, "updatedAt": time.Now()}}
	if paid {
		update["$set"].(bson.M)["paymentID"] = payment.PaymentID
	} else {
		update = bson.M{
			"$set":   bson.M{"paid": false, "updatedAt": time.Now()},
			"$unset": bson.M{"paymentID": ""},
		}
	}

	targets := []struct {
		collection string
		field      string
		ids        []string
	}{
		{"freights", "freightID", payment.FreightIDs},
		{"fuel_purchases", "purchaseID", payment.FuelIDs},
		{"supplies", "supplyID", payment.SupplyIDs},
	}

	for _, t := range targets {
		if len(t.ids) == 0 {
			continue
		}
		_, err := h.DB.Collection(t.collection).UpdateMany(ctx,
			bson.M{t.field: bson.M{"$in": t.ids}}, update)
		if err != nil {
			return err
		}
	}
	return nil
}

// loadDriverRecords fetches everything the aggregator and batcher need
// for one driver in a single fan-out.
func (h *PaymentHandler) loadDriverRecords(ctx context.Context, driverID string) ([]models.Freight, []models.FuelPurchase, []models.OtherSupply, error) {
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

// GetPayments lists payments; a driver token sees its own, the admin
// filters by driver and date range.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	filter := bson.M{}

	if role := c.GetString(middleware.CtxRole); role == models.RoleDriver {
		filter["driverID"] = c.GetString(middleware.CtxDriverID)
	} else if driverID := c.Query("driver"); driverID != "" {
		filter["driverID"] = driverID
	}
	dateRangeFilter(c, filter, "createdAt")

	cursor, err := h.DB.Collection("payments").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query payments"})
		return
	}
	defer cursor.Close(context.Background())

	var payments []models.Payment
	if err = cursor.All(context.Background(), &payments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode payments"})
		return
	}

	if payments == nil {
		payments = []models.Payment{}
	}

	c.JSON(http.StatusOK, payments)
}

// DeletePayment removes a payment batch and reverses its linkage: every
// settled item goes back to unpaid.
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	paymentID := c.Param("id")
	collection := h.DB.Collection("payments")

	var payment models.Payment
	if err := collection.FindOne(context.Background(), bson.M{"paymentID": paymentID}).Decode(&payment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento não encontrado"})
		return
	}

	if err := h.linkItems(context.Background(), payment, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unmark payment items"})
		return
	}

	if _, err := collection.DeleteOne(context.Background(), bson.M{"paymentID": paymentID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete payment"})
		return
	}

	h.broadcast("deleted", paymentID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Pagamento excluído e itens liberados"})
}

// UploadProof attaches the comprovante de pagamento.
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	paymentID := c.Param("id")
	collection := h.DB.Collection("payments")

	count, err := collection.CountDocuments(context.Background(), bson.M{"paymentID": paymentID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pagamento não encontrado"})
		return
	}

	pointer, err := receiveUpload(c, h.S3Uploader, fmt.Sprintf("payments/%s", paymentID))
	if err != nil {
		return
	}

	_, err = collection.UpdateOne(context.Background(), bson.M{"paymentID": paymentID},
		bson.M{"$set": bson.M{"proof": pointer}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save proof"})
		return
	}

	h.broadcast("updated", paymentID)
	c.JSON(http.StatusOK, pointer)
}
