// server/internal/api/handlers/client_handler.go
package handlers

import (
	"context"
	"net/http"

	"gestor-frete-api-server/internal/api/middleware"
	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/settlement"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClientHandler struct {
	DB *mongo.Database
}

// GetSummary computes the profit view for one client: received vs still
// owed on the carrier side, driver-side cost and the net margin. The
// client portal is locked to its own name; the admin names any client.
func (h *ClientHandler) GetSummary(c *gin.Context) {
	clientName := c.Param("name")
	if role := c.GetString(middleware.CtxRole); role == models.RoleClient {
		clientName = c.GetString(middleware.CtxClientName)
	}
	if clientName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome do cliente é obrigatório"})
		return
	}

	ctx := context.Background()

	var freights []models.Freight
	cursor, err := h.DB.Collection("freights").Find(ctx, bson.M{"clientName": clientName})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query freights"})
		return
	}
	if err := cursor.All(ctx, &freights); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode freights"})
		return
	}

	// Fuel and supplies of the drivers attributed to this client reduce
	// the driver-side cost of its freights.
	driverSet := make(map[string]struct{})
	for _, f := range freights {
		driverSet[f.DriverID] = struct{}{}
	}
	driverIDs := make([]string, 0, len(driverSet))
	for id := range driverSet {
		driverIDs = append(driverIDs, id)
	}

	var fuels []models.FuelPurchase
	var supplies []models.OtherSupply
	if len(driverIDs) > 0 {
		driverFilter := bson.M{"driverID": bson.M{"$in": driverIDs}}

		cursor, err = h.DB.Collection("fuel_purchases").Find(ctx, driverFilter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query fuel purchases"})
			return
		}
		if err := cursor.All(ctx, &fuels); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode fuel purchases"})
			return
		}

		cursor, err = h.DB.Collection("supplies").Find(ctx, driverFilter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query supplies"})
			return
		}
		if err := cursor.All(ctx, &supplies); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode supplies"})
			return
		}
	}

	summary := settlement.ReconcileClient(freights, fuels, supplies)

	c.JSON(http.StatusOK, gin.H{
		"clientName": clientName,
		"summary":    summary,
		"display": gin.H{
			"received":  settlement.FormatBRL(summary.Received),
			"toReceive": settlement.FormatBRL(summary.ToReceive),
			"margin":    settlement.FormatBRL(summary.Margin),
		},
	})
}

// GetClients lists the distinct client names present in the freight
// collection, for the admin's filter dropdowns.
func (h *ClientHandler) GetClients(c *gin.Context) {
	values, err := h.DB.Collection("freights").Distinct(context.Background(), "clientName", bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query clients"})
		return
	}

	clients := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			clients = append(clients, name)
		}
	}

	c.JSON(http.StatusOK, clients)
}
