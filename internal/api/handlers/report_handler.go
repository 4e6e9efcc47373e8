// server/internal/api/handlers/report_handler.go
package handlers

import (
	"context"
	"net/http"

	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/reports"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReportHandler struct {
	DB *mongo.Database
}

// ExportFreights streams an XLSX of the freights matching the usual
// admin filters (driver, date range).
func (h *ReportHandler) ExportFreights(c *gin.Context) {
	filter := bson.M{}
	if driverID := c.Query("driver"); driverID != "" {
		filter["driverID"] = driverID
	}
	dateRangeFilter(c, filter, "date")

	cursor, err := h.DB.Collection("freights").Find(context.Background(), filter)
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

	workbook, err := reports.FreightsWorkbook(freights)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	h.stream(c, workbook, "fretes.xlsx")
}

// ExportPayments streams an XLSX of all payment batches.
func (h *ReportHandler) ExportPayments(c *gin.Context) {
	filter := bson.M{}
	if driverID := c.Query("driver"); driverID != "" {
		filter["driverID"] = driverID
	}

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

	workbook, err := reports.PaymentsWorkbook(payments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	h.stream(c, workbook, "pagamentos.xlsx")
}

func (h *ReportHandler) stream(c *gin.Context, workbook *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := workbook.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write report"})
	}
}
