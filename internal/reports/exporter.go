// server/internal/reports/exporter.go

// Package reports renders admin XLSX exports of freights and payments.
package reports

import (
	"gestor-frete-api-server/internal/models"
	"gestor-frete-api-server/internal/settlement"

	"github.com/xuri/excelize/v2"
)

// FreightsWorkbook builds an XLSX with one row per freight.
func FreightsWorkbook(freights []models.Freight) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Fretes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Data", "Motorista", "Cliente", "KM", "Toneladas", "Valor Motorista", "Valor Transportadora", "Status", "Pago", "Cliente Pagou"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for row, freight := range freights {
		values := []interface{}{
			freight.FreightID,
			freight.Date.Format(settlement.DateBR),
			freight.DriverID,
			freight.ClientName,
			freight.DistanceKM,
			freight.WeightTons,
			freight.DriverTotal,
			freight.CarrierTotal,
			freight.Status,
			simNao(freight.Paid),
			simNao(freight.ClientPaid),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return f, nil
}

// PaymentsWorkbook builds an XLSX with one row per payment batch.
func PaymentsWorkbook(payments []models.Payment) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Pagamentos"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "Motorista", "Período", "Valor Líquido", "Fretes", "Abastecimentos", "Insumos", "Criado em"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for row, payment := range payments {
		values := []interface{}{
			payment.PaymentID,
			payment.DriverID,
			payment.PeriodLabel,
			payment.NetTotal,
			len(payment.FreightIDs),
			len(payment.FuelIDs),
			len(payment.SupplyIDs),
			payment.CreatedAt.Format(settlement.DateBR),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return f, nil
}

func simNao(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}
