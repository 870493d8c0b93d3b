package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/Devika-314/CraftSphere/config"
	"github.com/Devika-314/CraftSphere/models"
	"github.com/Devika-314/CraftSphere/utils"
)

// promoReportRow is one discount code's aggregated performance
type promoReportRow struct {
	Code          string
	Kind          string
	UsageCount    int
	UsageLimit    int
	TotalDiscount decimal.Decimal
	FirstUsedAt   *time.Time
	LastUsedAt    *time.Time
}

// reportWindow converts the period query parameter into a date range
func reportWindow(period string, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, start.Add(24 * time.Hour), nil
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, nil
	case "month":
		return now.AddDate(0, 0, -30).Truncate(24 * time.Hour), now.Add(24 * time.Hour), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("period must be day, week, or month")
}

// collectPromoReport aggregates each of the seller's codes against the usage
// rows inside the window
func collectPromoReport(seller models.User, start, end time.Time) ([]promoReportRow, decimal.Decimal, error) {
	query := config.DB.Model(&models.DiscountCode{})
	if !seller.IsAdmin {
		query = query.Where("seller_id = ?", seller.ID)
	}

	var codes []models.DiscountCode
	if err := query.Order("code asc").Find(&codes).Error; err != nil {
		return nil, decimal.Zero, err
	}

	rows := make([]promoReportRow, 0, len(codes))
	grandTotal := decimal.Zero
	for _, code := range codes {
		var usages []models.DiscountUsage
		if err := config.DB.Where("discount_code_id = ? AND used_at >= ? AND used_at <= ?", code.ID, start, end).
			Order("used_at asc").Find(&usages).Error; err != nil {
			return nil, decimal.Zero, err
		}

		row := promoReportRow{
			Code:          code.Code,
			Kind:          code.Kind,
			UsageCount:    len(usages),
			UsageLimit:    code.UsageLimit,
			TotalDiscount: decimal.Zero,
		}
		for _, usage := range usages {
			row.TotalDiscount = row.TotalDiscount.Add(usage.DiscountAmount)
		}
		if len(usages) > 0 {
			row.FirstUsedAt = &usages[0].UsedAt
			row.LastUsedAt = &usages[len(usages)-1].UsedAt
		}
		grandTotal = grandTotal.Add(row.TotalDiscount)
		rows = append(rows, row)
	}
	return rows, grandTotal, nil
}

// DownloadPromotionReportExcel exports discount code performance as Excel
func DownloadPromotionReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadPromotionReportExcel called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "week")
	start, end, err := reportWindow(period, time.Now())
	if err != nil {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", err.Error())
		return
	}

	rows, grandTotal, err := collectPromoReport(seller, start, end)
	if err != nil {
		utils.LogError("Failed to collect promotion report: %v", err)
		utils.InternalServerError(c, "Failed to collect promotion report", err.Error())
		return
	}
	utils.LogDebug("Collected %d discount codes for Excel report", len(rows))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Promotion Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("CRAFTSPHERE - Promotion Report")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Code", "Kind", "Uses In Period", "Usage Limit", "Total Discount", "First Used", "Last Used"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, row := range rows {
		sheetRow := sheet.AddRow()
		sheetRow.AddCell().SetString(row.Code)
		sheetRow.AddCell().SetString(row.Kind)
		sheetRow.AddCell().SetInt(row.UsageCount)
		if row.UsageLimit > 0 {
			sheetRow.AddCell().SetInt(row.UsageLimit)
		} else {
			sheetRow.AddCell().SetString("unlimited")
		}
		amount, _ := row.TotalDiscount.Float64()
		sheetRow.AddCell().SetFloat(amount)
		if row.FirstUsedAt != nil {
			sheetRow.AddCell().SetString(row.FirstUsedAt.Format("2006-01-02 15:04"))
			sheetRow.AddCell().SetString(row.LastUsedAt.Format("2006-01-02 15:04"))
		} else {
			sheetRow.AddCell().SetString("-")
			sheetRow.AddCell().SetString("-")
		}
	}

	sheet.AddRow() // spacing
	totalRow := sheet.AddRow()
	totalRow.AddCell().SetString("Total discount given")
	total, _ := grandTotal.Float64()
	totalRow.AddCell().SetFloat(total)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=promotion_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel promotion report for period %s", period)
}

// DownloadPromotionReportPDF exports discount code performance as PDF
func DownloadPromotionReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadPromotionReportPDF called")

	seller, ok := requireSeller(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "week")
	start, end, err := reportWindow(period, time.Now())
	if err != nil {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", err.Error())
		return
	}

	rows, grandTotal, err := collectPromoReport(seller, start, end)
	if err != nil {
		utils.LogError("Failed to collect promotion report: %v", err)
		utils.InternalServerError(c, "Failed to collect promotion report", err.Error())
		return
	}
	utils.LogDebug("Collected %d discount codes for PDF report", len(rows))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "CRAFTSPHERE - Promotion Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Artisan Marketplace")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+start.Format("2006-01-02")+" to "+end.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Code", "Kind", "Uses", "Limit", "Total Discount", "First Used", "Last Used"}
	colWidths := []float64{45, 35, 20, 25, 40, 45, 45}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		limit := "unlimited"
		if row.UsageLimit > 0 {
			limit = fmt.Sprintf("%d", row.UsageLimit)
		}
		firstUsed, lastUsed := "-", "-"
		if row.FirstUsedAt != nil {
			firstUsed = row.FirstUsedAt.Format("2006-01-02 15:04")
			lastUsed = row.LastUsedAt.Format("2006-01-02 15:04")
		}
		pdf.CellFormat(colWidths[0], 8, row.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, row.Kind, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%d", row.UsageCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, limit, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 8, row.TotalDiscount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[5], 8, firstUsed, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[6], 8, lastUsed, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Total discount given: "+grandTotal.StringFixed(2))

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=promotion_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF promotion report for period %s", period)
}
