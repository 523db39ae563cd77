package admin

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
)

// PDF report endpoints mirror the listing pages. The documents are plain
// tabular exports of the same row sets.

func (h *Handler) UsersPDF(c *fiber.Ctx) error {
	users, err := h.reportService.Users()
	if err != nil {
		return err
	}

	headers := []string{"User ID", "Name", "Mobile", "Points", "Bottles", "Registered"}
	widths := []float64{28, 50, 34, 22, 22, 34}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.UserID, u.Name, u.Mobile,
			strconv.FormatInt(u.Points, 10),
			strconv.FormatInt(u.Bottles, 10),
			u.CreatedAt.Format("2006-01-02"),
		})
	}

	return h.sendPDF(c, "users.pdf", "Users Report", headers, widths, rows)
}

func (h *Handler) MachinesPDF(c *fiber.Ctx) error {
	machines, err := h.reportService.Machines()
	if err != nil {
		return err
	}

	headers := []string{"Machine ID", "Name", "City", "Bottles", "Capacity", "Full", "Last Emptied"}
	widths := []float64{28, 40, 30, 20, 22, 14, 36}

	rows := make([][]string, 0, len(machines))
	for _, m := range machines {
		rows = append(rows, []string{
			m.MachineID, m.Name, m.City,
			strconv.FormatInt(m.CurrentBottles, 10),
			strconv.FormatInt(m.MaxCapacity, 10),
			boolMark(m.IsFull),
			formatNullableTime(m.LastEmptied),
		})
	}

	return h.sendPDF(c, "machines.pdf", "Machines Report", headers, widths, rows)
}

func (h *Handler) TransactionsPDF(c *fiber.Ctx) error {
	transactions, err := h.reportService.Transactions(0)
	if err != nil {
		return err
	}

	headers := []string{"ID", "User", "Type", "Points", "Bottles", "Machine", "Brand", "Created"}
	widths := []float64{14, 26, 20, 20, 20, 26, 18, 46}

	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.UserID,
			string(t.Type),
			strconv.FormatInt(t.Points, 10),
			strconv.FormatInt(t.Bottles, 10),
			stringOrDash(t.MachineID),
			int64OrDash(t.BrandID),
			t.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return h.sendPDF(c, "transactions.pdf", "Transactions Report", headers, widths, rows)
}

func (h *Handler) sendPDF(c *fiber.Ctx, filename, title string, headers []string, widths []float64, rows [][]string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 230, 220)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return pdf.Output(c.Response().BodyWriter())
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatNullableTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func stringOrDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func int64OrDash(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}
