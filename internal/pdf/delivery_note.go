package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"gestalba/internal/models"
)

// Generator renders an albarán into a PDF document in memory; the caller
// decides where the bytes go (IPFS pin, download, ...).
type Generator interface {
	RenderDeliveryNote(detail *models.DeliveryNoteDetail) ([]byte, error)
}

type DeliveryNoteGenerator struct {
	CompanyName string // issuer line printed in the header
}

func NewDeliveryNoteGenerator(companyName string) *DeliveryNoteGenerator {
	return &DeliveryNoteGenerator{CompanyName: companyName}
}

func (g *DeliveryNoteGenerator) RenderDeliveryNote(detail *models.DeliveryNoteDetail) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Albarán %d", detail.ID), false)
	pdf.SetAuthor(g.CompanyName, false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("Albarán"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("Nº %06d  de  %s", detail.ID, detail.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, tr(sub), "", 1, "C", false, 0, "")
	hr(pdf)
	pdf.Ln(3)

	if detail.Client != nil {
		sectionTitle(pdf, "Cliente")
		kvLine(pdf, tr, "Nombre", detail.Client.Name)
		kvLine(pdf, tr, "CIF", detail.Client.CIF)
		kvLine(pdf, tr, "Dirección", formatAddress(detail.Client.Address))
		pdf.Ln(2)
		hr(pdf)
	}

	if detail.Project != nil {
		sectionTitle(pdf, "Proyecto")
		kvLine(pdf, tr, "Nombre", detail.Project.Name)
		kvLine(pdf, tr, "Código", detail.Project.ProjectCode)
		pdf.Ln(2)
		hr(pdf)
	}

	sectionTitle(pdf, "Entradas")
	pdf.SetFont("Helvetica", "", 11)
	for i, entry := range detail.Entries {
		var line string
		if entry.Person != "" {
			line = fmt.Sprintf("%d. %s - %.1f horas", i+1, entry.Person, entry.Hours)
		} else {
			line = fmt.Sprintf("%d. %s - %.1f unidades", i+1, entry.Material, entry.Quantity)
		}
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}
	pdf.Ln(2)
	hr(pdf)

	sectionTitle(pdf, "Firmas")
	pdf.Ln(6)
	lineY := pdf.GetY()
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(80, 6, tr(g.CompanyName), "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetLineWidth(0.3)
	pdf.Line(20, lineY+10, 100, lineY+10)
	pdf.Line(130, lineY+10, 190, lineY+10)
	if detail.Signed {
		pdf.SetY(lineY + 12)
		pdf.SetX(130)
		pdf.Cell(80, 5, "(firmado digitalmente)")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render delivery note pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAddress(a models.Address) string {
	if a.Street == "" && a.City == "" {
		return "-"
	}
	return fmt.Sprintf("%s %d, %s %s (%s)", a.Street, a.Number, a.Postal, a.City, a.Province)
}

func sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func kvLine(pdf *gofpdf.Fpdf, tr func(string) string, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 6, tr(key)+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(val), "", 1, "L", false, 0, "")
}

func hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
