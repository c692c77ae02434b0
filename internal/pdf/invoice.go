// Package pdf renders invoices as PDF documents.
package pdf

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/money"
	"github.com/diewo77/freelance-invoices/validation"
)

// InvoiceData is the fully resolved content of one invoice document.
type InvoiceData struct {
	Invoice    *models.Invoice
	Freelancer *models.Freelancer
	Client     *models.Client
}

// InvoicePDF renders the invoice and returns the document bytes.
func InvoicePDF(data InvoiceData) ([]byte, error) {
	inv, freelancer, client := data.Invoice, data.Freelancer, data.Client

	m := maroto.New(config.NewBuilder().Build())

	// Header: number left, status right
	m.AddRow(12,
		col.New(8).Add(
			text.New(fmt.Sprintf("Invoice %s", inv.Number), props.Text{
				Size:  18,
				Style: fontstyle.Bold,
			}),
		),
		col.New(4).Add(
			text.New(strings.ToUpper(string(inv.Status)), props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(6,
		col.New(6).Add(
			text.New(fmt.Sprintf("Issue date: %s", validation.FormatDate(inv.IssueDate)), props.Text{Size: 9}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Due date: %s", validation.FormatDate(inv.DueDate)), props.Text{
				Size:  9,
				Align: align.Right,
			}),
		),
	)

	m.AddRow(8)

	// Freelancer block left, client block right
	m.AddRow(6,
		col.New(6).Add(text.New("From", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(6).Add(text.New("Bill To", props.Text{Size: 9, Style: fontstyle.Bold})),
	)
	m.AddRow(5,
		col.New(6).Add(text.New(freelancer.Name, props.Text{Size: 9})),
		col.New(6).Add(text.New(client.CompanyName, props.Text{Size: 9})),
	)
	m.AddRow(5,
		col.New(6).Add(text.New(freelancer.Email, props.Text{Size: 8})),
		col.New(6).Add(text.New(clientContact(client), props.Text{Size: 8})),
	)
	if freelancer.Address != "" || client.Address != "" {
		m.AddRow(5,
			col.New(6).Add(text.New(freelancer.Address, props.Text{Size: 8})),
			col.New(6).Add(text.New(client.Address, props.Text{Size: 8})),
		)
	}
	if freelancer.Phone != "" || freelancer.Website != "" {
		m.AddRow(5,
			col.New(6).Add(text.New(strings.TrimSpace(freelancer.Phone+"  "+freelancer.Website), props.Text{Size: 8})),
		)
	}

	m.AddRow(10)

	// Items table
	m.AddRow(8,
		col.New(6).Add(text.New("Description", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(2).Add(text.New("Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	)
	for _, item := range inv.Items {
		m.AddRow(6,
			col.New(6).Add(text.New(item.Description, props.Text{Size: 8})),
			col.New(2).Add(text.New(item.Quantity.String(), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(money.Format(item.Rate), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(money.Format(item.Amount), props.Text{Size: 8, Align: align.Right})),
		)
	}

	m.AddRow(8)

	// Totals block
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(text.New("Subtotal", props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(money.Format(inv.Subtotal), props.Text{Size: 9, Align: align.Right})),
	)
	m.AddRow(6,
		col.New(8),
		col.New(2).Add(text.New(fmt.Sprintf("Tax (%s%%)", inv.TaxRate.String()), props.Text{Size: 9, Align: align.Right})),
		col.New(2).Add(text.New(money.Format(inv.TaxAmount), props.Text{Size: 9, Align: align.Right})),
	)
	m.AddRow(8,
		col.New(8),
		col.New(2).Add(text.New("Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(money.Format(inv.Total), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
	)

	if inv.Notes != "" {
		m.AddRow(10)
		m.AddRow(6,
			col.New(12).Add(text.New("Notes", props.Text{Size: 9, Style: fontstyle.Bold})),
		)
		m.AddRow(6,
			col.New(12).Add(text.New(inv.Notes, props.Text{Size: 8})),
		)
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return document.GetBytes(), nil
}

func clientContact(c *models.Client) string {
	if c.ContactName != "" {
		return c.ContactName + "  " + c.Email
	}
	return c.Email
}
