package models

import "time"

// Order is a sale. StockArticle and Customer are value copies taken when the
// order was written, not references.
type Order struct {
	ID           string           `json:"id"`
	StockArticle StockSnapshot    `json:"stockArticle"`
	Customer     CustomerSnapshot `json:"customer"`
	SellingPrice Numeric          `json:"sellingPrice"`
	Quantity     Numeric          `json:"quantity"`
	Date         Date             `json:"date"`
	Time         string           `json:"time"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// OrderFromDocument decodes a stored order. An unreadable date decodes to the
// zero Date.
func OrderFromDocument(doc Document) Order {
	a := doc.Attributes
	date, _ := ParseDate(a.String("date"))
	return Order{
		ID:           doc.ID,
		StockArticle: stockSnapshotFromAttributes(a.Map("stockArticle")),
		Customer:     customerSnapshotFromAttributes(a.Map("customer")),
		SellingPrice: Numeric(a.String("sellingPrice")),
		Quantity:     Numeric(a.String("quantity")),
		Date:         date,
		Time:         a.String("time"),
		CreatedAt:    a.Time("createdAt"),
	}
}

// Attributes encodes the order, embedding both snapshots as nested documents.
func (o Order) Attributes() Attributes {
	attrs := Attributes{
		"stockArticle": o.StockArticle.attributes(),
		"customer":     o.Customer.attributes(),
		"sellingPrice": string(o.SellingPrice),
		"quantity":     string(o.Quantity),
		"date":         o.Date.String(),
		"time":         o.Time,
	}
	setTime(attrs, "createdAt", o.CreatedAt)
	return attrs
}
