package models

import "time"

// StockItem is an article held in the boutique's stock catalog.
type StockItem struct {
	ID            string    `json:"id"`
	ArticleNumber string    `json:"articleNumber"`
	ProductName   string    `json:"productName"`
	ProductCost   Numeric   `json:"productCost"`
	Quantity      Numeric   `json:"quantity"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StockSnapshot is the copy of a StockItem embedded in an order at write time.
// Later edits of the live item do not reach it.
type StockSnapshot struct {
	ID            string  `json:"id"`
	ArticleNumber string  `json:"articleNumber"`
	ProductName   string  `json:"productName"`
	ProductCost   Numeric `json:"productCost"`
	Quantity      Numeric `json:"quantity"`
}

// StockItemFromDocument decodes a stored stock document.
func StockItemFromDocument(doc Document) StockItem {
	a := doc.Attributes
	return StockItem{
		ID:            doc.ID,
		ArticleNumber: a.String("articleNumber"),
		ProductName:   a.String("productName"),
		ProductCost:   Numeric(a.String("productCost")),
		Quantity:      Numeric(a.String("quantity")),
		CreatedAt:     a.Time("createdAt"),
	}
}

// Attributes encodes the item for storage. The id is never stored as an
// attribute; createdAt only when set.
func (s StockItem) Attributes() Attributes {
	attrs := Attributes{
		"articleNumber": s.ArticleNumber,
		"productName":   s.ProductName,
		"productCost":   string(s.ProductCost),
		"quantity":      string(s.Quantity),
	}
	setTime(attrs, "createdAt", s.CreatedAt)
	return attrs
}

// Snapshot copies the item's current field values.
func (s StockItem) Snapshot() StockSnapshot {
	return StockSnapshot{
		ID:            s.ID,
		ArticleNumber: s.ArticleNumber,
		ProductName:   s.ProductName,
		ProductCost:   s.ProductCost,
		Quantity:      s.Quantity,
	}
}

func stockSnapshotFromAttributes(a Attributes) StockSnapshot {
	return StockSnapshot{
		ID:            a.String("id"),
		ArticleNumber: a.String("articleNumber"),
		ProductName:   a.String("productName"),
		ProductCost:   Numeric(a.String("productCost")),
		Quantity:      Numeric(a.String("quantity")),
	}
}

func (s StockSnapshot) attributes() Attributes {
	return Attributes{
		"id":            s.ID,
		"articleNumber": s.ArticleNumber,
		"productName":   s.ProductName,
		"productCost":   string(s.ProductCost),
		"quantity":      string(s.Quantity),
	}
}
