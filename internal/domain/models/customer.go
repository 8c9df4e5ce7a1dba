package models

import (
	"strings"
	"time"
)

// Customer is a boutique client.
type Customer struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	SecondName    string    `json:"secondName"`
	ContactNumber string    `json:"contactNumber"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CustomerSnapshot is the copy of a Customer embedded in an order.
type CustomerSnapshot struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	SecondName    string `json:"secondName"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// CustomerFromDocument decodes a stored customer document.
func CustomerFromDocument(doc Document) Customer {
	a := doc.Attributes
	return Customer{
		ID:            doc.ID,
		FirstName:     a.String("firstName"),
		SecondName:    a.String("secondName"),
		ContactNumber: a.String("contactNumber"),
		Address:       a.String("address"),
		CreatedAt:     a.Time("createdAt"),
	}
}

// Attributes encodes the customer for storage.
func (c Customer) Attributes() Attributes {
	attrs := Attributes{
		"firstName":     c.FirstName,
		"secondName":    c.SecondName,
		"contactNumber": c.ContactNumber,
		"address":       c.Address,
	}
	setTime(attrs, "createdAt", c.CreatedAt)
	return attrs
}

// Snapshot copies the customer's current field values.
func (c Customer) Snapshot() CustomerSnapshot {
	return CustomerSnapshot{
		ID:            c.ID,
		FirstName:     c.FirstName,
		SecondName:    c.SecondName,
		ContactNumber: c.ContactNumber,
		Address:       c.Address,
	}
}

// FullName joins first and second name.
func (c CustomerSnapshot) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.SecondName)
}

func customerSnapshotFromAttributes(a Attributes) CustomerSnapshot {
	return CustomerSnapshot{
		ID:            a.String("id"),
		FirstName:     a.String("firstName"),
		SecondName:    a.String("secondName"),
		ContactNumber: a.String("contactNumber"),
		Address:       a.String("address"),
	}
}

func (c CustomerSnapshot) attributes() Attributes {
	return Attributes{
		"id":            c.ID,
		"firstName":     c.FirstName,
		"secondName":    c.SecondName,
		"contactNumber": c.ContactNumber,
		"address":       c.Address,
	}
}
