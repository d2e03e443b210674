package model

import "time"

// Customer owns a portfolio of applications
type Customer struct {
	ID                CustomerID
	Name              string
	Description       string
	Vertical          string
	Size              string
	RulesOfEngagement string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
