package model

import "time"

// Review records the decision taken after an application was assessed
type Review struct {
	ID               ReviewID
	ReviewDate       time.Time
	Decision         string
	EstimatedEffort  string
	BusinessPriority int
	WorkPriority     int
	Notes            string
}
