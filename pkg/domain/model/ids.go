package model

import "github.com/google/uuid"

// CustomerID identifies a customer
type CustomerID string

// ApplicationID identifies an application
type ApplicationID string

// AssessmentID identifies an assessment
type AssessmentID string

// ReviewID identifies a review
type ReviewID string

// NewCustomerID generates a new UUID v4 CustomerID
func NewCustomerID() CustomerID {
	return CustomerID(uuid.New().String())
}

// NewApplicationID generates a new UUID v4 ApplicationID
func NewApplicationID() ApplicationID {
	return ApplicationID(uuid.New().String())
}

// NewAssessmentID generates a new UUID v4 AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

// NewReviewID generates a new UUID v4 ReviewID
func NewReviewID() ReviewID {
	return ReviewID(uuid.New().String())
}

func (x CustomerID) String() string    { return string(x) }
func (x ApplicationID) String() string { return string(x) }
func (x AssessmentID) String() string  { return string(x) }
func (x ReviewID) String() string      { return string(x) }
