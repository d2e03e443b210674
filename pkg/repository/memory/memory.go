package memory

import (
	"github.com/secmon-lab/pathfinder/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	customer    *customerRepository
	application *applicationRepository
	assessment  *assessmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		customer:    newCustomerRepository(),
		application: newApplicationRepository(),
		assessment:  newAssessmentRepository(),
	}
}

func (m *Memory) Customer() interfaces.CustomerRepository {
	return m.customer
}

func (m *Memory) Application() interfaces.ApplicationRepository {
	return m.application
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Close() error {
	return nil
}
