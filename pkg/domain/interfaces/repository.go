package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Customer() CustomerRepository
	Application() ApplicationRepository
	Assessment() AssessmentRepository

	Close() error
}
