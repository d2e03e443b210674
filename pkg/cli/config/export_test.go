package config

import "time"

// NewCatalogForTest creates a Catalog config for testing purposes
func NewCatalogForTest(basePath, schemaPath, customLocation string, reloadInterval time.Duration) *Catalog {
	return &Catalog{
		basePath:       basePath,
		schemaPath:     schemaPath,
		customLocation: customLocation,
		reloadInterval: reloadInterval,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, seedPath string) *Repository {
	return &Repository{
		backend:   backend,
		projectID: projectID,
		seedPath:  seedPath,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
