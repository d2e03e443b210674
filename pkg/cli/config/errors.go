package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration
var (
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrInvalidSeed       = goerr.New("invalid seed data")
	ErrUnknownDependency = goerr.New("dependency refers to unknown application")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	BackendKey     = "backend"
	CustomerKey    = "customer"
	ApplicationKey = "application"
	DependencyKey  = "dependency"
)
