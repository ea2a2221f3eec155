package api

//go:generate mockgen -destination=./mock_store.go -package=api . ReportStore

import (
	"github.com/firmtools/hexlint/pkg/archive"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port           int
	Bind           string
	APIKey         string
	DataDir        string
	AllowedOrigins []string
}

// ReportStore defines the interface for validation report persistence
type ReportStore interface {
	Save(report *archive.Report) (string, error)
	Get(id string) (*archive.Report, error)
	Delete(id string) error
}
