package api

import (
	"time"

	"github.com/linkedvault/linkedvault/pkg/employee"
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
	TokenTTL       time.Duration
	MinPasswordLen int
}

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token    string `json:"token"`
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// CreateTableRequest represents a table creation request
type CreateTableRequest struct {
	Name string `json:"name"`
}

// CreateTableResponse carries a newly allocated table id
type CreateTableResponse struct {
	TableID int    `json:"table_id"`
	Name    string `json:"name"`
}

// InsertRecordRequest represents a record insertion request. A nil
// position appends.
type InsertRecordRequest struct {
	Data     employee.Employee `json:"data"`
	Position *int              `json:"position,omitempty"`
}

// UpdateRecordRequest represents a record update request. The record is
// detached and re-inserted, so a nil position moves it to the tail.
type UpdateRecordRequest struct {
	Data     employee.Employee `json:"data"`
	Position *int              `json:"position,omitempty"`
}

// RecordsResponse carries a table's records in list order
type RecordsResponse struct {
	Records []employee.Employee `json:"records"`
	Count   int                 `json:"count"`
}

// ImportResponse summarizes a bulk import
type ImportResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
