package store

// Config holds configuration for the table store.
type Config struct {
	DataDir string // Root directory for table files, the ledger and the user file
}

// TableInfo is one row of a user's table listing.
type TableInfo struct {
	ID   int    `json:"table_id"`
	Name string `json:"name"`
}

// User is one account as stored in the user file. PasswordHash is a bcrypt
// hash; the store never sees plaintext passwords.
type User struct {
	ID           int
	Username     string
	PasswordHash string
}

// Errors
var (
	ErrNotFound      = &StoreError{"not found"}
	ErrAccessDenied  = &StoreError{"access denied"}
	ErrUsernameTaken = &StoreError{"username already exists"}
)

// StoreError represents a table store error.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
