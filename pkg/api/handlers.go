package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linkedvault/linkedvault/pkg/audit"
	"github.com/linkedvault/linkedvault/pkg/auth"
	"github.com/linkedvault/linkedvault/pkg/employee"
	"github.com/linkedvault/linkedvault/pkg/store"
)

// Server holds the API server state
type Server struct {
	users   *store.UserStore
	tables  *store.TableStore
	audit   *audit.Logger
	tokens  *auth.Tokens
	config  ServerConfig
	metrics *Metrics
	logger  *slog.Logger
}

// NewServer creates a new API server
func NewServer(users *store.UserStore, tables *store.TableStore, auditLog *audit.Logger,
	tokens *auth.Tokens, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MinPasswordLen <= 0 {
		config.MinPasswordLen = 8
	}
	return &Server{
		users:   users,
		tables:  tables,
		audit:   auditLog,
		tokens:  tokens,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// recordAudit writes an audit entry without failing the request.
func (s *Server) recordAudit(ownerID int, action, detail string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ownerID, action, detail); err != nil {
		s.logger.Warn("failed to record audit entry",
			"owner_id", ownerID, "action", action, "error", err)
	}
}

// writeStoreError maps domain errors to HTTP statuses. A table someone else
// owns and a table that does not exist produce the same response.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *employee.ValidationError
	switch {
	case errors.As(err, &verr):
		if strings.Contains(verr.Reason, "already exists") {
			sendError(w, verr.Error(), http.StatusConflict)
		} else {
			sendError(w, verr.Error(), http.StatusBadRequest)
		}
	case errors.Is(err, store.ErrAccessDenied):
		sendError(w, "Table not found", http.StatusForbidden)
	case errors.Is(err, employee.ErrNotFound), errors.Is(err, employee.ErrEmptyList):
		sendError(w, "Record not found", http.StatusNotFound)
	case errors.Is(err, store.ErrNotFound):
		sendError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, store.ErrUsernameTaken):
		sendError(w, "Username is already taken", http.StatusConflict)
	default:
		sendError(w, fmt.Sprintf("Internal error: %v", err), http.StatusInternalServerError)
	}
}

// openTable resolves the {tableID} URL parameter to a table the caller
// owns, writing the error response itself on failure.
func (s *Server) openTable(w http.ResponseWriter, r *http.Request) (*store.Table, bool) {
	claims, ok := claimsFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	tableID, err := strconv.Atoi(chi.URLParam(r, "tableID"))
	if err != nil {
		sendError(w, "Invalid table id", http.StatusBadRequest)
		return nil, false
	}
	tbl, err := s.tables.GetOrLoad(tableID, claims.UserID)
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	return tbl, true
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleRegister creates an account and logs the new user straight in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		sendError(w, "Username is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < s.config.MinPasswordLen {
		sendError(w, fmt.Sprintf("Password must be at least %d characters", s.config.MinPasswordLen),
			http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		sendError(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	userID, err := s.users.Create(req.Username, hash)
	if err != nil {
		s.metrics.RecordAuthRequest(false)
		writeStoreError(w, err)
		return
	}

	token, err := s.tokens.Issue(userID, req.Username)
	if err != nil {
		sendError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordAuthRequest(true)
	s.recordAudit(userID, "register", fmt.Sprintf("user %s", req.Username))
	sendSuccess(w, TokenResponse{Token: token, UserID: userID, Username: req.Username})
}

// handleLogin exchanges credentials for a bearer token. Unknown users and
// wrong passwords get the same answer.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	user, err := s.users.FindByName(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.RecordAuthRequest(false)
			sendError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		writeStoreError(w, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.metrics.RecordAuthRequest(false)
		sendError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		sendError(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordAuthRequest(true)
	s.recordAudit(user.ID, "login", fmt.Sprintf("user %s", user.Username))
	sendSuccess(w, TokenResponse{Token: token, UserID: user.ID, Username: user.Username})
}

// handleCreateTable registers a new table for the caller.
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		sendError(w, "Table name is required", http.StatusBadRequest)
		return
	}

	tableID, err := s.tables.Create(claims.UserID, req.Name)
	if err != nil {
		s.metrics.RecordTableOperation("create", false)
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordTableOperation("create", true)
	s.recordAudit(claims.UserID, "create_table", fmt.Sprintf("table %d (%s)", tableID, req.Name))
	sendSuccess(w, CreateTableResponse{TableID: tableID, Name: req.Name})
}

// handleListTables returns the caller's tables.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tables, err := s.tables.ListForOwner(claims.UserID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tables == nil {
		tables = []store.TableInfo{}
	}
	sendSuccess(w, tables)
}

// handleDeleteTable permanently removes a table, its file and its ledger
// entry.
func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	tableID, err := strconv.Atoi(chi.URLParam(r, "tableID"))
	if err != nil {
		sendError(w, "Invalid table id", http.StatusBadRequest)
		return
	}

	if err := s.tables.DeletePermanently(tableID, claims.UserID); err != nil {
		s.metrics.RecordTableOperation("delete", false)
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordTableOperation("delete", true)
	s.recordAudit(claims.UserID, "delete_table", fmt.Sprintf("table %d", tableID))
	sendSuccess(w, map[string]string{"message": "Table deleted"})
}

// handleListRecords returns a table's records in list order.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}
	records := tbl.Snapshot()
	if records == nil {
		records = []employee.Employee{}
	}
	sendSuccess(w, RecordsResponse{Records: records, Count: len(records)})
}

// handleReversedRecords returns the records tail first without changing
// the stored order.
func (s *Server) handleReversedRecords(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}
	records := tbl.ReversedSnapshot()
	if records == nil {
		records = []employee.Employee{}
	}
	sendSuccess(w, RecordsResponse{Records: records, Count: len(records)})
}

// handleInsertRecord inserts a record at a position. Out-of-range
// positions append; so does an omitted position.
func (s *Server) handleInsertRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}

	var req InsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	position := -1
	if req.Position != nil {
		position = *req.Position
	}

	if err := tbl.Insert(req.Data, position); err != nil {
		s.metrics.RecordRecordOperation("insert", false, time.Since(start))
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordRecordOperation("insert", true, time.Since(start))
	s.recordAudit(tbl.OwnerID(), "insert",
		fmt.Sprintf("employee %d into table %d", req.Data.ID, tbl.ID()))
	sendSuccess(w, req.Data)
}

// handleGetRecord returns one record by id.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid record id", http.StatusBadRequest)
		return
	}
	e, found := tbl.Find(id)
	if !found {
		sendError(w, "Record not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, e)
}

// handleUpdateRecord replaces the record holding {id}. The record is
// detached and re-inserted, so the position semantics match insertion.
func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}
	originalID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	var req UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	position := -1
	if req.Position != nil {
		position = *req.Position
	}

	if err := tbl.Update(originalID, req.Data, position); err != nil {
		s.metrics.RecordRecordOperation("update", false, time.Since(start))
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordRecordOperation("update", true, time.Since(start))
	s.recordAudit(tbl.OwnerID(), "update",
		fmt.Sprintf("employee %d in table %d", originalID, tbl.ID()))
	sendSuccess(w, req.Data)
}

// handleDeleteRecord removes one record by id.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	if err := tbl.Delete(id); err != nil {
		s.metrics.RecordRecordOperation("delete", false, time.Since(start))
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordRecordOperation("delete", true, time.Since(start))
	s.recordAudit(tbl.OwnerID(), "delete",
		fmt.Sprintf("employee %d from table %d", id, tbl.ID()))
	sendSuccess(w, map[string]string{"message": "Record deleted"})
}

// handleReverseTable flips the stored record order in place.
func (s *Server) handleReverseTable(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}

	if err := tbl.Reverse(); err != nil {
		s.metrics.RecordRecordOperation("reverse", false, time.Since(start))
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordRecordOperation("reverse", true, time.Since(start))
	s.recordAudit(tbl.OwnerID(), "reverse", fmt.Sprintf("table %d", tbl.ID()))
	sendSuccess(w, map[string]string{"message": "Table reversed"})
}

// handleSearchRecords returns records matching a substring query.
func (s *Server) handleSearchRecords(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("query")
	if query == "" {
		sendError(w, "Query parameter is required", http.StatusBadRequest)
		return
	}
	records := tbl.Search(query)
	if records == nil {
		records = []employee.Employee{}
	}
	sendSuccess(w, RecordsResponse{Records: records, Count: len(records)})
}

// handleExportCSV streams the table as CSV in list order.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=table-%d.csv", tbl.ID()))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"id", "name", "age", "salary", "department"})
	for _, e := range tbl.Snapshot() {
		_ = writer.Write([]string{
			strconv.Itoa(e.ID),
			e.Name,
			strconv.Itoa(e.Age),
			strconv.Itoa(e.Salary),
			e.Department,
		})
	}
	writer.Flush()
}

// handleImportCSV bulk-appends records from a CSV body. Rows that fail to
// parse or validate are skipped and counted, never fatal.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tbl, ok := s.openTable(w, r)
	if !ok {
		return
	}

	reader := csv.NewReader(r.Body)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		sendError(w, "Invalid CSV in request body", http.StatusBadRequest)
		return
	}

	var records []employee.Employee
	unparseable := 0
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(row[0], "id") {
			continue // header row
		}
		e, ok := parseCSVRow(row)
		if !ok {
			unparseable++
			continue
		}
		records = append(records, e)
	}

	added, skipped, err := tbl.Import(records)
	if err != nil {
		s.metrics.RecordRecordOperation("import", false, time.Since(start))
		writeStoreError(w, err)
		return
	}

	s.metrics.RecordRecordOperation("import", true, time.Since(start))
	s.recordAudit(tbl.OwnerID(), "import",
		fmt.Sprintf("table %d: added %d, skipped %d", tbl.ID(), added, skipped+unparseable))
	sendSuccess(w, ImportResponse{Added: added, Skipped: skipped + unparseable})
}

// parseCSVRow converts one id,name,age,salary,department row.
func parseCSVRow(row []string) (employee.Employee, bool) {
	if len(row) != 5 {
		return employee.Employee{}, false
	}
	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return employee.Employee{}, false
	}
	age, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return employee.Employee{}, false
	}
	salary, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return employee.Employee{}, false
	}
	return employee.Employee{
		ID:         id,
		Name:       strings.TrimSpace(row[1]),
		Age:        age,
		Salary:     salary,
		Department: strings.TrimSpace(row[4]),
	}, true
}

// handleHistory returns the caller's audit trail, oldest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if s.audit == nil {
		sendSuccess(w, []audit.Entry{})
		return
	}
	entries, err := s.audit.History(claims.UserID)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read history: %v", err), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	sendSuccess(w, entries)
}
