package v1

import (
	"database/sql"
	"fmt"
	"strings"
)

// Field represents a database column.
type Field struct {
	Name string
	Type string
}

// Index represents a database index (simple list of columns).
type Index struct {
	Columns []string
}

// DBClient wraps the sql.DB connection.
// Queries are written with "?" placeholders and rewritten for drivers that need otherwise.
type DBClient struct {
	DB         *sql.DB
	DriverName string
}

// Connect connects to the database.
// Driver should be imported in the main application.
func Connect(driverName, dataSourceName string) *DBClient {
	RecordAction(fmt.Sprintf("DB Connect: %s", driverName), func() { Connect(driverName, dataSourceName) })
	if IsDryRun() {
		return &DBClient{DriverName: driverName}
	}
	c, err := Open(driverName, dataSourceName)
	if err != nil {
		Fail("%v", err)
	}
	return c
}

// Open is Connect for callers outside a stage; it returns the error instead of failing.
func Open(driverName, dataSourceName string) (*DBClient, error) {
	Logf(LogTypeDB, "Connecting to %s", driverName)
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	Log(LogTypeDB, "Connected successfully", "")
	return &DBClient{DB: db, DriverName: driverName}, nil
}

// Close closes the connection.
func (c *DBClient) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func (c *DBClient) isOracle() bool { return c.DriverName == "oracle" }
func (c *DBClient) isMySQL() bool  { return c.DriverName == "mysql" }

// bind rewrites "?" placeholders into the driver's syntax.
func (c *DBClient) bind(query string) string {
	if !c.isOracle() {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, ":%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AutoIncrementKey returns a column type for a generated integer primary key.
func (c *DBClient) AutoIncrementKey() string {
	switch {
	case c.isOracle():
		return "NUMBER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
	case c.isMySQL():
		return "BIGINT AUTO_INCREMENT PRIMARY KEY"
	default:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// VarChar returns a bounded string column type.
func (c *DBClient) VarChar(n int) string {
	if c.isOracle() {
		return fmt.Sprintf("VARCHAR2(%d)", n)
	}
	return fmt.Sprintf("VARCHAR(%d)", n)
}

// BigInt returns a 64-bit integer column type.
func (c *DBClient) BigInt() string {
	if c.isOracle() {
		return "NUMBER(19)"
	}
	return "BIGINT"
}

// Limit returns the clause that caps a SELECT at n rows.
func (c *DBClient) Limit(n int) string {
	if c.isOracle() {
		return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", n)
	}
	return fmt.Sprintf("LIMIT %d", n)
}

// alreadyExists reports errors raised by CREATE on an existing table or index.
func (c *DBClient) alreadyExists(err error) bool {
	switch {
	case c.isOracle():
		return strings.Contains(err.Error(), "ORA-00955")
	case c.isMySQL():
		return strings.Contains(err.Error(), "Error 1061")
	}
	return false
}

// SetupTable creates a table and its indexes if they do not exist.
// With isReplace the table is dropped first.
func (c *DBClient) SetupTable(tableName string, isReplace bool, fields []Field, indexes []Index) {
	RecordAction(fmt.Sprintf("DB SetupTable: %s", tableName), func() { c.SetupTable(tableName, isReplace, fields, indexes) })
	if IsDryRun() {
		return
	}
	if c.DB == nil {
		Fail("DBClient is not connected")
	}
	Logf(LogTypeDB, "Setting up table '%s' (Replace=%v)", tableName, isReplace)
	if isReplace {
		c.DropTable(tableName)
	}

	var fieldDefs []string
	for _, f := range fields {
		fieldDefs = append(fieldDefs, fmt.Sprintf("%s %s", f.Name, f.Type))
	}

	ifNotExists := "IF NOT EXISTS "
	if c.isOracle() {
		ifNotExists = ""
	}
	query := fmt.Sprintf("CREATE TABLE %s%s (%s)", ifNotExists, tableName, strings.Join(fieldDefs, ", "))
	if _, err := c.DB.Exec(query); err != nil && !c.alreadyExists(err) {
		Fail("Failed to create table %s: %v", tableName, err)
	}

	for i, idx := range indexes {
		idxName := fmt.Sprintf("idx_%s_%d", tableName, i)
		ifNotExists := "IF NOT EXISTS "
		if c.isOracle() || c.isMySQL() {
			ifNotExists = ""
		}
		idxQuery := fmt.Sprintf("CREATE INDEX %s%s ON %s (%s)", ifNotExists, idxName, tableName, strings.Join(idx.Columns, ", "))
		if _, err := c.DB.Exec(idxQuery); err != nil && !c.alreadyExists(err) {
			Fail("Failed to create index on %s: %v", tableName, err)
		}
	}
}

// DropTable drops a table.
func (c *DBClient) DropTable(tableName string) {
	RecordAction(fmt.Sprintf("DB DropTable: %s", tableName), func() { c.DropTable(tableName) })
	if IsDryRun() {
		return
	}
	if c.DB == nil {
		Fail("DBClient is not connected")
	}
	Logf(LogTypeDB, "Dropping table '%s'", tableName)

	var query string
	if c.isOracle() {
		// No DROP TABLE IF EXISTS before 23c; ignore ORA-00942 (table does not exist).
		query = fmt.Sprintf(`BEGIN
			EXECUTE IMMEDIATE 'DROP TABLE %s PURGE';
			EXCEPTION WHEN OTHERS THEN
				IF SQLCODE != -942 THEN RAISE; END IF;
			END;`, tableName)
	} else {
		query = fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	}

	if _, err := c.DB.Exec(query); err != nil {
		Fail("Failed to drop table %s: %v", tableName, err)
	}
}

// CleanTable deletes all data from a table.
func (c *DBClient) CleanTable(tableName string) {
	RecordAction(fmt.Sprintf("DB CleanTable: %s", tableName), func() { c.CleanTable(tableName) })
	if IsDryRun() {
		return
	}
	if c.DB == nil {
		Fail("DBClient is not connected")
	}
	Logf(LogTypeDB, "Cleaning table '%s'", tableName)
	if _, err := c.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName)); err != nil {
		Fail("Failed to clean table %s: %v", tableName, err)
	}
}

// InsertField is one column value of an inserted row.
type InsertField struct {
	Key   string
	Value interface{}
}

// InsertRow inserts one row naming its columns, so generated keys can be left out.
func (c *DBClient) InsertRow(tableName string, fields []InsertField) {
	RecordAction(fmt.Sprintf("DB InsertRow: %s", tableName), func() { c.InsertRow(tableName, fields) })
	if IsDryRun() {
		return
	}
	if c.DB == nil {
		Fail("DBClient is not connected")
	}
	if len(fields) == 0 {
		Fail("InsertRow into %s needs at least one field", tableName)
	}

	cols := make([]string, len(fields))
	marks := make([]string, len(fields))
	values := make([]interface{}, len(fields))
	for i, f := range fields {
		if strings.TrimSpace(f.Key) == "" {
			Fail("InsertRow into %s: field %d has no name", tableName, i)
		}
		cols[i] = f.Key
		marks[i] = "?"
		values[i] = f.Value
	}

	query := c.bind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tableName, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	Log(LogTypeDB, fmt.Sprintf("Insert into '%s'", tableName), fmt.Sprintf("Query: %s\nArgs: %v", query, values))
	if _, err := c.DB.Exec(query, values...); err != nil {
		Fail("Failed to insert into %s: %v", tableName, err)
	}
}

// QueryResult holds the results of a Fetch operation.
type QueryResult struct {
	Rows []RowResult
}

// RowResult represents a single row from the database. Column names are lower-cased.
type RowResult struct {
	Data map[string]interface{}
}

// Fetch executes a query and returns all results in an easy-to-use QueryResult object.
func (c *DBClient) Fetch(query string, args ...interface{}) *QueryResult {
	RecordAction("DB Fetch", func() { c.Fetch(query, args...) })
	if IsDryRun() {
		return &QueryResult{}
	}
	if c.DB == nil {
		Fail("DBClient is not connected")
	}

	finalQuery := c.bind(query)
	Log(LogTypeDB, "Query Data", fmt.Sprintf("Query: %s\nArgs: %v", finalQuery, args))
	rows, err := c.DB.Query(finalQuery, args...)
	if err != nil {
		Fail("Failed to query data: %v", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		Fail("Failed to get columns: %v", err)
	}

	var results []RowResult
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			Fail("Failed to scan row: %v", err)
		}

		rowData := make(map[string]interface{})
		for i, col := range columns {
			key := strings.ToLower(col)
			// Some drivers return text columns as []byte
			if b, ok := values[i].([]byte); ok {
				rowData[key] = string(b)
			} else {
				rowData[key] = values[i]
			}
		}
		results = append(results, RowResult{Data: rowData})
	}
	if err := rows.Err(); err != nil {
		Fail("Failed to read rows: %v", err)
	}

	return &QueryResult{Rows: results}
}

// GetRow returns the row at the specified index. Fails if index is out of bounds.
func (qr *QueryResult) GetRow(index int) *RowResult {
	if index < 0 || index >= len(qr.Rows) {
		Fail("GetRow: index %d out of bounds (count: %d)", index, len(qr.Rows))
	}
	return &qr.Rows[index]
}

// Count returns the number of rows.
func (qr *QueryResult) Count() int {
	return len(qr.Rows)
}

// ExpectCount asserts that the number of rows matches the expected count.
func (qr *QueryResult) ExpectCount(expected int) {
	count := qr.Count()
	if count != expected {
		Fail("Expected Row Count %d, got %d", expected, count)
	}
	Logf(LogTypeExpect, "Row Count %d == %d - PASSED", count, expected)
}

// Get returns the value of a field. Fails if field does not exist.
func (r *RowResult) Get(field string) interface{} {
	val, ok := r.Data[strings.ToLower(field)]
	if !ok {
		Fail("Field '%s' not found in row", field)
	}
	return val
}

// String returns a field formatted as a string; NULL becomes "".
func (r *RowResult) String(field string) string {
	val := r.Get(field)
	if val == nil {
		return ""
	}
	return fmt.Sprintf("%v", val)
}

// Int64 returns a numeric field, converting from the driver's representation.
func (r *RowResult) Int64(field string) int64 {
	val := r.Get(field)
	if isNumber(val) {
		return int64(toFloat64(val))
	}
	var n int64
	if _, err := fmt.Sscan(fmt.Sprintf("%v", val), &n); err != nil {
		Fail("Field '%s' (val=%v) is not an integer: %v", field, val, err)
	}
	return n
}

// Expect asserts that the field exists and equals the expected value.
// Values are also compared in their string form to absorb driver type differences.
func (r *RowResult) Expect(field string, expected interface{}) {
	val := r.Get(field)
	if !valuesEqual(val, expected) && fmt.Sprintf("%v", val) != fmt.Sprintf("%v", expected) {
		Fail("Expect failed for field '%s': expected '%v', got '%v'", field, expected, val)
	}
	Logf(LogTypeExpect, "DB Field '%s' == '%v' - PASSED", field, expected)
}

// ExpectCond asserts that the field satisfies condition against expected.
func (r *RowResult) ExpectCond(field string, condition string, expected interface{}) {
	ExpectCondition(fmt.Sprintf("DB Field '%s'", field), r.Get(field), condition, expected)
}
