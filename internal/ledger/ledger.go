// Package ledger records every scenario run in a SQL table.
package ledger

import (
	"fmt"
	"time"
	"unicode/utf8"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/network"
)

// Table is the ledger table name.
const Table = "restore_runs"

// Run statuses.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Run is one recorded scenario run.
type Run struct {
	ID        int64
	StartedAt time.Time
	Network   network.Network
	Address   string
	Status    string
	Failure   string
	Duration  time.Duration
}

// Passed reports whether the run succeeded.
func (r Run) Passed() bool { return r.Status == StatusPassed }

// Ledger stores runs through a DBClient.
type Ledger struct {
	db *v1.DBClient
}

// Open connects to the database and creates the table when missing.
func Open(driver, dsn string) (*Ledger, error) {
	db, err := v1.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	l := New(db)
	if err := l.EnsureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// New wraps an open client. Call EnsureSchema before first use.
func New(db *v1.DBClient) *Ledger {
	return &Ledger{db: db}
}

// EnsureSchema creates the table and its index if they do not exist.
func (l *Ledger) EnsureSchema() error {
	return v1.Catch(func() {
		l.db.SetupTable(Table, false, []v1.Field{
			{Name: "id", Type: l.db.AutoIncrementKey()},
			{Name: "started_at", Type: l.db.VarChar(40)},
			{Name: "network", Type: l.db.VarChar(16)},
			{Name: "address", Type: l.db.VarChar(64)},
			{Name: "status", Type: l.db.VarChar(16)},
			{Name: "failure", Type: l.db.VarChar(1000)},
			{Name: "duration_ms", Type: l.db.BigInt()},
		}, []v1.Index{
			{Columns: []string{"network", "status"}},
		})
	})
}

// Record appends run.
func (l *Ledger) Record(run Run) error {
	err := v1.Catch(func() {
		l.db.InsertRow(Table, []v1.InsertField{
			{Key: "started_at", Value: run.StartedAt.UTC().Format(time.RFC3339Nano)},
			{Key: "network", Value: run.Network.String()},
			{Key: "address", Value: run.Address},
			{Key: "status", Value: run.Status},
			{Key: "failure", Value: truncate(run.Failure, 1000)},
			{Key: "duration_ms", Value: run.Duration.Milliseconds()},
		})
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	v1.Log(v1.LogTypeLedger, fmt.Sprintf("Recorded %s run on %s", run.Status, run.Network), run.Address)
	return nil
}

// Recent returns up to limit runs, newest first.
func (l *Ledger) Recent(limit int) ([]Run, error) {
	var runs []Run
	err := v1.Catch(func() {
		res := l.db.Fetch(fmt.Sprintf(
			"SELECT id, started_at, network, address, status, failure, duration_ms FROM %s ORDER BY id DESC %s",
			Table, l.db.Limit(limit)))
		for i := range res.Rows {
			runs = append(runs, scan(&res.Rows[i]))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("read recent runs: %w", err)
	}
	return runs, nil
}

// Addresses returns the distinct addresses passing runs on n have shown.
func (l *Ledger) Addresses(n network.Network) ([]string, error) {
	var addrs []string
	err := v1.Catch(func() {
		res := l.db.Fetch(fmt.Sprintf(
			"SELECT DISTINCT address FROM %s WHERE network = ? AND status = ? ORDER BY address", Table),
			n.String(), StatusPassed)
		for i := range res.Rows {
			addrs = append(addrs, res.Rows[i].String("address"))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("read addresses: %w", err)
	}
	return addrs, nil
}

// Clear deletes every recorded run.
func (l *Ledger) Clear() error {
	return v1.Catch(func() { l.db.CleanTable(Table) })
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func scan(row *v1.RowResult) Run {
	started, _ := time.Parse(time.RFC3339Nano, row.String("started_at"))
	return Run{
		ID:        row.Int64("id"),
		StartedAt: started,
		Network:   network.Network(row.String("network")),
		Address:   row.String("address"),
		Status:    row.String("status"),
		Failure:   row.String("failure"),
		Duration:  time.Duration(row.Int64("duration_ms")) * time.Millisecond,
	}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
