package ledger

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/network"
)

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := v1.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB.SetMaxOpenConns(1)
	l := New(db)
	require.NoError(t, l.EnsureSchema())
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := newLedger(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, l.Record(Run{
		StartedAt: start,
		Network:   network.Testnet,
		Address:   "ST28VRDJ3TMB268BRMZXTJJ6Q4PABH108QNY5BSK1",
		Status:    StatusPassed,
		Duration:  1500 * time.Millisecond,
	}))
	require.NoError(t, l.Record(Run{
		StartedAt: start.Add(time.Hour),
		Network:   network.Mainnet,
		Status:    StatusFailed,
		Failure:   `stage "Reveal Address" failed: timeout`,
		Duration:  time.Second,
	}))

	runs, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	require.Equal(t, network.Mainnet, runs[0].Network)
	require.False(t, runs[0].Passed())
	require.Contains(t, runs[0].Failure, "Reveal Address")

	require.True(t, runs[1].Passed())
	require.Equal(t, start, runs[1].StartedAt)
	require.Equal(t, 1500*time.Millisecond, runs[1].Duration)

	runs, err = l.Recent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestAddressesOnlyCountsPassingRuns(t *testing.T) {
	l := newLedger(t)
	for i := 0; i < 2; i++ {
		require.NoError(t, l.Record(Run{
			StartedAt: time.Now(),
			Network:   network.Testnet,
			Address:   "ST28VRDJ3TMB268BRMZXTJJ6Q4PABH108QNY5BSK1",
			Status:    StatusPassed,
		}))
	}
	require.NoError(t, l.Record(Run{
		StartedAt: time.Now(),
		Network:   network.Testnet,
		Address:   "ST_WRONG",
		Status:    StatusFailed,
	}))

	addrs, err := l.Addresses(network.Testnet)
	require.NoError(t, err)
	require.Equal(t, []string{"ST28VRDJ3TMB268BRMZXTJJ6Q4PABH108QNY5BSK1"}, addrs)

	addrs, err = l.Addresses(network.Mainnet)
	require.NoError(t, err)
	require.Empty(t, addrs)
}

func TestEnsureSchemaIsRepeatable(t *testing.T) {
	l := newLedger(t)
	require.NoError(t, l.EnsureSchema())

	require.NoError(t, l.Record(Run{StartedAt: time.Now(), Network: network.Testnet, Status: StatusPassed}))
	require.NoError(t, l.Clear())
	runs, err := l.Recent(5)
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestOpenFailsForUnknownDriver(t *testing.T) {
	_, err := Open("nosuchdriver", "x")
	require.Error(t, err)
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 10))
	require.Equal(t, "ab", truncate("abcdef", 2))

	// "é" is two bytes; cutting at 2 would split it.
	got := truncate("aé", 2)
	require.Equal(t, "a", got)
	require.True(t, utf8.ValidString(got))

	long := strings.Repeat("€", 400) // 1200 bytes
	got = truncate(long, 1000)
	require.True(t, utf8.ValidString(got))
	require.LessOrEqual(t, len(got), 1000)
	require.Equal(t, strings.Repeat("€", 333), got)
}
