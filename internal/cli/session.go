package cli

import (
	"fmt"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/baseline"
	"github.com/ashleanichols/stacks-wallet/internal/config"
	"github.com/ashleanichols/stacks-wallet/internal/ledger"
	"github.com/ashleanichols/stacks-wallet/internal/scenario"
)

// session is a tester with the restore wallet scenario and its optional stores.
type session struct {
	tester   *v1.Tester
	scenario *scenario.RestoreWallet
	ledger   *ledger.Ledger
	baseline *baseline.Store
}

func newSession(cfg *config.Config, withLedger, withBaseline bool) (*session, error) {
	s := &session{tester: v1.NewTester()}
	deps := scenario.Deps{Config: cfg}

	if withLedger {
		l, err := ledger.Open(cfg.LedgerDriver, cfg.LedgerDSN)
		if err != nil {
			return nil, fmt.Errorf("open run ledger: %w", err)
		}
		s.ledger, deps.Ledger = l, l
	}

	if withBaseline && cfg.RedisAddr != "" {
		var client *v1.RedisClient
		err := v1.Catch(func() { client = v1.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB) })
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect address baseline: %w", err)
		}
		s.baseline = baseline.New(client)
		deps.Baseline = s.baseline
	}

	s.scenario = scenario.RegisterRestoreWallet(s.tester, deps)
	return s, nil
}

func (s *session) Close() {
	if s.ledger != nil {
		s.ledger.Close()
	}
	if s.baseline != nil {
		s.baseline.Close()
	}
}
