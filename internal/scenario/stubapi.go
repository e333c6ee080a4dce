package scenario

import (
	"fmt"
	"net/http"
	"strings"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/network"
)

var networkIDs = network.Choice[uint32]{
	Testnet: 0x80000000,
	Mainnet: 0x00000001,
}

// StubAPIRoutes answers the Stacks API calls the wallet's home screen makes,
// describing an empty account on n.
func StubAPIRoutes(n network.Network) map[string]v1.MockHandlerFunc {
	info := fmt.Sprintf(`{"peer_version":402653184,"network_id":%d,"burn_block_height":1,"stacks_tip_height":1,"server_version":"stx-e2e stub"}`,
		network.When(n, networkIDs))

	return map[string]v1.MockHandlerFunc{
		"/v2/info": func(v1.Request) v1.Response {
			return v1.NewJSONResponse(http.StatusOK, info)
		},
		"/extended/v1/address/*": func(req v1.Request) v1.Response {
			switch {
			case strings.HasSuffix(req.Path, "/balances"):
				return v1.NewJSONResponse(http.StatusOK,
					`{"stx":{"balance":"0","total_sent":"0","total_received":"0","locked":"0"},"fungible_tokens":{},"non_fungible_tokens":{}}`)
			case strings.HasSuffix(req.Path, "/transactions"), strings.HasSuffix(req.Path, "/mempool"):
				return v1.NewJSONResponse(http.StatusOK, `{"limit":50,"offset":0,"total":0,"results":[]}`)
			}
			return v1.NewJSONResponse(http.StatusNotFound, `{"error":"not found"}`)
		},
		"/extended/v1/tx/mempool": func(v1.Request) v1.Response {
			return v1.NewJSONResponse(http.StatusOK, `{"limit":50,"offset":0,"total":0,"results":[]}`)
		},
		"/v2/fees/transfer": func(v1.Request) v1.Response {
			return v1.NewJSONResponse(http.StatusOK, `1`)
		},
	}
}
