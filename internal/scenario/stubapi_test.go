package scenario

import (
	"testing"

	"github.com/stretchr/testify/require"

	v1 "github.com/ashleanichols/stacks-wallet/pkg/v1"

	"github.com/ashleanichols/stacks-wallet/internal/network"
)

func TestStubAPIRoutes(t *testing.T) {
	ms := v1.RunMockServer("127.0.0.1:0", StubAPIRoutes(network.Mainnet))
	defer ms.Stop()

	resp, err := v1.TryRequest(ms.URL() + "/v2/info")
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Contains(t, resp.Body, `"network_id":1,`)
	require.Equal(t, "application/json", resp.Header["Content-Type"])

	resp, err = v1.TryRequest(ms.URL() + "/extended/v1/address/SP28VRDJ3TMB268BRMZXTJJ6Q4PABH108QM9GH8JG/transactions")
	require.NoError(t, err)
	require.Contains(t, resp.Body, `"total":0`)

	resp, err = v1.TryRequest(ms.URL() + "/extended/v1/address/SP28VRDJ3TMB268BRMZXTJJ6Q4PABH108QM9GH8JG/nonces")
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}
