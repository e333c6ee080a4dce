// Package network resolves which Stacks network the wallet under test runs against.
package network

import (
	"fmt"
	"os"
	"strings"
)

// EnvVar selects the network for both the wallet and the runner.
const EnvVar = "STX_NETWORK"

// Network is a Stacks network name.
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

func (n Network) String() string { return string(n) }

// Parse converts a network name. The empty string means testnet.
func Parse(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Testnet):
		return Testnet, nil
	case string(Mainnet):
		return Mainnet, nil
	}
	return "", fmt.Errorf("unknown %s %q (want testnet or mainnet)", EnvVar, s)
}

// Current reads the network from the environment at call time.
func Current() (Network, error) {
	return Parse(os.Getenv(EnvVar))
}

// Choice holds one value per network.
type Choice[T any] struct {
	Testnet T
	Mainnet T
}

// When picks the value for n.
func When[T any](n Network, c Choice[T]) T {
	if n == Mainnet {
		return c.Mainnet
	}
	return c.Testnet
}
