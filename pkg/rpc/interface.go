package rpc

import (
	"context"
	"time"
)

// Provider is the read-only surface of a connected Fuel node.
type Provider interface {
	ChainName(ctx context.Context) (string, error)
	LatestBlockHeight(ctx context.Context) (uint64, error)
	LatestGasPrice(ctx context.Context) (uint64, error)
	GetTransactions(ctx context.Context, req PaginationRequest) (*TransactionPage, error)
	ContractSlotValue(ctx context.Context, contractID, slot string) ([]byte, error)
}

// DialFunc opens a connection to an endpoint. Tests swap this for a
// mock factory.
type DialFunc func(ctx context.Context, url string, timeout time.Duration) (Provider, error)
