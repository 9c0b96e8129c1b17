package chains

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// Dial connects to an EVM JSON-RPC endpoint and returns it with its chain id
func Dial(ctx context.Context, rpcURL string, logger *zap.Logger) (*ethclient.Client, *big.Int, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()

		return nil, nil, fmt.Errorf("failed to fetch chain id: %w", err)
	}

	logger.Info("connected to chain", zap.Stringer("chainId", chainID))

	return client, chainID, nil
}
