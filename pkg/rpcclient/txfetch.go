package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

func (fetcher *RpcClient) GetTransactionMeta(ctx context.Context, sig solana.Signature) (*rpc.TransactionMeta, error) {
	maxSupportedTxVer := uint64(0)

	timer := prometheus.NewTimer(rpcLatency.WithLabelValues("getTransaction"))
	tx, err := fetcher.client.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     fetcher.commitment,
		MaxSupportedTransactionVersion: &maxSupportedTxVer,
	})
	observe("getTransaction", timer, err)
	if err != nil {
		return nil, err
	}

	return tx.Meta, nil
}

// GetEvents returns the data storage events logged by a transaction.
func (fetcher *RpcClient) GetEvents(ctx context.Context, sig solana.Signature) ([]datastorage.Event, error) {
	meta, err := fetcher.GetTransactionMeta(ctx, sig)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, nil
	}

	return datastorage.ParseEvents(meta.LogMessages)
}

// TransactionError converts the err field of a transaction's metadata into a
// Go error. Custom instruction errors raised by the data storage program
// become *datastorage.ProgramError. A successful transaction yields nil.
func TransactionError(meta *rpc.TransactionMeta) error {
	if meta == nil || meta.Err == nil {
		return nil
	}

	// {"InstructionError": [idx, {"Custom": code}]}
	if m, ok := meta.Err.(map[string]interface{}); ok {
		if instrErr, ok := m["InstructionError"].([]interface{}); ok && len(instrErr) == 2 {
			if inner, ok := instrErr[1].(map[string]interface{}); ok {
				if code, ok := jsonUint32(inner["Custom"]); ok {
					if progErr := datastorage.ProgramErrorFromCode(code); progErr != nil {
						return fmt.Errorf("instruction %v: %w", instrErr[0], progErr)
					}
				}
			}
		}
	}

	return fmt.Errorf("transaction failed: %v", meta.Err)
}

func jsonUint32(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case float64:
		return uint32(n), n >= 0 && n == float64(uint32(n))
	case json.Number:
		i, err := n.Int64()
		return uint32(i), err == nil && i >= 0 && i <= 0xffffffff
	}
	return 0, false
}
