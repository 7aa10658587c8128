package rpcclient

import (
	"github.com/gagliardetto/solana-go/rpc"
)

// MaxAccountsPerRequest is the getMultipleAccounts limit of public RPC nodes.
const MaxAccountsPerRequest = 100

type RpcClient struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
	// maximum number of getMultipleAccounts requests in flight
	parallelism int
	progress    func(n int)
}

func NewRpcClient(endpoint string, commitment rpc.CommitmentType) *RpcClient {
	client := rpc.New(endpoint)
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &RpcClient{client: client, commitment: commitment, parallelism: 4}
}

// Raw exposes the underlying solana-go client.
func (fetcher *RpcClient) Raw() *rpc.Client {
	return fetcher.client
}

// OnProgress registers fn to be called with the number of keys covered by
// each completed getMultipleAccounts batch. fn may be called concurrently.
func (fetcher *RpcClient) OnProgress(fn func(n int)) {
	fetcher.progress = fn
}

// SetParallelism bounds the number of concurrent batch requests.
func (fetcher *RpcClient) SetParallelism(n int) {
	if n > 0 {
		fetcher.parallelism = n
	}
}
