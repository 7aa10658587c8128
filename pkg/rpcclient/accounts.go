package rpcclient

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.firedancer.io/datastorage/pkg/accounts"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

func accountFromRpc(key solana.PublicKey, a *rpc.Account) *accounts.Account {
	if a == nil {
		return nil
	}

	acct := &accounts.Account{
		Key:        key,
		Lamports:   a.Lamports,
		Owner:      a.Owner,
		Executable: a.Executable,
	}
	if a.Data != nil {
		acct.Data = a.Data.GetBinary()
	}
	if a.RentEpoch != nil && a.RentEpoch.IsUint64() {
		acct.RentEpoch = a.RentEpoch.Uint64()
	}

	return acct
}

// GetAccount implements accounts.Accounts. A missing account yields
// (nil, nil).
func (fetcher *RpcClient) GetAccount(ctx context.Context, pubkey solana.PublicKey) (*accounts.Account, error) {
	timer := prometheus.NewTimer(rpcLatency.WithLabelValues("getAccountInfo"))
	result, err := fetcher.client.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: fetcher.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		observe("getAccountInfo", timer, nil)
		return nil, nil
	}
	observe("getAccountInfo", timer, err)
	if err != nil {
		return nil, err
	}

	fetchedAccounts.Inc()
	return accountFromRpc(pubkey, result.Value), nil
}

// GetAccounts fetches many accounts, batching getMultipleAccounts calls and
// running up to parallelism of them at once. The result is index-aligned
// with pubkeys; missing accounts are nil.
func (fetcher *RpcClient) GetAccounts(ctx context.Context, pubkeys []solana.PublicKey) ([]*accounts.Account, error) {
	out := make([]*accounts.Account, len(pubkeys))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(fetcher.parallelism)

	for chunkIdx, chunk := range lo.Chunk(pubkeys, MaxAccountsPerRequest) {
		offset := chunkIdx * MaxAccountsPerRequest
		chunk := chunk
		group.Go(func() error {
			timer := prometheus.NewTimer(rpcLatency.WithLabelValues("getMultipleAccounts"))
			result, err := fetcher.client.GetMultipleAccountsWithOpts(gctx, chunk, &rpc.GetMultipleAccountsOpts{
				Encoding:   solana.EncodingBase64,
				Commitment: fetcher.commitment,
			})
			observe("getMultipleAccounts", timer, err)
			if err != nil {
				return err
			}

			for i, a := range result.Value {
				if i >= len(chunk) {
					break
				}
				out[offset+i] = accountFromRpc(chunk[i], a)
				if a != nil {
					fetchedAccounts.Inc()
				}
			}

			if fetcher.progress != nil {
				fetcher.progress(len(chunk))
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	klog.V(2).Infof("fetched %d accounts in %d batches", len(pubkeys), (len(pubkeys)+MaxAccountsPerRequest-1)/MaxAccountsPerRequest)
	return out, nil
}

// GetAccountsByAuthority lists the initialized data storage accounts of
// programID whose authority is authority.
func (fetcher *RpcClient) GetAccountsByAuthority(ctx context.Context, programID, authority solana.PublicKey) ([]*accounts.Account, error) {
	timer := prometheus.NewTimer(rpcLatency.WithLabelValues("getProgramAccounts"))
	result, err := fetcher.client.GetProgramAccountsWithOpts(ctx, programID, &rpc.GetProgramAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: fetcher.commitment,
		Filters: []rpc.RPCFilter{
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: datastorage.OffsetAuthority, Bytes: solana.Base58(authority.Bytes())}},
			{Memcmp: &rpc.RPCFilterMemcmp{Offset: datastorage.OffsetIsInitialized, Bytes: solana.Base58([]byte{1})}},
		},
	})
	observe("getProgramAccounts", timer, err)
	if err != nil {
		return nil, err
	}

	fetchedAccounts.Add(float64(len(result)))
	return lo.Map(result, func(keyed *rpc.KeyedAccount, _ int) *accounts.Account {
		return accountFromRpc(keyed.Pubkey, keyed.Account)
	}), nil
}

// GetRent reads the rent sysvar.
func (fetcher *RpcClient) GetRent(ctx context.Context) (*datastorage.Rent, error) {
	acct, err := fetcher.GetAccount(ctx, datastorage.SysvarRentAddr)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, datastorage.ErrAccountNotFound
	}

	return datastorage.DecodeRent(acct.Data)
}
