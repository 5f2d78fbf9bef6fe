package bench

import (
	"context"
	"time"

	"github.com/nazgull08/fuelbench/config"
	"github.com/nazgull08/fuelbench/pkg/contract"
	"github.com/nazgull08/fuelbench/pkg/metrics"
	"github.com/nazgull08/fuelbench/pkg/rpc"
	"github.com/nazgull08/fuelbench/pkg/wallet"
	"github.com/rs/zerolog/log"
)

// TransactionPageSize is how many recent transactions the node benchmark
// requests, newest first.
const TransactionPageSize = 10

// NodeResult is one successful node benchmark: the end-to-end duration
// plus the values observed along the way.
type NodeResult struct {
	Duration    time.Duration
	BlockHeight uint64
	GasPrice    uint64
	TxStatus    string // empty when the node reported no transactions
}

// Runner drives benchmark cycles over the configured endpoints. A fresh
// provider connection is dialed per benchmark invocation.
type Runner struct {
	cfg     *config.Config
	tracker *Tracker
	dial    rpc.DialFunc
}

func NewRunner(cfg *config.Config, tracker *Tracker) *Runner {
	return &Runner{
		cfg:     cfg,
		tracker: tracker,
		dial:    rpc.Dial,
	}
}

// WithDialFunc allows injecting a mock provider factory for testing
func (r *Runner) WithDialFunc(f rpc.DialFunc) *Runner {
	r.dial = f
	return r
}

// RunAll benchmarks every configured endpoint once, in order. Failures are
// logged and recorded, never propagated; the loop always reaches the end of
// the list.
func (r *Runner) RunAll(ctx context.Context) {
	for _, url := range r.cfg.ProviderURLs {
		log.Info().Str("url", url).Msg("Benchmarking provider")

		res, err := r.BenchmarkNode(ctx, url)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("Node request failed")
			r.tracker.RecordFailure(url, err)
			metrics.RecordBenchmark("node", url, "error")
		} else {
			log.Info().Str("url", url).Dur("duration", res.Duration).Msg("Node request completed")
			r.tracker.RecordSuccess(url, res)
			metrics.RecordBenchmark("node", url, "ok")
			metrics.ObserveBenchmarkDuration("node", url, res.Duration.Seconds())
		}

		if !r.cfg.ContractBench {
			continue
		}

		dur, err := r.BenchmarkContract(ctx, url, r.cfg.Mnemonic, r.cfg.ContractID)
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("Contract request failed")
			metrics.RecordBenchmark("contract", url, "error")
		} else {
			log.Info().Str("url", url).Dur("duration", dur).Msg("Contract request completed")
			metrics.RecordBenchmark("contract", url, "ok")
			metrics.ObserveBenchmarkDuration("contract", url, dur.Seconds())
		}
	}
}

// BenchmarkNode times one full node-query cycle against a single endpoint:
// connect, latest block height, latest gas price, recent transactions.
// It stops at the first failing step and reports which step failed.
func (r *Runner) BenchmarkNode(ctx context.Context, url string) (*NodeResult, error) {
	start := time.Now()

	log.Info().Str("url", url).Msg("Connecting to node")
	provider, err := r.dial(ctx, url, r.cfg.RequestTimeout)
	if err != nil {
		return nil, stepErr(StepProviderConnection, err)
	}
	log.Info().Msg("Connected")

	log.Info().Msg("Fetching latest block height")
	height, err := provider.LatestBlockHeight(ctx)
	if err != nil {
		return nil, stepErr(StepBlockHeightFetch, err)
	}
	log.Info().Uint64("height", height).Msg("Block height")

	log.Info().Msg("Fetching latest gas price")
	gasPrice, err := provider.LatestGasPrice(ctx)
	if err != nil {
		return nil, stepErr(StepGasPriceFetch, err)
	}
	log.Info().Uint64("gasPrice", gasPrice).Msg("Latest gas price")

	log.Info().Msg("Fetching latest transactions")
	page, err := provider.GetTransactions(ctx, rpc.PaginationRequest{
		Cursor:    nil,
		Results:   TransactionPageSize,
		Direction: rpc.PageBackward,
	})
	if err != nil {
		return nil, stepErr(StepTransactionFetch, err)
	}

	res := &NodeResult{
		BlockHeight: height,
		GasPrice:    gasPrice,
	}
	if len(page.Results) > 0 {
		res.TxStatus = page.Results[0].Status
		log.Info().Str("status", res.TxStatus).Msg("Latest transaction")
	} else {
		log.Info().Msg("No transactions found in the latest block")
	}

	res.Duration = time.Since(start)
	return res, nil
}

// BenchmarkContract times connecting, deriving a wallet from the mnemonic,
// binding the market contract and reading its matcher fee. Disabled unless
// CONTRACT_BENCH is set.
func (r *Runner) BenchmarkContract(ctx context.Context, url, mnemonic, contractID string) (time.Duration, error) {
	start := time.Now()

	provider, err := r.dial(ctx, url, r.cfg.RequestTimeout)
	if err != nil {
		return 0, stepErr(StepProviderConnection, err)
	}

	path := wallet.DerivationPath(r.cfg.AccountIndex)
	w, err := wallet.FromMnemonic(mnemonic, path)
	if err != nil {
		return 0, stepErr(StepWalletCreation, err)
	}
	log.Debug().Str("address", w.Address()).Str("path", path).Msg("Wallet derived")

	market, err := contract.NewMarket(contractID, provider, w)
	if err != nil {
		return 0, stepErr(StepContractInteraction, err)
	}

	fee, err := market.MatcherFee(ctx)
	if err != nil {
		return 0, stepErr(StepContractInteraction, err)
	}
	log.Info().Uint64("matcherFee", fee).Msg("Matcher fee")

	return time.Since(start), nil
}
