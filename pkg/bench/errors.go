package bench

import "fmt"

// Step identifies which stage of a benchmark run failed.
type Step string

const (
	StepProviderConnection  Step = "provider_connection"
	StepBlockHeightFetch    Step = "block_height_fetch"
	StepGasPriceFetch       Step = "gas_price_fetch"
	StepTransactionFetch    Step = "transaction_fetch"
	StepWalletCreation      Step = "wallet_creation"
	StepContractInteraction Step = "contract_interaction"
)

var stepMessages = map[Step]string{
	StepProviderConnection:  "failed to connect to provider",
	StepBlockHeightFetch:    "failed to fetch latest block height",
	StepGasPriceFetch:       "failed to fetch latest gas price",
	StepTransactionFetch:    "failed to fetch latest transactions",
	StepWalletCreation:      "failed to create wallet",
	StepContractInteraction: "failed to interact with contract",
}

// Error tags an underlying failure with the benchmark step it happened in.
// The driver logs it and moves on; it never terminates the run.
type Error struct {
	Step Step
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", stepMessages[e.Step], e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func stepErr(step Step, err error) *Error {
	return &Error{Step: step, Err: err}
}
