package contract

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/nazgull08/fuelbench/pkg/rpc"
	"github.com/nazgull08/fuelbench/pkg/wallet"
)

// ContractID is a 32-byte Fuel contract identifier.
type ContractID [32]byte

// ParseContractID parses a hex contract identifier, with or without the 0x
// prefix. A malformed identifier is a normal error, never a panic.
func ParseContractID(s string) (ContractID, error) {
	var id ContractID
	raw := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return id, fmt.Errorf("contract id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("contract id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id ContractID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// matcherFeeSlot is the storage slot holding the market's matcher fee,
// keyed the way Sway lays out named storage fields.
var matcherFeeSlot = storageSlot("storage.matcher_fee")

func storageSlot(field string) string {
	sum := sha256.Sum256([]byte(field))
	return "0x" + hex.EncodeToString(sum[:])
}

// Market is a read handle to a deployed Spark market contract.
type Market struct {
	id       ContractID
	provider rpc.Provider
	owner    *wallet.Wallet
}

func NewMarket(rawID string, provider rpc.Provider, owner *wallet.Wallet) (*Market, error) {
	id, err := ParseContractID(rawID)
	if err != nil {
		return nil, err
	}
	return &Market{
		id:       id,
		provider: provider,
		owner:    owner,
	}, nil
}

func (m *Market) ID() ContractID {
	return m.id
}

// MatcherFee reads the market's matcher fee from contract storage without
// submitting a transaction.
func (m *Market) MatcherFee(ctx context.Context) (uint64, error) {
	value, err := m.provider.ContractSlotValue(ctx, m.id.String(), matcherFeeSlot)
	if err != nil {
		return 0, err
	}
	if len(value) < 8 {
		return 0, fmt.Errorf("matcher fee slot too short: %d bytes", len(value))
	}
	return binary.BigEndian.Uint64(value[len(value)-8:]), nil
}
