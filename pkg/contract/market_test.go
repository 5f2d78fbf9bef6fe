package contract

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/nazgull08/fuelbench/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testID = "0x7e2becd64cd598da59b4d1064b711661898656f6b1f4918a787156b8965dc83c"

// MockProvider implements rpc.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) ChainName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) LatestBlockHeight(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockProvider) LatestGasPrice(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockProvider) GetTransactions(ctx context.Context, req rpc.PaginationRequest) (*rpc.TransactionPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rpc.TransactionPage), args.Error(1)
}

func (m *MockProvider) ContractSlotValue(ctx context.Context, contractID, slot string) ([]byte, error) {
	args := m.Called(ctx, contractID, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestParseContractID(t *testing.T) {
	id, err := ParseContractID(testID)
	assert.NoError(t, err)
	assert.Equal(t, testID, id.String())

	// 0x prefix is optional
	bare, err := ParseContractID(strings.TrimPrefix(testID, "0x"))
	assert.NoError(t, err)
	assert.Equal(t, id, bare)
}

func TestParseContractID_Malformed(t *testing.T) {
	_, err := ParseContractID("contract_id")
	assert.Error(t, err)

	_, err = ParseContractID("0xabcd")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "want 32 bytes")
}

func TestNewMarket_MalformedID(t *testing.T) {
	_, err := NewMarket("contract_id", new(MockProvider), nil)
	assert.Error(t, err)
}

func TestMarket_MatcherFee(t *testing.T) {
	value := make([]byte, 32)
	binary.BigEndian.PutUint64(value[24:], 500)

	p := new(MockProvider)
	p.On("ContractSlotValue", mock.Anything, testID, mock.MatchedBy(func(slot string) bool {
		return strings.HasPrefix(slot, "0x") && len(slot) == 66
	})).Return(value, nil)

	m, err := NewMarket(testID, p, nil)
	assert.NoError(t, err)

	fee, err := m.MatcherFee(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint64(500), fee)
	p.AssertExpectations(t)
}

func TestMarket_MatcherFee_ReadError(t *testing.T) {
	p := new(MockProvider)
	p.On("ContractSlotValue", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	m, err := NewMarket(testID, p, nil)
	assert.NoError(t, err)

	_, err = m.MatcherFee(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestMarket_MatcherFee_ShortValue(t *testing.T) {
	p := new(MockProvider)
	p.On("ContractSlotValue", mock.Anything, mock.Anything, mock.Anything).Return([]byte{1, 2}, nil)

	m, err := NewMarket(testID, p, nil)
	assert.NoError(t, err)

	_, err = m.MatcherFee(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}
