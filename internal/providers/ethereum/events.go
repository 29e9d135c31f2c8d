package ethereum

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/ff-ledger-sync/internal/domain"
	internalTypes "github.com/feral-file/ff-ledger-sync/internal/types"
)

// Event signatures
var (
	// ERC721 Transfer(address indexed from, address indexed to, uint256 indexed tokenId) - 4 topics.
	// ERC20 shares the signature with 3 topics.
	transferEventSignature = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	// QuestCompleted(address indexed user, uint256 indexed questId, uint256 questDay)
	questCompletedEventSignature = crypto.Keccak256Hash([]byte("QuestCompleted(address,uint256,uint256)"))

	zeroAddressTopic = common.BytesToHash(common.HexToAddress(domain.ETHEREUM_ZERO_ADDRESS).Bytes())
)

// ParseTransferLog parses an ERC721 Transfer log. ERC20 transfers return nil without error.
func ParseTransferLog(vLog types.Log) (*domain.TransferEvent, error) {
	if len(vLog.Topics) == 0 || vLog.Topics[0] != transferEventSignature {
		return nil, fmt.Errorf("not a Transfer event: %s", vLog.TxHash.Hex())
	}
	if len(vLog.Topics) == 3 {
		return nil, nil
	}
	if len(vLog.Topics) != 4 {
		return nil, fmt.Errorf("invalid Transfer event: expected 3 or 4 topics, got %d", len(vLog.Topics))
	}

	return &domain.TransferEvent{
		ContractAddress: internalTypes.NormalizeAddress(vLog.Address.Hex()),
		From:            internalTypes.NormalizeAddress(common.BytesToAddress(vLog.Topics[1].Bytes()).Hex()),
		To:              internalTypes.NormalizeAddress(common.BytesToAddress(vLog.Topics[2].Bytes()).Hex()),
		TokenID:         domain.TokenIDString(new(big.Int).SetBytes(vLog.Topics[3].Bytes())),
		TxHash:          internalTypes.NormalizeTxHash(vLog.TxHash.Hex()),
		BlockNumber:     vLog.BlockNumber,
		LogIndex:        vLog.Index,
	}, nil
}

// ParseQuestLog parses a QuestCompleted log. The block timestamp is left for the caller.
func ParseQuestLog(vLog types.Log) (*domain.QuestEvent, error) {
	if len(vLog.Topics) != 3 || vLog.Topics[0] != questCompletedEventSignature {
		return nil, fmt.Errorf("invalid QuestCompleted event: %s", vLog.TxHash.Hex())
	}
	if len(vLog.Data) < 32 {
		return nil, fmt.Errorf("invalid QuestCompleted event: insufficient data")
	}

	questID := new(big.Int).SetBytes(vLog.Topics[2].Bytes())
	questDay := new(big.Int).SetBytes(vLog.Data[0:32])
	if !questID.IsUint64() || !questDay.IsUint64() {
		return nil, fmt.Errorf("invalid QuestCompleted event: quest id or day overflows")
	}

	return &domain.QuestEvent{
		ContractAddress: internalTypes.NormalizeAddress(vLog.Address.Hex()),
		WalletAddress:   internalTypes.NormalizeAddress(common.BytesToAddress(vLog.Topics[1].Bytes()).Hex()),
		QuestID:         questID.Uint64(),
		QuestDay:        questDay.Uint64(),
		BlockNumber:     vLog.BlockNumber,
		TxHash:          internalTypes.NormalizeTxHash(vLog.TxHash.Hex()),
		LogIndex:        vLog.Index,
	}, nil
}
