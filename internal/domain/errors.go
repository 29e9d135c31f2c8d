package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenNotFound is returned when ownerOf reverts or resolves to the zero address
	ErrTokenNotFound = errors.New("token not found")

	// ErrTokenURIReverted is returned when tokenURI reverts on the ledger
	ErrTokenURIReverted = errors.New("tokenURI reverted")

	// ErrEmptyTokenURI is returned when tokenURI succeeds with an empty string
	ErrEmptyTokenURI = errors.New("tokenURI is empty")

	// ErrTotalSupplyUnsupported is returned when the contract does not implement totalSupply
	ErrTotalSupplyUnsupported = errors.New("totalSupply not supported")

	// ErrMintLogNotFound is returned when no mint transfer log exists for a token
	ErrMintLogNotFound = errors.New("mint log not found")

	// ErrUnparseableMetadata is returned when a tokenURI or metadata document cannot be decoded
	ErrUnparseableMetadata = errors.New("unparseable metadata")

	// ErrReferenceNeedsFetch is returned by the normalizer for IPFS references
	ErrReferenceNeedsFetch = errors.New("metadata reference must be fetched")

	// ErrCheckpointRegression is matched by RegressionError
	ErrCheckpointRegression = errors.New("checkpoint regression")

	// ErrDuplicateTransactionHash is returned when a second record claims an existing mint transaction
	ErrDuplicateTransactionHash = errors.New("duplicate transaction hash")

	// ErrUnknownWallet is returned when a quest event wallet is not linked to any user
	ErrUnknownWallet = errors.New("wallet not linked to a user")

	// ErrUnknownQuest is returned when a quest id is missing from the catalog
	ErrUnknownQuest = errors.New("unknown quest")

	// ErrClaimLost is returned when a pending mint lease was taken over by another sweep
	ErrClaimLost = errors.New("pending mint claim lost")
)

// RegressionError reports an attempt to move a checkpoint backwards
type RegressionError struct {
	ContractAddress string
	Current         uint64
	Attempted       uint64
}

func (e *RegressionError) Error() string {
	return fmt.Sprintf("checkpoint regression for %s: current %d, attempted %d",
		e.ContractAddress, e.Current, e.Attempted)
}

// Is makes errors.Is(err, ErrCheckpointRegression) match
func (e *RegressionError) Is(target error) bool {
	return target == ErrCheckpointRegression
}
