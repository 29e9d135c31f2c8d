package rest

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ledger-sync/internal/api/shared/dto"
	"github.com/feral-file/ff-ledger-sync/internal/api/shared/executor"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	HealthCheck(c *gin.Context)
	GetNFT(c *gin.Context)
	ListNFTs(c *gin.Context)
	ListPendingMints(c *gin.Context)
	ListSyncStates(c *gin.Context)
	ResetCheckpoint(c *gin.Context)
	StartReconciliation(c *gin.Context)
}

type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// HealthCheck handles GET /health
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-ledger-sync",
	})
}

// GetNFT handles GET /api/v1/nfts/:contract/:token_id
func (h *handler) GetNFT(c *gin.Context) {
	contract := c.Param("contract")
	tokenID := c.Param("token_id")

	if !types.IsEthereumAddress(contract) {
		respondBadRequest(c, "Invalid contract address")
		return
	}
	if !isTokenID(tokenID) {
		respondBadRequest(c, "Invalid token id", "token id must be a non-negative decimal integer")
		return
	}

	nft, err := h.executor.GetNFT(c.Request.Context(), contract, tokenID)
	if err != nil {
		respondInternalError(c, err, "Failed to retrieve NFT")
		return
	}
	if nft == nil {
		respondNotFound(c, "NFT not found")
		return
	}

	c.JSON(http.StatusOK, nft)
}

// ListNFTs handles GET /api/v1/nfts
func (h *handler) ListNFTs(c *gin.Context) {
	filter, err := ParseListNFTsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.ListNFTs(c.Request.Context(), *filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list NFTs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPendingMints handles GET /api/v1/pending-mints
func (h *handler) ListPendingMints(c *gin.Context) {
	filter, err := ParseListPendingMintsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	resp, err := h.executor.ListPendingMints(c.Request.Context(), *filter)
	if err != nil {
		respondInternalError(c, err, "Failed to list pending mints")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSyncStates handles GET /api/v1/sync-states
func (h *handler) ListSyncStates(c *gin.Context) {
	resp, err := h.executor.ListSyncStates(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list sync states")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetCheckpoint handles POST /api/v1/sync-states/:contract/reset
func (h *handler) ResetCheckpoint(c *gin.Context) {
	contract := c.Param("contract")
	if !types.IsEthereumAddress(contract) {
		respondBadRequest(c, "Invalid contract address")
		return
	}

	var req dto.ResetCheckpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.ResetCheckpoint(c.Request.Context(), contract, *req.Block)
	if err != nil {
		respondInternalError(c, err, "Failed to reset checkpoint")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StartReconciliation handles POST /api/v1/reconciliations
func (h *handler) StartReconciliation(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if !types.IsEthereumAddress(req.Contract) {
		respondValidationError(c, "contract is not a valid address")
		return
	}

	resp, err := h.executor.StartReconciliation(c.Request.Context(), req.Contract, req.UpperBound)
	if err != nil {
		if errors.Is(err, executor.ErrReconciliationUnavailable) {
			respondServiceUnavailable(c, "Reconciliation unavailable", err.Error())
			return
		}
		respondInternalError(c, err, "Failed to start reconciliation")
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

func isTokenID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	_, ok := new(big.Int).SetString(s, 10)
	return ok
}
