package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-ledger-sync/internal/store"
	"github.com/feral-file/ff-ledger-sync/internal/types"
)

// ListNFTsQueryParams holds query parameters for GET /nfts
type ListNFTsQueryParams struct {
	Contract string `form:"contract"`
	Owner    string `form:"owner"`
	Creator  string `form:"creator"`
	Category string `form:"category"`
	HasGeo   *bool  `form:"has_geo"`
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
}

// ListPendingMintsQueryParams holds query parameters for GET /pending-mints
type ListPendingMintsQueryParams struct {
	Contract      string `form:"contract"`
	MinRetryCount int    `form:"min_retry,default=0"`
	Limit         int    `form:"limit,default=50"`
	Offset        int    `form:"offset,default=0"`
}

// ParseListNFTsQuery parses and validates query parameters for GET /nfts
func ParseListNFTsQuery(c *gin.Context) (*store.NFTFilter, error) {
	var params ListNFTsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	for name, address := range map[string]string{
		"contract": params.Contract,
		"owner":    params.Owner,
		"creator":  params.Creator,
	} {
		if address != "" && !types.IsEthereumAddress(address) {
			return nil, fmt.Errorf("%s is not a valid address", name)
		}
	}

	limit, offset, err := page(params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}

	return &store.NFTFilter{
		ContractAddress: types.NormalizeAddress(params.Contract),
		OwnerAddress:    types.NormalizeAddress(params.Owner),
		CreatorAddress:  types.NormalizeAddress(params.Creator),
		Category:        params.Category,
		HasGeo:          params.HasGeo,
		Limit:           limit,
		Offset:          offset,
	}, nil
}

// ParseListPendingMintsQuery parses and validates query parameters for GET /pending-mints
func ParseListPendingMintsQuery(c *gin.Context) (*store.PendingMintFilter, error) {
	var params ListPendingMintsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Contract != "" && !types.IsEthereumAddress(params.Contract) {
		return nil, fmt.Errorf("contract is not a valid address")
	}
	if params.MinRetryCount < 0 {
		return nil, fmt.Errorf("min_retry must not be negative")
	}

	limit, offset, err := page(params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}

	return &store.PendingMintFilter{
		ContractAddress: types.NormalizeAddress(params.Contract),
		MinRetryCount:   params.MinRetryCount,
		Limit:           limit,
		Offset:          offset,
	}, nil
}

// page caps the limit at store.MAX_LIST_LIMIT
func page(limit, offset int) (int, int, error) {
	if limit <= 0 {
		return 0, 0, fmt.Errorf("limit must be positive")
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must not be negative")
	}
	return min(limit, store.MAX_LIST_LIMIT), offset, nil
}
