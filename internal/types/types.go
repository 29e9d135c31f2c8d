package types

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// StringNilOrEmpty checks if a pointer to a string is nil or empty
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NilIfEmpty returns nil for an empty string and a pointer otherwise
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Float64Ptr converts a float64 to a pointer
func Float64Ptr(f float64) *float64 {
	return &f
}

// IsEthereumAddress checks if a string is a valid Ethereum address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress lowercases a hex address. Invalid input is returned lowercased and trimmed.
func NormalizeAddress(s string) string {
	s = strings.TrimSpace(s)
	if common.IsHexAddress(s) {
		return strings.ToLower(common.HexToAddress(s).Hex())
	}
	return strings.ToLower(s)
}

// NormalizeTxHash lowercases a transaction hash, keeping empty values empty
func NormalizeTxHash(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
