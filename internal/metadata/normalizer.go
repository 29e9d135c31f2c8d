package metadata

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gowebpki/jcs"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
)

// Known attribute keys, matched case-insensitively
const (
	ATTRIBUTE_CATEGORY  = "category"
	ATTRIBUTE_LOCATION  = "location"
	ATTRIBUTE_LATITUDE  = "latitude"
	ATTRIBUTE_LONGITUDE = "longitude"
)

// Attribute is a single trait of a metadata document
type Attribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// Record is the normalized form of a metadata document
type Record struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageURL    string          `json:"imageUrl"`
	Attributes  []Attribute     `json:"attributes"`
	Category    *string         `json:"category"`
	Location    *string         `json:"location"`
	Latitude    *float64        `json:"latitude"`
	Longitude   *float64        `json:"longitude"`
	Raw         json.RawMessage `json:"raw"`
	Hash        string          `json:"hash"`
}

// FetchRequiredError carries the IPFS reference a caller has to fetch before normalizing
type FetchRequiredError struct {
	Reference Source
}

func (e *FetchRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrReferenceNeedsFetch.Error(), e.Reference.CanonicalURL)
}

// Is makes errors.Is(err, domain.ErrReferenceNeedsFetch) match
func (e *FetchRequiredError) Is(target error) bool {
	return target == domain.ErrReferenceNeedsFetch
}

// Normalizer classifies tokenURIs and turns metadata documents into records.
// Implementations hold no mutable state.
//
//go:generate mockgen -source=normalizer.go -destination=../mocks/normalizer.go -package=mocks -mock_names=Normalizer=MockNormalizer
type Normalizer interface {
	// Classify splits a tokenURI into InlineJSON, IPFSReference or Unparseable
	Classify(tokenURI string) Source

	// Normalize builds a record from an inline tokenURI.
	// IPFS references return a *FetchRequiredError.
	Normalize(tokenURI string) (*Record, error)

	// NormalizeDocument builds a record from a decoded metadata document
	NormalizeDocument(doc []byte) (*Record, error)
}

type normalizer struct {
	gateways gatewayList
	base64   adapter.Base64
}

// NewNormalizer creates a normalizer. IPFS references resolve to preferredGateway,
// with fallbackGateways listed in order.
func NewNormalizer(preferredGateway string, fallbackGateways []string, b64 adapter.Base64) Normalizer {
	if preferredGateway == "" {
		preferredGateway = domain.DEFAULT_IPFS_GATEWAY
	}
	return &normalizer{
		gateways: newGatewayList(preferredGateway, fallbackGateways),
		base64:   b64,
	}
}

func (n *normalizer) Classify(tokenURI string) Source {
	return classify(tokenURI, n.gateways, n.base64)
}

func (n *normalizer) Normalize(tokenURI string) (*Record, error) {
	source := n.Classify(tokenURI)
	switch source.Kind {
	case SourceInlineJSON:
		return n.NormalizeDocument(source.Payload)
	case SourceIPFSReference:
		return nil, &FetchRequiredError{Reference: source}
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnparseableMetadata, source.Reason)
	}
}

func (n *normalizer) NormalizeDocument(doc []byte) (*Record, error) {
	doc = bytes.TrimSpace(doc)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnparseableMetadata, describePayload(doc, err))
	}

	canonical, err := jcs.Transform(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to canonicalize document: %v", domain.ErrUnparseableMetadata, err)
	}
	sum := sha256.Sum256(canonical)

	record := &Record{
		Title:       stringField(fields, "name"),
		Description: stringField(fields, "description"),
		ImageURL:    n.canonicalImage(stringField(fields, "image")),
		Attributes:  []Attribute{},
		Raw:         append(json.RawMessage(nil), doc...),
		Hash:        hex.EncodeToString(sum[:]),
	}

	attributes, err := parseAttributes(fields["attributes"])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparseableMetadata, err)
	}
	record.Attributes = attributes
	applyKnownAttributes(record, attributes)

	return record, nil
}

// canonicalImage rewrites IPFS image references to the preferred gateway
func (n *normalizer) canonicalImage(image string) string {
	if image == "" {
		return ""
	}
	lower := strings.ToLower(image)
	if !strings.HasPrefix(lower, "ipfs://") && !strings.Contains(lower, "/ipfs/") {
		return image
	}
	source := classify(image, n.gateways, n.base64)
	if source.Kind != SourceIPFSReference {
		return image
	}
	return source.CanonicalURL
}

// describePayload names what a non-JSON payload looks like
func describePayload(doc []byte, err error) string {
	if len(doc) == 0 {
		return "empty document"
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("document is a JSON %s, not an object", typeErr.Value)
	}
	mime := mimetype.Detect(doc)
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("invalid JSON at offset %d (detected %s)", syntaxErr.Offset, mime.String())
	}
	return fmt.Sprintf("invalid JSON (detected %s): %v", mime.String(), err)
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// parseAttributes keeps entries in document order. Entries that are not objects are skipped.
func parseAttributes(raw json.RawMessage) ([]Attribute, error) {
	attributes := []Attribute{}
	if len(raw) == 0 || string(raw) == "null" {
		return attributes, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("attributes must be an array: %w", err)
	}

	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			continue
		}

		var value interface{}
		if v, ok := fields["value"]; ok {
			decoder := json.NewDecoder(bytes.NewReader(v))
			decoder.UseNumber()
			if err := decoder.Decode(&value); err != nil {
				continue
			}
		}

		attributes = append(attributes, Attribute{
			TraitType: stringField(fields, "trait_type"),
			Value:     value,
		})
	}

	return attributes, nil
}

// applyKnownAttributes fills the typed fields; the first occurrence of each key wins
func applyKnownAttributes(record *Record, attributes []Attribute) {
	seen := make(map[string]bool, 4)
	for _, attr := range attributes {
		key := strings.ToLower(strings.TrimSpace(attr.TraitType))
		if seen[key] {
			continue
		}

		switch key {
		case ATTRIBUTE_CATEGORY:
			record.Category = textValue(attr.Value)
		case ATTRIBUTE_LOCATION:
			record.Location = textValue(attr.Value)
		case ATTRIBUTE_LATITUDE:
			record.Latitude = coordinate(attr.Value, 90)
		case ATTRIBUTE_LONGITUDE:
			record.Longitude = coordinate(attr.Value, 180)
		default:
			continue
		}
		seen[key] = true
	}
}

func textValue(v interface{}) *string {
	var s string
	switch value := v.(type) {
	case string:
		s = strings.TrimSpace(value)
	case json.Number:
		s = value.String()
	default:
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// coordinate parses a number or numeric string bounded by [-limit, limit]
func coordinate(v interface{}, limit float64) *float64 {
	var text string
	switch value := v.(type) {
	case json.Number:
		text = value.String()
	case string:
		text = strings.TrimSpace(value)
	default:
		return nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f < -limit || f > limit {
		return nil
	}
	return &f
}
