package metadata

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
	"github.com/feral-file/ff-ledger-sync/internal/domain"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func newTestNormalizer() Normalizer {
	return NewNormalizer("https://gateway.example", []string{"https://fallback-a.example", "https://fallback-b.example"}, adapter.NewBase64())
}

func TestClassify(t *testing.T) {
	doc := `{"name":"Shrine"}`
	n := newTestNormalizer()

	tests := []struct {
		name         string
		uri          string
		wantKind     SourceKind
		wantPayload  string
		wantCID      string
		wantPath     string
		wantCanonial string
	}{
		{
			name:        "base64 data URI",
			uri:         "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(doc)),
			wantKind:    SourceInlineJSON,
			wantPayload: doc,
		},
		{
			name:        "unpadded base64 data URI",
			uri:         "data:application/json;base64," + base64.RawStdEncoding.EncodeToString([]byte(doc)),
			wantKind:    SourceInlineJSON,
			wantPayload: doc,
		},
		{
			name:        "utf8 data URI",
			uri:         "data:application/json;utf8," + doc,
			wantKind:    SourceInlineJSON,
			wantPayload: doc,
		},
		{
			name:        "percent-encoded data URI",
			uri:         "data:application/json," + url.PathEscape(doc),
			wantKind:    SourceInlineJSON,
			wantPayload: doc,
		},
		{
			name:         "ipfs scheme",
			uri:          "ipfs://" + testCID,
			wantKind:     SourceIPFSReference,
			wantCID:      testCID,
			wantCanonial: "https://gateway.example/ipfs/" + testCID,
		},
		{
			name:         "ipfs scheme with path",
			uri:          "ipfs://" + testCID + "/metadata/1.json",
			wantKind:     SourceIPFSReference,
			wantCID:      testCID,
			wantPath:     "metadata/1.json",
			wantCanonial: "https://gateway.example/ipfs/" + testCID + "/metadata/1.json",
		},
		{
			name:         "legacy ipfs://ipfs form",
			uri:          "ipfs://ipfs/" + testCID,
			wantKind:     SourceIPFSReference,
			wantCID:      testCID,
			wantCanonial: "https://gateway.example/ipfs/" + testCID,
		},
		{
			name:         "foreign gateway URL",
			uri:          "https://some-gateway.io/ipfs/" + testCID + "/1?filename=1.json",
			wantKind:     SourceIPFSReference,
			wantCID:      testCID,
			wantPath:     "1",
			wantCanonial: "https://gateway.example/ipfs/" + testCID + "/1",
		},
		{
			name:     "plain https URL",
			uri:      "https://example.com/token/1.json",
			wantKind: SourceUnparseable,
		},
		{
			name:     "empty",
			uri:      "  ",
			wantKind: SourceUnparseable,
		},
		{
			name:     "unsupported media type",
			uri:      "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=",
			wantKind: SourceUnparseable,
		},
		{
			name:     "missing separator",
			uri:      "data:application/json;base64",
			wantKind: SourceUnparseable,
		},
		{
			name:     "invalid CID",
			uri:      "ipfs://not-a-cid",
			wantKind: SourceUnparseable,
		},
		{
			name:     "arweave",
			uri:      "ar://abc",
			wantKind: SourceUnparseable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := n.Classify(tt.uri)
			assert.Equal(t, tt.wantKind, source.Kind)

			switch tt.wantKind {
			case SourceInlineJSON:
				assert.Equal(t, tt.wantPayload, string(source.Payload))
			case SourceIPFSReference:
				assert.Equal(t, tt.wantCID, source.CID)
				assert.Equal(t, tt.wantPath, source.Path)
				assert.Equal(t, tt.wantCanonial, source.CanonicalURL)
			case SourceUnparseable:
				assert.NotEmpty(t, source.Reason)
			}
		})
	}
}

func TestClassify_FallbacksInOrder(t *testing.T) {
	n := NewNormalizer("https://ipfs.io", append([]string{"https://ipfs.io"}, domain.IPFS_FALLBACK_GATEWAYS...), adapter.NewBase64())

	source := n.Classify("ipfs://" + testCID + "/0")
	require.Equal(t, SourceIPFSReference, source.Kind)
	assert.Equal(t, "https://ipfs.io/ipfs/"+testCID+"/0", source.CanonicalURL)
	assert.Equal(t, []string{
		"https://cloudflare-ipfs.com/ipfs/" + testCID + "/0",
		"https://nftstorage.link/ipfs/" + testCID + "/0",
		"https://gateway.pinata.cloud/ipfs/" + testCID + "/0",
		"https://dweb.link/ipfs/" + testCID + "/0",
	}, source.Fallbacks)
}

func TestNormalize_ReferenceNeedsFetch(t *testing.T) {
	n := newTestNormalizer()

	record, err := n.Normalize("ipfs://" + testCID)
	assert.Nil(t, record)
	require.ErrorIs(t, err, domain.ErrReferenceNeedsFetch)

	var fetchErr *FetchRequiredError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, testCID, fetchErr.Reference.CID)
}

func TestNormalize_Unparseable(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		uri  string
	}{
		{"plain URL", "https://example.com/1"},
		{"malformed JSON", "data:application/json;utf8,{\"name\":"},
		{"JSON array", "data:application/json;utf8,[1,2]"},
		{"bad base64", "data:application/json;base64,@@@"},
		{"html payload", "data:application/json;utf8,<html><body>gone</body></html>"},
		{"attributes not an array", `data:application/json;utf8,{"attributes":{"a":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := n.Normalize(tt.uri)
			assert.Nil(t, record)
			assert.ErrorIs(t, err, domain.ErrUnparseableMetadata)
		})
	}
}

func TestNormalizeDocument(t *testing.T) {
	n := newTestNormalizer()
	doc := []byte(`{
		"name": "Morning at the shrine",
		"description": "Taken at dawn",
		"image": "ipfs://` + testCID + `/photo.jpg",
		"attributes": [
			{"trait_type": "Category", "value": "Temple"},
			{"trait_type": "location", "value": "Kyoto"},
			{"trait_type": "Latitude", "value": 35.0116},
			{"trait_type": "LONGITUDE", "value": "135.7681"},
			{"trait_type": "Category", "value": "Garden"},
			{"trait_type": "Edition", "value": 3}
		]
	}`)

	record, err := n.NormalizeDocument(doc)
	require.NoError(t, err)

	assert.Equal(t, "Morning at the shrine", record.Title)
	assert.Equal(t, "Taken at dawn", record.Description)
	assert.Equal(t, "https://gateway.example/ipfs/"+testCID+"/photo.jpg", record.ImageURL)
	require.NotNil(t, record.Category)
	assert.Equal(t, "Temple", *record.Category)
	require.NotNil(t, record.Location)
	assert.Equal(t, "Kyoto", *record.Location)
	require.NotNil(t, record.Latitude)
	assert.InDelta(t, 35.0116, *record.Latitude, 1e-9)
	require.NotNil(t, record.Longitude)
	assert.InDelta(t, 135.7681, *record.Longitude, 1e-9)

	require.Len(t, record.Attributes, 6)
	assert.Equal(t, "Category", record.Attributes[0].TraitType)
	assert.Equal(t, "Edition", record.Attributes[5].TraitType)
	assert.Equal(t, json.Number("3"), record.Attributes[5].Value)

	assert.JSONEq(t, string(doc), string(record.Raw))
	assert.Len(t, record.Hash, 64)
}

func TestNormalizeDocument_Coordinates(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name    string
		lat     string
		long    string
		wantLat *float64
		wantLng *float64
	}{
		{"numbers", `10.5`, `-20.25`, float64Ptr(10.5), float64Ptr(-20.25)},
		{"numeric strings", `" 10.5 "`, `"-20.25"`, float64Ptr(10.5), float64Ptr(-20.25)},
		{"non numeric", `"north"`, `"east"`, nil, nil},
		{"NaN and Inf strings", `"NaN"`, `"Inf"`, nil, nil},
		{"out of range", `90.0001`, `-180.5`, nil, nil},
		{"bounds", `-90`, `180`, float64Ptr(-90), float64Ptr(180)},
		{"booleans", `true`, `false`, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"attributes":[{"trait_type":"Latitude","value":` + tt.lat + `},{"trait_type":"Longitude","value":` + tt.long + `}]}`
			record, err := n.NormalizeDocument([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLat, record.Latitude)
			assert.Equal(t, tt.wantLng, record.Longitude)
		})
	}
}

func TestNormalizeDocument_FirstOccurrenceWinsEvenWhenInvalid(t *testing.T) {
	n := newTestNormalizer()
	doc := `{"attributes":[{"trait_type":"latitude","value":"bad"},{"trait_type":"Latitude","value":12}]}`

	record, err := n.NormalizeDocument([]byte(doc))
	require.NoError(t, err)
	assert.Nil(t, record.Latitude)
}

func TestNormalizeDocument_MissingFields(t *testing.T) {
	n := newTestNormalizer()

	record, err := n.NormalizeDocument([]byte(`{"name": 7}`))
	require.NoError(t, err)
	assert.Empty(t, record.Title)
	assert.Empty(t, record.ImageURL)
	assert.NotNil(t, record.Attributes)
	assert.Empty(t, record.Attributes)
	assert.Nil(t, record.Category)
}

func TestNormalizeDocument_NonIPFSImageKept(t *testing.T) {
	n := newTestNormalizer()

	record, err := n.NormalizeDocument([]byte(`{"image":"https://cdn.example.com/a.png"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", record.ImageURL)
}

func TestNormalize_Pure(t *testing.T) {
	doc := `{"name":"A","attributes":[{"trait_type":"Category","value":"Park"},{"trait_type":"extra","value":{"b":1,"a":[1,2]}}]}`
	uri := "data:application/json;base64," + base64.StdEncoding.EncodeToString([]byte(doc))

	first, err := newTestNormalizer().Normalize(uri)
	require.NoError(t, err)
	second, err := newTestNormalizer().Normalize(uri)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestNormalizeDocument_HashIgnoresFormatting(t *testing.T) {
	n := newTestNormalizer()

	a, err := n.NormalizeDocument([]byte(`{"name":"A","description":"B"}`))
	require.NoError(t, err)
	b, err := n.NormalizeDocument([]byte("{\n  \"description\": \"B\",\n  \"name\": \"A\"\n}"))
	require.NoError(t, err)
	c, err := n.NormalizeDocument([]byte(`{"name":"A","description":"C"}`))
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func float64Ptr(f float64) *float64 {
	return &f
}
