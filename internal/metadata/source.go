package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/feral-file/ff-ledger-sync/internal/adapter"
)

// SourceKind tags the variant of a classified tokenURI
type SourceKind string

const (
	SourceInlineJSON    SourceKind = "inline_json"
	SourceIPFSReference SourceKind = "ipfs_reference"
	SourceUnparseable   SourceKind = "unparseable"
)

// Source is the classified form of a tokenURI. Only the fields of its Kind are set.
type Source struct {
	Kind SourceKind `json:"kind"`

	// InlineJSON
	Payload []byte `json:"payload,omitempty"`

	// IPFSReference
	CID          string   `json:"cid,omitempty"`
	Path         string   `json:"path,omitempty"`
	CanonicalURL string   `json:"canonicalUrl,omitempty"`
	Fallbacks    []string `json:"fallbacks,omitempty"`

	// Unparseable
	Reason string `json:"reason,omitempty"`
}

var cidPattern = regexp.MustCompile(`^[A-Za-z0-9]{46,}$`)

func unparseable(format string, args ...interface{}) Source {
	return Source{Kind: SourceUnparseable, Reason: fmt.Sprintf(format, args...)}
}

// classify splits a tokenURI into its variant
func classify(tokenURI string, gateways gatewayList, b64 adapter.Base64) Source {
	uri := strings.TrimSpace(tokenURI)
	if uri == "" {
		return unparseable("empty tokenURI")
	}

	lower := strings.ToLower(uri)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return classifyDataURI(uri, b64)
	case strings.HasPrefix(lower, "ipfs://"):
		return classifyIPFSPath(uri[len("ipfs://"):], gateways)
	case strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"):
		return classifyGatewayURL(uri, gateways)
	}

	return unparseable("unsupported scheme")
}

// classifyDataURI handles data:<mediatype>[;base64|;utf8],<payload>
func classifyDataURI(uri string, b64 adapter.Base64) Source {
	header, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return unparseable("data URI without payload separator")
	}

	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	if mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json") {
		return unparseable("unsupported media type %q", mediaType)
	}

	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}

	if isBase64 {
		decoded, err := b64.Decode(payload)
		if err != nil {
			return unparseable("invalid base64 payload: %v", err)
		}
		return Source{Kind: SourceInlineJSON, Payload: decoded}
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return unparseable("invalid percent-encoded payload: %v", err)
	}
	return Source{Kind: SourceInlineJSON, Payload: []byte(decoded)}
}

// classifyIPFSPath handles the part after ipfs:// including the legacy ipfs://ipfs/ form
func classifyIPFSPath(rest string, gateways gatewayList) Source {
	rest = strings.TrimPrefix(rest, "ipfs/")
	rest = stripQuery(rest)
	cid, path, _ := strings.Cut(rest, "/")
	return ipfsReference(cid, path, gateways)
}

// classifyGatewayURL handles http(s) URLs carrying /ipfs/<cid> or a <cid>.ipfs. subdomain
func classifyGatewayURL(uri string, gateways gatewayList) Source {
	parsed, err := url.Parse(uri)
	if err != nil {
		return unparseable("invalid URL: %v", err)
	}

	if _, after, ok := strings.Cut(parsed.Path, "/ipfs/"); ok {
		cid, path, _ := strings.Cut(after, "/")
		return ipfsReference(cid, path, gateways)
	}

	if sub, _, ok := strings.Cut(parsed.Hostname(), ".ipfs."); ok {
		return ipfsReference(sub, strings.TrimPrefix(parsed.Path, "/"), gateways)
	}

	return unparseable("URL is not an IPFS reference")
}

func ipfsReference(cid, path string, gateways gatewayList) Source {
	if !cidPattern.MatchString(cid) {
		return unparseable("invalid CID %q", cid)
	}
	path = strings.Trim(path, "/")

	return Source{
		Kind:         SourceIPFSReference,
		CID:          cid,
		Path:         path,
		CanonicalURL: gateways.preferred.url(cid, path),
		Fallbacks:    gateways.fallbackURLs(cid, path),
	}
}

func stripQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}

type gateway string

func (g gateway) url(cid, path string) string {
	u := strings.TrimRight(string(g), "/") + "/ipfs/" + cid
	if path != "" {
		u += "/" + path
	}
	return u
}

type gatewayList struct {
	preferred gateway
	fallbacks []gateway
}

func newGatewayList(preferred string, fallbacks []string) gatewayList {
	list := gatewayList{preferred: gateway(preferred)}
	for _, f := range fallbacks {
		if strings.TrimRight(f, "/") == strings.TrimRight(preferred, "/") {
			continue
		}
		list.fallbacks = append(list.fallbacks, gateway(f))
	}
	return list
}

func (l gatewayList) fallbackURLs(cid, path string) []string {
	urls := make([]string, 0, len(l.fallbacks))
	for _, g := range l.fallbacks {
		urls = append(urls, g.url(cid, path))
	}
	return urls
}
