package domain

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io"

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// Event subjects published on JetStream
	SUBJECT_NFT_SYNCED     = "sync.nft.synced"
	SUBJECT_QUEST_CREDITED = "sync.quest.credited"
)

// IPFS_FALLBACK_GATEWAYS are tried in order by clients when the preferred gateway fails
var IPFS_FALLBACK_GATEWAYS = []string{
	"https://cloudflare-ipfs.com",
	"https://nftstorage.link",
	"https://gateway.pinata.cloud",
	"https://dweb.link",
}
