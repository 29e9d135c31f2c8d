package ethereum

var (
	ERC721ABI                    = erc721ABI
	TransferEventSignature       = transferEventSignature
	QuestCompletedEventSignature = questCompletedEventSignature
	ZeroAddressTopic             = zeroAddressTopic
)
