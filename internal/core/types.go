package core

// Parts is a compact token split into its three segments and decoded.
type Parts struct {
	Header    map[string]any
	Payload   map[string]any
	Signature []byte

	// SignedContent is the exact "header.payload" span as it was transmitted.
	SignedContent string

	HeaderSegment    string
	PayloadSegment   string
	SignatureSegment string
	Raw              string
}

const (
	// MaxTokenLength bounds the size of a compact token accepted by Parse.
	MaxTokenLength = 16384

	// SignatureEncodingHeader is the header parameter naming a non-default
	// signature segment encoding.
	SignatureEncodingHeader = "sigenc"
)
