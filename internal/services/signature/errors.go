package signature

import "errors"

// Service errors
var (
	ErrMalformedSignature    = errors.New("malformed signature")
	ErrInvalidSignature      = errors.New("signature does not match digest")
	ErrInvalidSignatureOrder = errors.New("signatures not sorted by signer address")
	ErrUnauthorizedSigner    = errors.New("signer is not authorized")
	ErrThresholdNotMet       = errors.New("signature threshold not met")
)
