package handler

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// AddFeedAuth is what the owner signs to register Feed for Asset.
//
// Domain and Owner bind the signature to one deployment and one registry,
// Nonce makes it single use and Deadline bounds how long it can be submitted.
type AddFeedAuth struct {
	Domain   string
	Owner    common.Address
	Asset    common.Address
	Feed     common.Address
	Nonce    uint64
	Deadline int64
}

// Message returns the text signed as an EIP-191 personal message
func (a AddFeedAuth) Message() string {
	return fmt.Sprintf("addPriceFeed:%s:%s:%s:%s:%d:%d",
		a.Domain,
		strings.ToLower(a.Owner.Hex()),
		strings.ToLower(a.Asset.Hex()),
		strings.ToLower(a.Feed.Hex()),
		a.Nonce,
		a.Deadline)
}

// recoverSigner returns the address that produced an EIP-191 personal signature over msg
func recoverSigner(msg string, sigHex string) (common.Address, error) {
	sig := common.FromHex(sigHex)
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", errInvalidSignature, crypto.SignatureLength, len(sig))
	}

	// wallets encode the recovery id as 27/28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(msg)), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", errInvalidSignature, err)
	}

	return crypto.PubkeyToAddress(*pub), nil
}
