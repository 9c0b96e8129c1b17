package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnauthorized is returned when a non-owner tries to mutate the registry
	ErrUnauthorized = errors.New("unauthorized")
	// ErrFeedNotFound is returned when an asset has no registered feed
	ErrFeedNotFound = errors.New("price feed not found")
	// ErrFeedRead is matched by every FeedReadError
	ErrFeedRead = errors.New("price feed read failed")
	// ErrArithmeticOverflow is returned when a valuation exceeds 256 bits
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)

// FeedReadError describes a feed that could not be read or reported an invalid price
type FeedReadError struct {
	Asset common.Address
	Feed  common.Address
	Err   error
}

func (e *FeedReadError) Error() string {
	return fmt.Sprintf("%s: asset %s feed %s: %v", ErrFeedRead, e.Asset.Hex(), e.Feed.Hex(), e.Err)
}

func (e *FeedReadError) Unwrap() error {
	return e.Err
}

// Is reports ErrFeedRead as a match so callers can test the kind with errors.Is
func (e *FeedReadError) Is(target error) bool {
	return target == ErrFeedRead
}
