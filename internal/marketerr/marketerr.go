package marketerr

import "errors"

// Sentinel errors for the catalog and purchase engine. Handlers map each one
// to a distinct HTTP status and machine code; callers match with errors.Is.
var (
	// ErrInvalidArgument covers bad listing input (price or stock <= 0).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound covers both a missing product and a delisted one; the two
	// are intentionally indistinguishable.
	ErrNotFound = errors.New("product not listed or does not exist")
	// ErrUnauthorized means the caller is not the product's seller.
	ErrUnauthorized = errors.New("caller is not the seller")
	// ErrInsufficientStock means the requested quantity exceeds remaining stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidPayment means the attached amount is not exactly price * quantity.
	ErrInvalidPayment = errors.New("payment must exactly match price")
	// ErrSelfPurchase means a seller tried to buy its own listing.
	ErrSelfPurchase = errors.New("seller cannot purchase own product")
	// ErrTransferFailed means the buyer-to-seller value transfer was rejected;
	// the purchase is rolled back.
	ErrTransferFailed = errors.New("value transfer failed")
	// ErrUnsolicitedTransfer means value was pushed at the marketplace outside
	// of a purchase call.
	ErrUnsolicitedTransfer = errors.New("unsolicited transfer rejected")
)
