package quote

import "errors"

var (
	// ErrInvalidSKU is returned when a SKU fails validation.
	ErrInvalidSKU = errors.New("invalid sku")
	// ErrBatchTooLarge is returned when a batch exceeds the configured size.
	ErrBatchTooLarge = errors.New("too many skus in batch")
	// ErrEmptyBatch is returned when a batch contains no SKUs.
	ErrEmptyBatch = errors.New("batch must contain at least one sku")
)
