package messages

import "errors"

var (
	ErrFailedToParseYAML = errors.New("messages: failed to parse YAML catalog")
	ErrLoadingCatalog    = errors.New("messages: failed to load catalog")
	ErrInvalidCatalog    = errors.New("messages: invalid catalog")
)
