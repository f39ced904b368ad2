package mmkv

import "errors"

// Error variables for store access.
var (
	// ErrNoValue reports that a key has no occurrence in the store file.
	ErrNoValue = errors.New("no value found for key")

	// ErrUnrecoverable reports that candidates for a key exist but none
	// survived decoding and validation.
	ErrUnrecoverable = errors.New("no recoverable value for key")

	// ErrKeyNotFound reports a key missing from the record walk.
	ErrKeyNotFound = errors.New("key not found")

	// ErrCorruptHeader reports a store file whose size header does not
	// agree with the file length.
	ErrCorruptHeader = errors.New("corrupt store header")
)
