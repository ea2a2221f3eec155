package ihex

import "fmt"

// ErrorKind classifies why a record failed to parse.
type ErrorKind int

// Parse failure classes, ordered by where they occur in the pipeline:
// structural checks run first, then field decoding, then checksum
// verification.
const (
	KindStructure ErrorKind = iota + 1
	KindDecode
	KindChecksum
)

// Structural parse failures. Parse returns these sentinel values directly,
// so callers can match them with errors.Is.
var (
	ErrTooShort      = &RecordError{Kind: KindStructure, Message: "Hex record too short (minimum length 11 bytes)"}
	ErrEvenLength    = &RecordError{Kind: KindStructure, Message: "Hex record length must be an odd number"}
	ErrNoColon       = &RecordError{Kind: KindStructure, Message: "Hex record must begin with a colon"}
	ErrCountMismatch = &RecordError{Kind: KindStructure, Message: "Hex record data count does not match actual content"}
)

// RecordError describes why a line failed to parse as a record.
type RecordError struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying conversion error for decode failures
}

// Error returns the failure description.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying conversion error, if any.
func (e *RecordError) Unwrap() error {
	return e.Err
}

func decodeError(err error) *RecordError {
	return &RecordError{Kind: KindDecode, Message: "Hex record contains invalid hex digits", Err: err}
}

func checksumError(record, calculated byte) *RecordError {
	return &RecordError{
		Kind:    KindChecksum,
		Message: fmt.Sprintf("Checksum does not match: record=%d, calculated=%d", record, calculated),
	}
}
