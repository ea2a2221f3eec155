package ihex

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// RecordType is the 8-bit type tag of an Intel HEX record.
type RecordType int

// Record types with a defined display name. Any other 8-bit value decodes
// fine and is displayed through the String fallback.
const (
	TypeData                   RecordType = 0
	TypeEndOfFile              RecordType = 1
	TypeExtendedSegmentAddress RecordType = 2
	TypeExtendedLinearAddress  RecordType = 4
)

// String returns the human-readable name of the record type.
func (t RecordType) String() string {
	switch t {
	case TypeData:
		return "data record"
	case TypeEndOfFile:
		return "end of file record"
	case TypeExtendedSegmentAddress:
		return "extended segment address"
	case TypeExtendedLinearAddress:
		return "extended linear address"
	default:
		return fmt.Sprintf("Unknown type %d", int(t))
	}
}

// Record is a single decoded Intel HEX record.
type Record struct {
	ByteCount int        // declared number of data bytes
	Address   uint16     // 16-bit load offset (big-endian on the wire)
	Type      RecordType // record type tag
	Data      []byte     // exactly ByteCount data bytes, header excluded
	Checksum  byte       // checksum byte as read from the line
	Valid     bool       // true once every check has passed
}

// MinLength is the shortest legal record in characters: one colon plus two
// hex digits each for byte count, address high, address low, type and
// checksum (1 + 2*5).
const MinLength = 11

// Parse decodes one line of Intel HEX text into a Record.
//
// Surrounding whitespace is stripped before any check. Validation runs in a
// fixed order, the first failure winning: minimum length, odd character
// count, leading colon, declared byte count against actual content, hex
// field decoding, checksum verification. Failures are returned as a
// *RecordError and the zero Record; a Record is only produced alongside a
// nil error.
//
// Parse is a pure function of its input and never panics.
func Parse(line string) (Record, error) {
	line = strings.TrimSpace(line)

	if len(line) < MinLength {
		return Record{}, ErrTooShort
	}
	if len(line)%2 == 0 {
		return Record{}, ErrEvenLength
	}
	if line[0] != ':' {
		return Record{}, ErrNoColon
	}

	count, err := strconv.ParseUint(line[1:3], 16, 8)
	if err != nil {
		return Record{}, decodeError(err)
	}
	if len(line) != MinLength+2*int(count) {
		return Record{}, ErrCountMismatch
	}

	body, err := hex.DecodeString(line[1:])
	if err != nil {
		return Record{}, decodeError(err)
	}

	r := Record{
		ByteCount: int(body[0]),
		Address:   binary.BigEndian.Uint16(body[1:3]),
		Type:      RecordType(body[3]),
		Data:      body[4 : len(body)-1],
		Checksum:  body[len(body)-1],
	}

	if sum := Checksum(body[:len(body)-1]); sum != r.Checksum {
		return Record{}, checksumError(r.Checksum, sum)
	}

	r.Valid = true
	return r, nil
}

// Checksum computes the Intel HEX checksum of body: the two's complement of
// the 8-bit truncated sum of the byte-count, address, type and data bytes.
// The result is always in [0, 255].
func Checksum(body []byte) byte {
	sum := 0
	for _, b := range body {
		sum = (sum + int(b)) % 256
	}
	return byte((256 - sum) % 256)
}

// Validate recomputes the checksum from the decoded fields and compares it
// against the stored checksum byte.
func (r *Record) Validate() error {
	body := make([]byte, 0, 4+len(r.Data))
	body = append(body, byte(r.ByteCount), byte(r.Address>>8), byte(r.Address), byte(r.Type))
	body = append(body, r.Data...)

	if sum := Checksum(body); sum != r.Checksum {
		return checksumError(r.Checksum, sum)
	}

	return nil
}
