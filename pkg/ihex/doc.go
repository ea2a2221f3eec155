// Package ihex parses and validates single lines of the Intel HEX format.
//
// The package decodes one text record at a time and enforces the format's
// structural rules; it never assembles records into a memory image and never
// interprets extended-addressing offsets.
//
// # Record Format
//
// One record per line, ASCII hex, case-insensitive:
//
//	:BBAAAATTDD...DDCC
//
// Fields:
//   - BB: byte count, the declared number of data bytes (2 hex digits)
//   - AAAA: 16-bit address, big-endian (4 hex digits)
//   - TT: record type (2 hex digits)
//   - DD...DD: exactly BB data bytes (2 hex digits each)
//   - CC: checksum (2 hex digits)
//
// The shortest legal record is 11 characters (byte count zero).
//
// # Checksum Calculation
//
// The checksum is the two's complement of the 8-bit truncated sum over the
// byte-count, address-high, address-low, type and data bytes, in that order:
//
//	checksum = (256 - (sum mod 256)) mod 256
//
// Every addition and the final result are masked to 8 bits, so the checksum
// is always in [0, 255].
//
// # Usage
//
//	record, err := ihex.Parse(":00000001FF")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(record.Type) // "end of file record"
//
// # Error Handling
//
// Parse reports failures as *RecordError values classified by kind:
// structural problems (too short, even length, missing colon, byte count
// not matching the content), hex decode failures (which wrap the underlying
// conversion error), and checksum mismatches (whose message carries both the
// recorded and the calculated value). Checks run in that order and the first
// failure wins. The structural failures are sentinel values matchable with
// errors.Is.
//
// Parse is a pure function; Record values are plain data and safe to share
// between goroutines.
package ihex
