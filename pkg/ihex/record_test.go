package ihex

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse_ValidRecords(t *testing.T) {
	testCases := []struct {
		name      string
		line      string
		byteCount int
		address   uint16
		recType   RecordType
		data      []byte
		checksum  byte
	}{
		{
			name:      "end of file record",
			line:      ":00000001FF",
			byteCount: 0,
			address:   0x0000,
			recType:   TypeEndOfFile,
			data:      []byte{},
			checksum:  0xFF,
		},
		{
			name:      "sixteen byte data record",
			line:      ":10010000214601360121470136007EFE09D2190140",
			byteCount: 16,
			address:   0x0100,
			recType:   TypeData,
			data: []byte{
				0x21, 0x46, 0x01, 0x36, 0x01, 0x21, 0x47, 0x01,
				0x36, 0x00, 0x7E, 0xFE, 0x09, 0xD2, 0x19, 0x01,
			},
			checksum: 0x40,
		},
		{
			name:      "single data byte",
			line:      ":0100000000FF",
			byteCount: 1,
			address:   0x0000,
			recType:   TypeData,
			data:      []byte{0x00},
			checksum:  0xFF,
		},
		{
			name:      "extended segment address",
			line:      ":020000021200EA",
			byteCount: 2,
			address:   0x0000,
			recType:   TypeExtendedSegmentAddress,
			data:      []byte{0x12, 0x00},
			checksum:  0xEA,
		},
		{
			name:      "extended linear address",
			line:      ":02000004FFFFFC",
			byteCount: 2,
			address:   0x0000,
			recType:   TypeExtendedLinearAddress,
			data:      []byte{0xFF, 0xFF},
			checksum:  0xFC,
		},
		{
			name:      "type without a defined name",
			line:      ":00000003FD",
			byteCount: 0,
			address:   0x0000,
			recType:   RecordType(3),
			data:      []byte{},
			checksum:  0xFD,
		},
		{
			name:      "lowercase hex",
			line:      ":00000001ff",
			byteCount: 0,
			address:   0x0000,
			recType:   TypeEndOfFile,
			data:      []byte{},
			checksum:  0xFF,
		},
		{
			name:      "mixed case hex",
			line:      ":02000004fFFfFc",
			byteCount: 2,
			address:   0x0000,
			recType:   TypeExtendedLinearAddress,
			data:      []byte{0xFF, 0xFF},
			checksum:  0xFC,
		},
		{
			name:      "trailing carriage return and newline",
			line:      ":00000001FF\r\n",
			byteCount: 0,
			address:   0x0000,
			recType:   TypeEndOfFile,
			data:      []byte{},
			checksum:  0xFF,
		},
		{
			name:      "surrounding whitespace",
			line:      "  :0100000000FF\t",
			byteCount: 1,
			address:   0x0000,
			recType:   TypeData,
			data:      []byte{0x00},
			checksum:  0xFF,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := Parse(tc.line)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			if !record.Valid {
				t.Error("Expected Valid to be true for a fully checked record")
			}

			if record.ByteCount != tc.byteCount {
				t.Errorf("ByteCount mismatch: got %d, want %d", record.ByteCount, tc.byteCount)
			}

			if record.Address != tc.address {
				t.Errorf("Address mismatch: got %#04x, want %#04x", record.Address, tc.address)
			}

			if record.Type != tc.recType {
				t.Errorf("Type mismatch: got %d, want %d", record.Type, tc.recType)
			}

			if !bytes.Equal(record.Data, tc.data) {
				t.Errorf("Data mismatch: got %x, want %x", record.Data, tc.data)
			}

			if record.Checksum != tc.checksum {
				t.Errorf("Checksum mismatch: got %#02x, want %#02x", record.Checksum, tc.checksum)
			}

			// Data carries exactly the declared bytes, never header fields
			if len(record.Data) != record.ByteCount {
				t.Errorf("Data length %d does not equal ByteCount %d", len(record.Data), record.ByteCount)
			}
		})
	}
}

func TestParse_ValidationOrder(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		sentinel error
		kind     ErrorKind
	}{
		{
			name:     "empty line",
			line:     "",
			sentinel: ErrTooShort,
			kind:     KindStructure,
		},
		{
			name:     "whitespace only",
			line:     "   \r\n",
			sentinel: ErrTooShort,
			kind:     KindStructure,
		},
		{
			name:     "ten characters is always too short",
			line:     ":000000010",
			sentinel: ErrTooShort,
			kind:     KindStructure,
		},
		{
			name:     "even length reported before missing colon",
			line:     "000000000000",
			sentinel: ErrEvenLength,
			kind:     KindStructure,
		},
		{
			name:     "even length with leading colon",
			line:     ":00000001FF0",
			sentinel: ErrEvenLength,
			kind:     KindStructure,
		},
		{
			name:     "missing colon",
			line:     "0000000000000",
			sentinel: ErrNoColon,
			kind:     KindStructure,
		},
		{
			name:     "declared count larger than content",
			line:     ":0200000100",
			sentinel: ErrCountMismatch,
			kind:     KindStructure,
		},
		{
			name:     "declared count smaller than content",
			line:     ":000000010000FF",
			sentinel: ErrCountMismatch,
			kind:     KindStructure,
		},
		{
			name: "byte count field is not hex",
			line: ":zz00000100",
			kind: KindDecode,
		},
		{
			name: "data region is not hex",
			line: ":00zz0001FF",
			kind: KindDecode,
		},
		{
			name: "checksum mismatch",
			line: ":00000001FE",
			kind: KindChecksum,
		},
		{
			name: "zero checksum on end of file body",
			line: ":0000000100",
			kind: KindChecksum,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := Parse(tc.line)
			if err == nil {
				t.Fatalf("Expected Parse to fail, got record %+v", record)
			}

			if record.Valid {
				t.Error("Failed parse must not produce a valid record")
			}

			if tc.sentinel != nil && !errors.Is(err, tc.sentinel) {
				t.Errorf("Error mismatch: got %v, want %v", err, tc.sentinel)
			}

			var recErr *RecordError
			if !errors.As(err, &recErr) {
				t.Fatalf("Expected a *RecordError, got %T", err)
			}

			if recErr.Kind != tc.kind {
				t.Errorf("Kind mismatch: got %d, want %d", recErr.Kind, tc.kind)
			}
		})
	}
}

func TestParse_ChecksumMessage(t *testing.T) {
	_, err := Parse(":00000001FE")
	if err == nil {
		t.Fatal("Expected checksum failure")
	}

	msg := err.Error()
	if msg != "Checksum does not match: record=254, calculated=255" {
		t.Errorf("Unexpected checksum message: %q", msg)
	}

	// The message carries both values in decimal
	if !strings.Contains(msg, "record=254") || !strings.Contains(msg, "calculated=255") {
		t.Errorf("Checksum message missing decimal values: %q", msg)
	}
}

func TestParse_DecodeErrorWrapsConversion(t *testing.T) {
	_, err := Parse(":zz00000100")
	if err == nil {
		t.Fatal("Expected decode failure")
	}

	var recErr *RecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("Expected a *RecordError, got %T", err)
	}

	if recErr.Kind != KindDecode {
		t.Errorf("Kind mismatch: got %d, want %d", recErr.Kind, KindDecode)
	}

	if recErr.Unwrap() == nil {
		t.Error("Decode error should wrap the underlying conversion error")
	}
}

func TestParse_Idempotent(t *testing.T) {
	line := ":10010000214601360121470136007EFE09D2190140"

	first, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	second, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parsing twice differs: %+v vs %+v", first, second)
	}
}

func TestParse_CaseInsensitive(t *testing.T) {
	upper, err := Parse(":02000004FFFFFC")
	if err != nil {
		t.Fatalf("Parse failed for uppercase: %v", err)
	}

	lower, err := Parse(":02000004fffffc")
	if err != nil {
		t.Fatalf("Parse failed for lowercase: %v", err)
	}

	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("Case changed the decoded record: %+v vs %+v", upper, lower)
	}
}

func TestParse_NeverPanics(t *testing.T) {
	// Hostile inputs exercising every check boundary
	lines := []string{
		"",
		":",
		"::::::::::::",
		":::::::::::::",
		":ff0000010A1",
		":€€€€€€€€€€",
		strings.Repeat(":", 1001),
		":FFλλλλλλλλ",
		"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00",
	}

	for _, line := range lines {
		if record, err := Parse(line); err == nil && !record.Valid {
			t.Errorf("Parse(%q) returned no error but an invalid record", line)
		}
	}
}

func TestRecord_Validate(t *testing.T) {
	t.Run("parsed record passes validation", func(t *testing.T) {
		record, err := Parse(":10010000214601360121470136007EFE09D2190140")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		if err := record.Validate(); err != nil {
			t.Errorf("Valid record failed validation: %v", err)
		}
	})

	t.Run("corrupted checksum fails validation", func(t *testing.T) {
		record, err := Parse(":00000001FF")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		record.Checksum ^= 0xFF

		if err := record.Validate(); err == nil {
			t.Error("Expected validation to fail for corrupted checksum, but it passed")
		}
	})

	t.Run("corrupted data fails validation", func(t *testing.T) {
		record, err := Parse(":0100000000FF")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		record.Data[0] ^= 0xFF

		if err := record.Validate(); err == nil {
			t.Error("Expected validation to fail for corrupted data, but it passed")
		}
	})
}

func TestChecksum(t *testing.T) {
	testCases := []struct {
		name string
		body []byte
		want byte
	}{
		{
			name: "empty body",
			body: []byte{},
			want: 0x00,
		},
		{
			name: "end of file body",
			body: []byte{0x00, 0x00, 0x00, 0x01},
			want: 0xFF,
		},
		{
			name: "sum that is a multiple of 256 yields zero",
			body: []byte{0x80, 0x80},
			want: 0x00,
		},
		{
			name: "single byte",
			body: []byte{0xFF},
			want: 0x01,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.body); got != tc.want {
				t.Errorf("Checksum mismatch: got %#02x, want %#02x", got, tc.want)
			}
		})
	}
}

func TestChecksum_RoundTrip(t *testing.T) {
	// Recomputing the checksum over the decoded fields reproduces the
	// stored checksum byte for every valid record.
	lines := []string{
		":00000001FF",
		":10010000214601360121470136007EFE09D2190140",
		":020000021200EA",
		":02000004FFFFFC",
		":0100000000FF",
	}

	for _, line := range lines {
		record, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", line, err)
		}

		body := []byte{byte(record.ByteCount), byte(record.Address >> 8), byte(record.Address), byte(record.Type)}
		body = append(body, record.Data...)

		if got := Checksum(body); got != record.Checksum {
			t.Errorf("Checksum(%q) mismatch: got %#02x, want %#02x", line, got, record.Checksum)
		}
	}
}

func TestRecordType_String(t *testing.T) {
	testCases := []struct {
		recType RecordType
		want    string
	}{
		{TypeData, "data record"},
		{TypeEndOfFile, "end of file record"},
		{TypeExtendedSegmentAddress, "extended segment address"},
		{TypeExtendedLinearAddress, "extended linear address"},
		{RecordType(3), "Unknown type 3"},
		{RecordType(5), "Unknown type 5"},
		{RecordType(255), "Unknown type 255"},
	}

	for _, tc := range testCases {
		if got := tc.recType.String(); got != tc.want {
			t.Errorf("String mismatch for type %d: got %q, want %q", tc.recType, got, tc.want)
		}
	}
}
