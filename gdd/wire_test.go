package gdd

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestMarshalBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"text", []byte("deviation deduplication")},
		{"odd_length", []byte{0x10, 0x20, 0x30}},
		{"repetitive", bytes.Repeat([]byte{0x42}, 64)},
	}
	for _, family := range []Family{SevenFour, FifteenEleven} {
		for _, test := range tests {
			t.Run(family.String()+"/"+test.name, func(t *testing.T) {
				compressed, err := Compress(test.data, family)
				if err != nil {
					t.Fatalf("expected no error found: %v", err)
				}

				bs, err := compressed.MarshalBinary()
				if err != nil {
					t.Fatalf("expected no error found: %v", err)
				}

				var restored Compressed
				if err := restored.UnmarshalBinary(bs); err != nil {
					t.Fatalf("expected no error found: %v", err)
				}

				data, err := Decompress(&restored)
				if err != nil {
					t.Fatalf("expected no error found: %v", err)
				}
				if !bytes.Equal(data, test.data) {
					t.Fatalf("expected %v but found %v", test.data, data)
				}

				// equal streams marshal to equal bytes
				bs2, err := restored.MarshalBinary()
				if err != nil {
					t.Fatalf("expected no error found: %v", err)
				}
				if !bytes.Equal(bs, bs2) {
					t.Fatalf("expected identical wire bytes after a round trip")
				}
			})
		}
	}
}

func TestUnmarshalBinaryRejects(t *testing.T) {
	compressed, err := Compress([]byte("wire"), SevenFour)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}
	valid, err := compressed.MarshalBinary()
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated_header", valid[:5]},
		{"bad_magic", append([]byte("XDD1"), valid[4:]...)},
		{"bad_family", func() []byte {
			bs := append([]byte{}, valid...)
			bs[4] = 9
			return bs
		}()},
		{"truncated_body", valid[:len(valid)-1]},
		{"block_count_exceeds_payload", func() []byte {
			bs := append([]byte{}, valid[:10]...)
			bs[6], bs[7], bs[8], bs[9] = 0xff, 0xff, 0xff, 0xff
			return bs
		}()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var c Compressed
			if err := c.UnmarshalBinary(test.data); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := []byte("json form of a compressed stream")
	compressed, err := Compress(original, FifteenEleven)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}

	bs, err := json.Marshal(compressed)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}

	var restored Compressed
	if err := json.Unmarshal(bs, &restored); err != nil {
		t.Fatalf("expected no error found: %v", err)
	}

	data, err := Decompress(&restored)
	if err != nil {
		t.Fatalf("expected no error found: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Fatalf("expected %v but found %v", original, data)
	}
	if restored.Padded != compressed.Padded || restored.Family != compressed.Family {
		t.Fatalf("expected flags to survive the round trip")
	}
}

func TestJSONRejectsAmbiguousBase(t *testing.T) {
	var c Compressed
	err := json.Unmarshal([]byte(`{"Family":"hamming(7,4)","Bases":[{}],"Deviations":[[0,0,0,0]],"Padded":false}`), &c)
	if !errors.Is(err, ErrCorrupted) {
		t.Fatalf("expected ErrCorrupted found: %v", err)
	}
}
