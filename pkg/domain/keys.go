package domain

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	dErrors "flightsurety/pkg/domain-errors"
)

// IndexRange bounds reporter indices: valid indices are [0, IndexRange).
const IndexRange = 10

// Index correlates a status request with the reporters eligible to answer it.
type Index uint8

func (i Index) Valid() bool {
	return i < IndexRange
}

// ParseIndex validates an index from external input.
func ParseIndex(n int) (Index, error) {
	if n < 0 || n >= IndexRange {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "index must be in [0,10)")
	}
	return Index(n), nil
}

// Hash is a 32-byte keccak256 digest.
type Hash [32]byte

// Keccak256 hashes the concatenation of parts with legacy Keccak-256.
func Keccak256(parts ...[]byte) Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out Hash
	h.Sum(out[:0])
	return out
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func parseHash(s string) (Hash, error) {
	var h Hash
	body, ok := strings.CutPrefix(strings.TrimSpace(s), "0x")
	if !ok || len(body) != 64 {
		return h, dErrors.New(dErrors.CodeInvalidInput, "key must be 0x followed by 64 hex digits")
	}
	if _, err := hex.Decode(h[:], []byte(body)); err != nil {
		return Hash{}, dErrors.New(dErrors.CodeInvalidInput, "key must be hex encoded")
	}
	return h, nil
}

// FlightKey uniquely identifies a flight: keccak256(airline ‖ number ‖ timestamp).
type FlightKey Hash

// NewFlightKey derives the key for a flight scheduled at timestamp (unix seconds).
func NewFlightKey(airline Address, number string, timestamp int64) FlightKey {
	return FlightKey(Keccak256(airline[:], []byte(number), uint64Bytes(timestamp)))
}

// ParseFlightKey parses the 0x-prefixed hex form.
func ParseFlightKey(s string) (FlightKey, error) {
	h, err := parseHash(s)
	return FlightKey(h), err
}

func (k FlightKey) String() string {
	return Hash(k).String()
}

func (k FlightKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *FlightKey) UnmarshalText(text []byte) error {
	parsed, err := ParseFlightKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// RequestKey identifies an oracle request: keccak256(index ‖ airline ‖ flight ‖ timestamp).
type RequestKey Hash

// NewRequestKey derives the request key for an index and flight identity.
func NewRequestKey(index Index, airline Address, flight string, timestamp int64) RequestKey {
	return RequestKey(Keccak256([]byte{byte(index)}, airline[:], []byte(flight), uint64Bytes(timestamp)))
}

func (k RequestKey) String() string {
	return Hash(k).String()
}

func (k RequestKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *RequestKey) UnmarshalText(text []byte) error {
	h, err := parseHash(string(text))
	if err != nil {
		return err
	}
	*k = RequestKey(h)
	return nil
}

// ParseRequestKey parses the 0x-prefixed hex form.
func ParseRequestKey(s string) (RequestKey, error) {
	h, err := parseHash(s)
	return RequestKey(h), err
}

func uint64Bytes(v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return b[:]
}
