// Package entropy supplies pseudo-random reporter indices.
//
// The production source mixes the current second, a monotonically increasing
// nonce and a caller-supplied seed through keccak256. The result is
// predictable to anyone who knows those inputs; consumers must not treat it
// as a secure random source.
package entropy

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/holiman/uint256"

	"flightsurety/pkg/domain"
	"flightsurety/pkg/requestcontext"
)

// Source yields an index in [0, domain.IndexRange).
type Source interface {
	Index(ctx context.Context, seed domain.Address) (domain.Index, error)
}

// KeccakSource derives indices as keccak256(beacon ‖ nonce ‖ seed) mod 10.
type KeccakSource struct {
	nonces NonceSource
}

func NewKeccakSource(nonces NonceSource) *KeccakSource {
	return &KeccakSource{nonces: nonces}
}

func (s *KeccakSource) Index(ctx context.Context, seed domain.Address) (domain.Index, error) {
	nonce, err := s.nonces.Next(ctx)
	if err != nil {
		return 0, err
	}
	return Derive(requestcontext.Now(ctx).Unix(), nonce, seed), nil
}

// Derive is the pure index function behind KeccakSource.
func Derive(beacon int64, nonce uint64, seed domain.Address) domain.Index {
	var b, n [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(beacon))
	binary.BigEndian.PutUint64(n[:], nonce)
	digest := domain.Keccak256(b[:], n[:], seed[:])

	v := new(uint256.Int).SetBytes32(digest[:])
	v.Mod(v, uint256.NewInt(domain.IndexRange))
	return domain.Index(v.Uint64())
}

// Sequence replays scripted indices in order, wrapping around at the end.
type Sequence struct {
	mu     sync.Mutex
	values []domain.Index
	pos    int
	seeds  []domain.Address
}

func NewSequence(values ...domain.Index) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Index(_ context.Context, seed domain.Address) (domain.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeds = append(s.seeds, seed)
	if len(s.values) == 0 {
		return 0, nil
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v, nil
}

// Draws returns how many indices have been handed out.
func (s *Sequence) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Seeds returns the seeds passed to Index, in call order.
func (s *Sequence) Seeds() []domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Address, len(s.seeds))
	copy(out, s.seeds)
	return out
}
