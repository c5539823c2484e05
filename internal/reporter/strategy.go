package reporter

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"flightsurety/pkg/domain"
)

// Strategy picks the status a reporter submits.
type Strategy interface {
	Choose(req StatusRequested, reporter domain.Address) domain.StatusCode
}

// Fixed always reports the same code.
type Fixed domain.StatusCode

func (f Fixed) Choose(StatusRequested, domain.Address) domain.StatusCode {
	return domain.StatusCode(f)
}

// Random reports a uniformly chosen known, non-unknown code.
// It is safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom seeds a Random strategy. A zero seed uses a random one.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var reportableCodes = []domain.StatusCode{
	domain.StatusOnTime,
	domain.StatusLateAirline,
	domain.StatusLateWeather,
	domain.StatusLateTechnical,
	domain.StatusLateOther,
}

func (r *Random) Choose(StatusRequested, domain.Address) domain.StatusCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return reportableCodes[r.rng.IntN(len(reportableCodes))]
}

// ParseStrategy maps a CLI name to a strategy: "random", or a numeric code.
func ParseStrategy(name string, seed uint64) (Strategy, error) {
	if name == "random" {
		return NewRandom(seed), nil
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return nil, fmt.Errorf("unknown strategy %q: use random or a status code", name)
	}
	code, err := domain.ParseStatusCode(n)
	if err != nil {
		return nil, err
	}
	if code == domain.StatusUnknown {
		return nil, fmt.Errorf("strategy %q reports an unknown status", name)
	}
	return Fixed(code), nil
}
