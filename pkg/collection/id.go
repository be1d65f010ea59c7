package collection

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDGenerator mints entity ids
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string { return f() }

const (
	base36      = "0123456789abcdefghijklmnopqrstuvwxyz"
	randomChars = 9
)

// TimeRandomIDs produces "<unix-ms>_<9 base36 chars>". The random part keeps
// ids distinct within one millisecond.
type TimeRandomIDs struct {
	Now func() time.Time
}

func (g TimeRandomIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return strconv.FormatInt(now().UnixMilli(), 10) + "_" + RandomBase36(randomChars)
}

// UUIDs produces random version 4 UUID strings
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.New().String()
}

// NewIDGenerator returns the generator for a configured strategy name
// ("uuid" or anything else for time+random).
func NewIDGenerator(strategy string) IDGenerator {
	if strategy == "uuid" {
		return UUIDs{}
	}
	return TimeRandomIDs{}
}

// RandomBase36 returns n random characters from [0-9a-z]
func RandomBase36(n int) string {
	max := big.NewInt(int64(len(base36)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		buf[i] = base36[idx.Int64()]
	}
	return string(buf)
}
