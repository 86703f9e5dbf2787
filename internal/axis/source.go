package axis

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
)

// Source supplies uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
// It is stateless and safe for concurrent use.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) IntN(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("axis: read random index: %v", err))
	}
	return int(v.Int64())
}
