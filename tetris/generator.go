package tetris

import "math/rand/v2"

// Generator picks every piece independently and uniformly: there is no bag,
// so the same kind can come up any number of times in a row.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator whose sequence is fully determined by seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) Next() Kind {
	return Kinds[g.rng.IntN(len(Kinds))]
}
