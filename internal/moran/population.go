package moran

import "fmt"

// Individual is one member of a tracked population. IDs are unique within a
// Population, so two members sharing genotype and birth step stay distinct.
type Individual struct {
	ID        uint64   `json:"id"`
	Genotype  Genotype `json:"genotype"`
	BirthStep int      `json:"birth_step"`
}

// Population is a fixed-size multiset of individuals. Members keep their slot
// until replaced, so draws are reproducible for a given random stream.
type Population struct {
	members []Individual
	slots   map[uint64]int
	nextID  uint64
	counts  Composition
}

// NewPopulation creates floor(freqA*size) A individuals followed by B
// individuals, all born at step 0.
func NewPopulation(freqA float64, size int) *Population {
	c := InitialComposition(freqA, size)
	p := &Population{
		members: make([]Individual, 0, c.Size()),
		slots:   make(map[uint64]int, c.Size()),
	}
	for i := 0; i < c.A; i++ {
		p.add(A, 0)
	}
	for i := 0; i < c.B; i++ {
		p.add(B, 0)
	}
	return p
}

func (p *Population) add(g Genotype, step int) {
	ind := Individual{ID: p.nextID, Genotype: g, BirthStep: step}
	p.nextID++
	p.slots[ind.ID] = len(p.members)
	p.members = append(p.members, ind)
	p.counts = p.counts.with(g, 1)
}

func (p *Population) Len() int { return len(p.members) }

// Members returns a copy of the current individuals in slot order.
func (p *Population) Members() []Individual {
	out := make([]Individual, len(p.members))
	copy(out, p.members)
	return out
}

func (p *Population) Get(id uint64) (Individual, bool) {
	slot, ok := p.slots[id]
	if !ok {
		return Individual{}, false
	}
	return p.members[slot], true
}

// Composition is kept up to date by every insertion and replacement.
func (p *Population) Composition() Composition { return p.counts }

// Draw picks one individual uniformly at random.
func (p *Population) Draw(rng Rand) (Individual, error) {
	if len(p.members) == 0 {
		return Individual{}, ErrEmptyPool
	}
	return p.members[rng.Int63n(int64(len(p.members)))], nil
}

// Replace removes the individual with the given ID and inserts a newborn of
// genotype g born at step. The newborn takes the vacated slot.
func (p *Population) Replace(id uint64, g Genotype, step int) (Individual, error) {
	slot, ok := p.slots[id]
	if !ok {
		return Individual{}, fmt.Errorf("%w: id %d", ErrUnknownIndividual, id)
	}
	delete(p.slots, id)
	p.counts = p.counts.with(p.members[slot].Genotype, -1).with(g, 1)

	newborn := Individual{ID: p.nextID, Genotype: g, BirthStep: step}
	p.nextID++
	p.members[slot] = newborn
	p.slots[newborn.ID] = slot
	return newborn, nil
}

// LifetimeStep performs one birth-death event on a tracked population and
// returns the age of the individual that died. The birth parent and the
// death target may be the same individual.
func LifetimeStep(rng Rand, p *Population, step int) (int, error) {
	parent, err := p.Draw(rng)
	if err != nil {
		return 0, err
	}
	dead, err := p.Draw(rng)
	if err != nil {
		return 0, err
	}
	lifetime := step - dead.BirthStep
	if _, err := p.Replace(dead.ID, parent.Genotype, step); err != nil {
		return 0, err
	}
	return lifetime, nil
}
