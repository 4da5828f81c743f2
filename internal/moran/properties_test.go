package moran

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func seeded(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) }

var _ = Describe("counting variants", func() {
	DescribeTable("keep the population size and bounds at every step",
		func(run func() ([]Composition, error), size int) {
			counts, err := run()
			Expect(err).NotTo(HaveOccurred())
			for _, c := range counts {
				Expect(c.A + c.B).To(Equal(size))
				Expect(c.A).To(BeNumerically(">=", 0))
				Expect(c.A).To(BeNumerically("<=", size))
			}
		},
		Entry("neutral", func() ([]Composition, error) { return RunNeutral(seeded(1), 0.5, 40, 20000) }, 40),
		Entry("neutral from fixation", func() ([]Composition, error) { return RunNeutral(seeded(2), 1.0, 40, 500) }, 40),
		Entry("mutation", func() ([]Composition, error) { return RunMutation(seeded(3), 0.1, 0.5, 60, 20000) }, 60),
		Entry("mutation single individual", func() ([]Composition, error) { return RunMutation(seeded(4), 1.0, 2, 1, 100) }, 1),
	)

	It("stays absorbed once a genotype fixes", func() {
		counts, err := RunNeutral(seeded(11), 0.5, 10, 20000)
		Expect(err).NotTo(HaveOccurred())

		absorbedAt := -1
		for i, c := range counts {
			if _, fixed := c.Fixed(); fixed {
				absorbedAt = i
				break
			}
		}
		Expect(absorbedAt).To(BeNumerically(">=", 0), "a population of 10 should fix within 20000 steps")
		for _, c := range counts[absorbedAt:] {
			Expect(c).To(Equal(counts[absorbedAt]))
		}
	})

	It("records the full iteration count even after absorption", func() {
		counts, err := RunNeutral(seeded(5), 0.0, 8, 300)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts).To(HaveLen(300))
		Expect(counts).To(HaveEach(Equal(Composition{0, 8})))
	})

	It("reproduces trajectories from the same seed", func() {
		first, err := RunMutation(seeded(99), 0.2, 0.3, 100, 5000)
		Expect(err).NotTo(HaveOccurred())
		second, err := RunMutation(seeded(99), 0.2, 0.3, 100, 5000)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("reduces to neutral drift with zero advantage", func() {
		neutral, err := RunNeutral(seeded(21), 0.3, 200, 10000)
		Expect(err).NotTo(HaveOccurred())
		mutant, err := RunMutation(seeded(21), 0.3, 0, 200, 10000)
		Expect(err).NotTo(HaveOccurred())
		Expect(mutant).To(Equal(neutral))
	})

	It("drives a rare advantageous mutant upward compared to drift", func() {
		neutral, err := NeutralRun(seeded(8), Params{FreqA: 0.01, Size: 1000, Iterations: 100000})
		Expect(err).NotTo(HaveOccurred())
		mutant, err := MutationRun(seeded(8), Params{FreqA: 0.01, Advantage: 10, Size: 1000, Iterations: 100000})
		Expect(err).NotTo(HaveOccurred())

		Expect(mutant.Counts[0]).To(Equal(Composition{10, 990}))
		Expect(mutant.Final.A).To(Equal(1000))
		Expect(neutral.Final.A).To(BeNumerically("<", mutant.Final.A))
	})
})

var _ = Describe("lifetime variant", func() {
	It("returns one non-negative lifetime per step bounded by the step index", func() {
		lifetimes, err := RunLifetimes(seeded(31), 0.5, 30, 3000)
		Expect(err).NotTo(HaveOccurred())
		Expect(lifetimes).To(HaveLen(3000))
		for i, lt := range lifetimes {
			Expect(lt).To(And(BeNumerically(">=", 0), BeNumerically("<=", i)))
		}
	})

	It("keeps every individual identity unique", func() {
		res, err := LifetimeRun(seeded(32), Params{FreqA: 0.4, Size: 25, Iterations: 1000})
		Expect(err).NotTo(HaveOccurred())

		ids := make(map[uint64]struct{})
		for _, ind := range res.Final.Members() {
			ids[ind.ID] = struct{}{}
		}
		Expect(ids).To(HaveLen(25))
	})

	It("is deterministic for a fixed seed", func() {
		first, err := RunLifetimes(seeded(77), 0.5, 50, 2000)
		Expect(err).NotTo(HaveOccurred())
		second, err := RunLifetimes(seeded(77), 0.5, 50, 2000)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})
})
