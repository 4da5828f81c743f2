package metrics

import "github.com/san-kum/moran/internal/moran"

// FinalFrequency is the frequency of A once the run is over.
type FinalFrequency struct {
	last    float64
	samples int
}

func NewFinalFrequency() *FinalFrequency { return &FinalFrequency{} }

func (f *FinalFrequency) Name() string { return "final_freq_a" }

func (f *FinalFrequency) Observe(o Observation) {
	f.last = o.Counts.FrequencyA()
	f.samples++
}

func (f *FinalFrequency) Finalize(step int, final moran.Composition) {
	f.last = final.FrequencyA()
}

func (f *FinalFrequency) Value() float64 { return f.last }

func (f *FinalFrequency) Reset() {
	f.last = 0
	f.samples = 0
}

type MeanFrequency struct {
	sum     float64
	samples int
}

func NewMeanFrequency() *MeanFrequency { return &MeanFrequency{} }

func (m *MeanFrequency) Name() string { return "mean_freq_a" }

func (m *MeanFrequency) Observe(o Observation) {
	m.sum += o.Counts.FrequencyA()
	m.samples++
}

func (m *MeanFrequency) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanFrequency) Reset() {
	m.sum = 0
	m.samples = 0
}

// Heterozygosity is the mean of 2p(1-p) over the trajectory. It decays toward
// zero as drift removes variation.
type Heterozygosity struct {
	sum     float64
	samples int
}

func NewHeterozygosity() *Heterozygosity { return &Heterozygosity{} }

func (h *Heterozygosity) Name() string { return "heterozygosity" }

func (h *Heterozygosity) Observe(o Observation) {
	p := o.Counts.FrequencyA()
	h.sum += 2 * p * (1 - p)
	h.samples++
}

func (h *Heterozygosity) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.sum / float64(h.samples)
}

func (h *Heterozygosity) Reset() {
	h.sum = 0
	h.samples = 0
}
