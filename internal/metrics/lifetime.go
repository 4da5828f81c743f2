package metrics

type MeanLifetime struct {
	sum     int64
	samples int
}

func NewMeanLifetime() *MeanLifetime { return &MeanLifetime{} }

func (m *MeanLifetime) Name() string { return "mean_lifetime" }

func (m *MeanLifetime) Observe(o Observation) {
	m.sum += int64(o.Lifetime)
	m.samples++
}

func (m *MeanLifetime) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.samples)
}

func (m *MeanLifetime) Reset() {
	m.sum = 0
	m.samples = 0
}

type MaxLifetime struct {
	max int
}

func NewMaxLifetime() *MaxLifetime { return &MaxLifetime{} }

func (m *MaxLifetime) Name() string { return "max_lifetime" }

func (m *MaxLifetime) Observe(o Observation) {
	if o.Lifetime > m.max {
		m.max = o.Lifetime
	}
}

func (m *MaxLifetime) Value() float64 { return float64(m.max) }

func (m *MaxLifetime) Reset() { m.max = 0 }
