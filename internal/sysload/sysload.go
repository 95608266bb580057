package sysload

import (
	"fmt"
	"sort"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Sampler returns one utilization value per logical core. Injectable so
// tests can feed fixed samples.
type Sampler func() ([]float64, error)

// Advisor ranks logical cores by how busy they are. The ranking is
// advisory only: the pipeline logs it as a placement hint and never pins
// workers to cores.
type Advisor struct {
	sample Sampler
}

func NewAdvisor() *Advisor {
	return &Advisor{sample: func() ([]float64, error) {
		// Zero interval takes a single snapshot relative to the last
		// read rather than averaging over a window.
		return cpu.Percent(0, true)
	}}
}

func NewAdvisorWithSampler(sample Sampler) *Advisor {
	return &Advisor{sample: sample}
}

// RankCoresByBusyness returns core indices ordered busiest first. An
// error means the sampling source is unavailable; callers must fall back
// to sizing by core count alone.
func (a *Advisor) RankCoresByBusyness() ([]int, error) {
	usage, err := a.sample()
	if err != nil {
		return nil, fmt.Errorf("sample per-core usage: %w", err)
	}

	cores := make([]int, len(usage))
	for i := range cores {
		cores[i] = i
	}
	sort.SliceStable(cores, func(i, j int) bool {
		return usage[cores[i]] > usage[cores[j]]
	})

	return cores, nil
}
