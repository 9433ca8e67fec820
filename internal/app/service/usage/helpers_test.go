package usage

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// testCounter sums every series of the named metric family in reg.
func testCounter(reg *prometheus.Registry, name string) (float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return 0, err
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		return sum, nil
	}
	return 0, fmt.Errorf("metric %s not found", name)
}
