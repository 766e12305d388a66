package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Average returns the point-wise mean of equally long reward histories.
func Average(name string, runs [][]float64) Curve {
	if len(runs) == 0 {
		panic("cannot average no runs")
	}
	batches := len(runs[0])
	column := make([]float64, len(runs))
	values := make([]float64, batches)
	for i := 0; i < batches; i++ {
		for r, run := range runs {
			if len(run) != batches {
				panic(fmt.Sprintf("run %d has %d batches, expected %d", r, len(run), batches))
			}
			column[r] = run[i]
		}
		values[i] = stat.Mean(column, nil)
	}
	return Curve{Name: name, Values: values}
}

type Summary struct {
	Name  string
	Final float64
	Max   float64
	Mean  float64
}

func (c Curve) Summarize() Summary {
	if len(c.Values) == 0 {
		return Summary{Name: c.Name}
	}
	return Summary{
		Name:  c.Name,
		Final: c.Values[len(c.Values)-1],
		Max:   floats.Max(c.Values),
		Mean:  stat.Mean(c.Values, nil),
	}
}
