package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/darksciencedivision-ctrl/praxis-titan-p6/domain/result"
)

// IntervalMethod computes a two-sided binomial confidence interval for a
// sampled proportion. The method in use is recorded on every interval it
// produces, since the choice affects reported width.
type IntervalMethod interface {
	Name() string
	Interval(hits, samples int, confidence float64) result.ConfidenceInterval
}

func intervalMethod(name string) IntervalMethod {
	switch name {
	case IntervalWilson:
		return WilsonInterval{}
	case IntervalClopperPearson:
		return ClopperPearsonInterval{}
	default:
		return WaldInterval{}
	}
}

func normalQuantile(confidence float64) float64 {
	std := distuv.Normal{Mu: 0, Sigma: 1}
	return std.Quantile(0.5 + confidence/2)
}

// WaldInterval is the normal-approximation interval p +- z*sqrt(p(1-p)/n).
// It is the documented default; it degenerates at p near 0 or 1, which the
// exact method avoids.
type WaldInterval struct{}

func (WaldInterval) Name() string { return IntervalWald }

func (WaldInterval) Interval(hits, samples int, confidence float64) result.ConfidenceInterval {
	n := float64(samples)
	p := float64(hits) / n
	z := normalQuantile(confidence)
	half := z * math.Sqrt(p*(1-p)/n)
	return result.ConfidenceInterval{
		Low:        clamp01(p - half),
		High:       clamp01(p + half),
		Confidence: confidence,
		Method:     IntervalWald,
	}
}

// WilsonInterval is the score interval; it keeps sane coverage for extreme
// proportions without the cost of the exact method.
type WilsonInterval struct{}

func (WilsonInterval) Name() string { return IntervalWilson }

func (WilsonInterval) Interval(hits, samples int, confidence float64) result.ConfidenceInterval {
	n := float64(samples)
	p := float64(hits) / n
	z := normalQuantile(confidence)
	z2 := z * z
	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom
	return result.ConfidenceInterval{
		Low:        clamp01(center - half),
		High:       clamp01(center + half),
		Confidence: confidence,
		Method:     IntervalWilson,
	}
}

// ClopperPearsonInterval is the exact binomial interval via Beta quantiles.
type ClopperPearsonInterval struct{}

func (ClopperPearsonInterval) Name() string { return IntervalClopperPearson }

func (ClopperPearsonInterval) Interval(hits, samples int, confidence float64) result.ConfidenceInterval {
	alpha := 1 - confidence
	x, n := float64(hits), float64(samples)

	low := 0.0
	if hits > 0 {
		low = distuv.Beta{Alpha: x, Beta: n - x + 1}.Quantile(alpha / 2)
	}
	high := 1.0
	if hits < samples {
		high = distuv.Beta{Alpha: x + 1, Beta: n - x}.Quantile(1 - alpha/2)
	}

	return result.ConfidenceInterval{
		Low:        low,
		High:       high,
		Confidence: confidence,
		Method:     IntervalClopperPearson,
	}
}
