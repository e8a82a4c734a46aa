package calendar

// NeutralColor fills days without data.
const NeutralColor = "#EBEDF0"

// ColorScale maps a present value to a fill color.
type ColorScale interface {
	Color(v float64) string
}

// Quantize is a quantized color scale over a continuous domain.
//
// The domain is cut into len(Colors) buckets of equal width. A value sitting
// exactly on a bucket boundary belongs to the upper bucket; values outside
// the domain clamp to the first or last color.
type Quantize struct {
	Domain [2]float64
	Colors []string
}

// NewQuantize returns a [Quantize] scale.
func NewQuantize(domain [2]float64, colors []string) Quantize {
	return Quantize{Domain: domain, Colors: colors}
}

// Color returns the palette entry for v. An empty palette yields
// [NeutralColor].
func (q Quantize) Color(v float64) string {
	n := len(q.Colors)
	if n == 0 {
		return NeutralColor
	}
	i := 0
	for i < n-1 && q.threshold(i) <= v {
		i++
	}
	return q.Colors[i]
}

// Thresholds returns the len(Colors)-1 bucket boundaries.
func (q Quantize) Thresholds() []float64 {
	if len(q.Colors) < 2 {
		return nil
	}
	out := make([]float64, len(q.Colors)-1)
	for i := range out {
		out[i] = q.threshold(i)
	}
	return out
}

func (q Quantize) threshold(i int) float64 {
	n := float64(len(q.Colors))
	x0, x1 := q.Domain[0], q.Domain[1]
	fi := float64(i)
	return ((fi+1)*x1 - (fi-n+1)*x0) / n
}
