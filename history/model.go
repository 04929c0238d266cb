package history

// avgData is an immutable running average. Every Combine returns a new value so
// buckets can swap it atomically.
type avgData struct {
	sum   float64
	count int
	last  float64
}

func newAvgData(v float64) avgData {
	return avgData{
		sum:   v,
		count: 1,
		last:  v,
	}
}

func (o avgData) Combine(v float64) avgData {
	return avgData{
		sum:   o.sum + v,
		count: o.count + 1,
		last:  v,
	}
}

func (o avgData) Calc() float64 {
	if o.count == 0 {
		return 0
	}

	return o.sum / float64(o.count)
}
