package index

import (
	"math"
)

// Component is a single non-zero cell of a sparse row: the column of a
// stemmed vocabulary term and its weight.
type Component struct {
	Col    int
	Weight float64
}

// Vector is a sparse float64 row, always sorted by Col for merge-join operations.
// A nil Vector is the zero vector.
type Vector []Component

// Dot computes the dot product of two sparse vectors.
func (v Vector) Dot(other Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(v) && j < len(other) {
		switch {
		case v[i].Col == other[j].Col:
			dot += v[i].Weight * other[j].Weight
			i++
			j++
		case v[i].Col < other[j].Col:
			i++
		default:
			j++
		}
	}
	return dot
}

// Norm returns the Euclidean (L2) length of the vector.
func (v Vector) Norm() float64 {
	var sum float64
	for _, c := range v {
		sum += c.Weight * c.Weight
	}
	return math.Sqrt(sum)
}

// Scale returns a new vector with every weight multiplied by factor.
func (v Vector) Scale(factor float64) Vector {
	if len(v) == 0 || factor == 0 {
		return nil
	}
	scaled := make(Vector, len(v))
	for i, c := range v {
		scaled[i] = Component{Col: c.Col, Weight: c.Weight * factor}
	}
	return scaled
}

// Add returns the element-wise sum of two vectors.
func (v Vector) Add(other Vector) Vector {
	sum := make(Vector, 0, len(v)+len(other))
	i, j := 0, 0
	for i < len(v) && j < len(other) {
		switch {
		case v[i].Col == other[j].Col:
			sum = append(sum, Component{Col: v[i].Col, Weight: v[i].Weight + other[j].Weight})
			i++
			j++
		case v[i].Col < other[j].Col:
			sum = append(sum, v[i])
			i++
		default:
			sum = append(sum, other[j])
			j++
		}
	}
	sum = append(sum, v[i:]...)
	sum = append(sum, other[j:]...)
	if len(sum) == 0 {
		return nil
	}
	return sum
}

// Normalize returns the vector scaled to unit L2 length.
// The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	return v.Scale(1 / norm)
}

// Cosine computes the cosine of the angle between two sparse vectors.
// Returns 0 if either vector is the zero vector.
func Cosine(a, b Vector) float64 {
	denom := a.Norm() * b.Norm()
	if denom == 0 {
		return 0
	}
	return a.Dot(b) / denom
}

// Centroid returns the arithmetic mean of the given vectors.
func Centroid(vectors []Vector) Vector {
	if len(vectors) == 0 {
		return nil
	}
	var sum Vector
	for _, v := range vectors {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(len(vectors)))
}
