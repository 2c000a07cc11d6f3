package evo

import "math"

// LeakyReLU passes positive values through and halves everything else.
func LeakyReLU(x float64) float64 {
	if x > 0 {
		return x
	}
	return x / 2
}

// Sigmoid is the mirrored logistic 1/(1+e^x): it tends to 1 as x goes to -Inf
// and to 0 as x goes to +Inf. Sigmoid(0) is exactly 0.5.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(x))
}

// applyLeakyReLU and applySigmoid adapt the activations to mat.Dense.Apply.
func applyLeakyReLU(_, _ int, v float64) float64 { return LeakyReLU(v) }

func applySigmoid(_, _ int, v float64) float64 { return Sigmoid(v) }
