package evo

// retainedSpecies is how many species act as reproduction sources.
// A maxSpecies of zero behaves like one so the round-robin never divides by zero.
func retainedSpecies(maxSpecies, formed int) int {
	n := min(maxSpecies, formed)
	if n < 1 {
		n = 1
	}
	return n
}

// reproduce assembles the next generation from fitness-sorted species.
//
// The founder of every retained species is carried over unchanged (capped at
// popSize). Remaining slots are filled round-robin across the retained
// species with mutated clones of a parent picked as the lower of two uniform
// member indices. Every returned genome has zero fitness.
func reproduce(species []*Species, popSize, maxSpecies int, rng Rand) []*Genome {
	retained := retainedSpecies(maxSpecies, len(species))
	next := make([]*Genome, 0, popSize)

	for _, s := range species[:retained] {
		if len(next) == popSize {
			break
		}
		next = append(next, s.Founder().Clone())
	}

	for i := 0; len(next) < popSize; i++ {
		child := selectParent(species[i%retained], rng).Clone()
		mutations := 1 + rng.Intn(MaxMutations)
		for m := 0; m < mutations; m++ {
			child.Mutate(rng)
		}
		next = append(next, child)
	}

	for _, g := range next {
		g.Fitness = 0
	}
	return next
}

// selectParent biases toward earlier, fitter members.
func selectParent(s *Species, rng Rand) *Genome {
	n := len(s.Members)
	a := rng.Intn(n)
	b := rng.Intn(n)
	return s.Members[min(a, b)]
}
