package evo

// Species groups genomes whose similarity to the founder is below SpeciesThreshold.
// Species are rebuilt from scratch on every Evolve call.
type Species struct {
	Members []*Genome // Members[0] is the founder; order follows the input list.
}

// Founder returns the first genome assigned to the species.
func (s *Species) Founder() *Genome {
	return s.Members[0]
}

// Speciate partitions genomes with a single greedy pass. Each genome joins the
// first species (in creation order) whose founder it is similar to, otherwise
// it founds a new one. The result depends on input order; callers pass the
// list sorted by descending fitness so every founder is its species' fittest.
//
// Members are shared with the input slice, not copied.
func Speciate(genomes []*Genome) []*Species {
	species := make([]*Species, 0)
	for _, g := range genomes {
		var home *Species
		for _, s := range species {
			if s.Founder().Similarity(g) < SpeciesThreshold {
				home = s
				break
			}
		}
		if home == nil {
			species = append(species, &Species{Members: []*Genome{g}})
			continue
		}
		home.Members = append(home.Members, g)
	}
	return species
}
