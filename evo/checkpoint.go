package evo

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
)

// checkpointData is the on-disk form of a population. The genome shape is
// not stored; LoadCheckpoint takes it from the caller.
type checkpointData struct {
	Generation int
	MaxSpecies int
	Genomes    []checkpointGenome
}

type checkpointGenome struct {
	Weights []float64 // Genome.Weights layout
	Fitness float64
}

// SaveCheckpoint writes the population to a gzip-compressed gob file.
func (p *Population) SaveCheckpoint(filePath string) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close checkpoint file '%s': %w", filePath, cerr)
		}
	}()

	gzWriter := gzip.NewWriter(file)
	data := checkpointData{
		Generation: p.Generation,
		MaxSpecies: p.MaxSpecies,
		Genomes:    make([]checkpointGenome, len(p.genomes)),
	}
	for i, g := range p.genomes {
		data.Genomes[i] = checkpointGenome{Weights: g.Weights(), Fitness: g.Fitness}
	}

	if err := gob.NewEncoder(gzWriter).Encode(data); err != nil {
		_ = gzWriter.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint '%s': %w", filePath, err)
	}
	return nil
}

// LoadCheckpoint restores a population saved by SaveCheckpoint. The shape
// must match the one the checkpoint was written with.
func LoadCheckpoint(checkpointPath string, shape Shape) (*Population, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(checkpointPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", checkpointPath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var data checkpointData
	if err := gob.NewDecoder(gzReader).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode population data from checkpoint: %w", err)
	}

	genomes := make([]*Genome, len(data.Genomes))
	for i, cg := range data.Genomes {
		g, err := GenomeFromWeights(shape, cg.Weights, cg.Fitness)
		if err != nil {
			return nil, fmt.Errorf("checkpoint genome %d: %w", i, err)
		}
		genomes[i] = g
	}

	p, err := NewPopulationFromGenomes(data.MaxSpecies, genomes)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild population from checkpoint: %w", err)
	}
	p.Generation = data.Generation
	return p, nil
}
