package analysis

import (
	"hash/fnv"
	"math/rand"
)

// RunKey identifies a reproducible analysis run.
// Two runs with the same RunKey over the same dataset and configuration
// MUST produce identical partitions, synthetic rows and models.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

const (
	// SubsystemSplit is the RNG subsystem for the train/test partition.
	// Uses the master seed directly, so --seed alone fixes the split.
	SubsystemSplit = "split"

	// SubsystemSMOTE is the RNG subsystem for synthetic minority rows.
	SubsystemSMOTE = "smote"

	// SubsystemModel is the RNG subsystem for classifier tie-breaking.
	SubsystemModel = "model"
)

// PartitionedRNG provides deterministic, isolated RNG instances per pipeline stage.
//
// Derivation formula:
//   - For SubsystemSplit: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Drawing from one stage never shifts another stage's sequence, so adding a
// model to the bank does not change the split or the balanced training set.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        RunKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a RunKey.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemSplit {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the RunKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
