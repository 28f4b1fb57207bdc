package precompile

// Weight is the runtime's internal cost unit (ref-time).
type Weight uint64

// GasWeightMapping converts weight into the gas charged for it.
type GasWeightMapping interface {
	WeightToGas(weight Weight) uint64
}

// FixedGasWeightMapping is a linear mapping with a single parameter.
type FixedGasWeightMapping struct {
	WeightPerGas uint64
}

// WeightToGas rounds down.
func (m FixedGasWeightMapping) WeightToGas(weight Weight) uint64 {
	if m.WeightPerGas == 0 {
		return 0
	}
	return uint64(weight) / m.WeightPerGas
}
