package assetsfactory

import "github.com/ethereum/go-ethereum/metrics"

var (
	callMeter      = metrics.NewRegisteredMeter("precompile/assets/calls", nil)
	revertMeter    = metrics.NewRegisteredMeter("precompile/assets/reverts", nil)
	outOfGasMeter  = metrics.NewRegisteredMeter("precompile/assets/oog", nil)
	dispatchTimer  = metrics.NewRegisteredTimer("precompile/assets/dispatch", nil)
	dispatchErrors = metrics.NewRegisteredCounter("precompile/assets/dispatch/errors", nil)
)
