package eventmodels

import (
	"errors"
	"fmt"
)

// DomainErr is the root of every pricing input failure. The specific sentinels below wrap it,
// so errors.Is(err, DomainErr) identifies caller mistakes as opposed to internal faults.
var DomainErr = errors.New("domain error")

var InvalidContractErr = fmt.Errorf("invalid contract: %w", DomainErr)
var DegenerateVolatilityErr = fmt.Errorf("degenerate volatility: %w", DomainErr)
var InvalidPathCountErr = fmt.Errorf("invalid path count: %w", DomainErr)
var InvalidSimulationParamsErr = fmt.Errorf("invalid simulation params: %w", DomainErr)

const (
	DomainErrorTypeInvalidContract         = "invalid_contract"
	DomainErrorTypeDegenerateVolatility    = "degenerate_volatility"
	DomainErrorTypeInvalidPathCount        = "invalid_path_count"
	DomainErrorTypeInvalidSimulationParams = "invalid_simulation_params"
	DomainErrorTypeInternal                = "internal"
)

// DomainErrorType maps err onto a stable identifier for API and CLI output.
func DomainErrorType(err error) string {
	switch {
	case errors.Is(err, InvalidContractErr):
		return DomainErrorTypeInvalidContract
	case errors.Is(err, DegenerateVolatilityErr):
		return DomainErrorTypeDegenerateVolatility
	case errors.Is(err, InvalidPathCountErr):
		return DomainErrorTypeInvalidPathCount
	case errors.Is(err, InvalidSimulationParamsErr):
		return DomainErrorTypeInvalidSimulationParams
	default:
		return DomainErrorTypeInternal
	}
}
