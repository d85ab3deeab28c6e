package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (LoanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_rate", createAdjustRate)
	registry.Register("set_rate", createSetRate)
	registry.Register("extend_term", createExtendTerm)
	registry.Register("set_term", createSetTerm)
	registry.Register("set_frequency", createSetFrequency)
	registry.Register("set_mode", createSetMode)
	registry.Register("down_payment", createDownPayment)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (LoanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_rate:points=-0.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (LoanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireParam(params map[string]string, transform, key string) (string, error) {
	value, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return value, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return decimal.Zero, err
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func intParam(params map[string]string, transform, key string) (int, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createAdjustRate(params map[string]string) (LoanTransform, error) {
	points, err := decimalParam(params, "adjust_rate", "points")
	if err != nil {
		return nil, err
	}
	return &AdjustRate{Points: points}, nil
}

func createSetRate(params map[string]string) (LoanTransform, error) {
	percent, err := decimalParam(params, "set_rate", "percent")
	if err != nil {
		return nil, err
	}
	return &SetRate{Percent: percent}, nil
}

func createExtendTerm(params map[string]string) (LoanTransform, error) {
	years, err := intParam(params, "extend_term", "years")
	if err != nil {
		return nil, err
	}
	return &ExtendTerm{Years: years}, nil
}

func createSetTerm(params map[string]string) (LoanTransform, error) {
	years, err := intParam(params, "set_term", "years")
	if err != nil {
		return nil, err
	}
	return &SetTerm{Years: years}, nil
}

func createSetFrequency(params map[string]string) (LoanTransform, error) {
	perYear, err := intParam(params, "set_frequency", "per_year")
	if err != nil {
		return nil, err
	}
	return &SetFrequency{PerYear: perYear}, nil
}

func createSetMode(params map[string]string) (LoanTransform, error) {
	s, err := requireParam(params, "set_mode", "mode")
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseInterestMode(s)
	if err != nil {
		return nil, err
	}
	return &SetMode{Mode: mode}, nil
}

func createDownPayment(params map[string]string) (LoanTransform, error) {
	_, hasAmount := params["amount"]
	_, hasPercent := params["percent"]
	switch {
	case hasAmount && hasPercent:
		return nil, fmt.Errorf("down_payment takes 'amount' or 'percent', not both")
	case hasPercent:
		percent, err := decimalParam(params, "down_payment", "percent")
		if err != nil {
			return nil, err
		}
		return &DownPayment{Percent: percent}, nil
	default:
		amount, err := decimalParam(params, "down_payment", "amount")
		if err != nil {
			return nil, err
		}
		return &DownPayment{Amount: amount}, nil
	}
}
