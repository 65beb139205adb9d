package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (HouseholdTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("adjust_savings", createAdjustSavings)
	registry.Register("set_savings", createSetMonthlySavings)
	registry.Register("adjust_expenses", createAdjustExpenses)
	registry.Register("adjust_income", createAdjustIncome)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (HouseholdTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
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
// Example: "adjust_expenses:percent=-10,redirect=true"
func (r *TransformRegistry) ParseTransformSpec(spec string) (HouseholdTransform, error) {
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

func intParam(transform, key string, params map[string]string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func floatParam(transform, key string, params map[string]string) (float64, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createPostponeRetirement(params map[string]string) (HouseholdTransform, error) {
	years, err := intParam("postpone_retirement", "years", params)
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetRetirementAge(params map[string]string) (HouseholdTransform, error) {
	age, err := intParam("set_retirement_age", "age", params)
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createAdjustReturn(params map[string]string) (HouseholdTransform, error) {
	delta, err := floatParam("adjust_return", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{Delta: delta}, nil
}

func createAdjustSavings(params map[string]string) (HouseholdTransform, error) {
	pct, err := floatParam("adjust_savings", "percent", params)
	if err != nil {
		return nil, err
	}
	return &AdjustSavings{Percent: pct}, nil
}

func createSetMonthlySavings(params map[string]string) (HouseholdTransform, error) {
	amount, err := floatParam("set_savings", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetMonthlySavings{Amount: amount}, nil
}

func createAdjustExpenses(params map[string]string) (HouseholdTransform, error) {
	pct, err := floatParam("adjust_expenses", "percent", params)
	if err != nil {
		return nil, err
	}

	redirect := false
	if s, ok := params["redirect"]; ok {
		redirect = s == "true" || s == "yes" || s == "1"
	}

	return &AdjustExpenses{Percent: pct, RedirectToSavings: redirect}, nil
}

func createAdjustIncome(params map[string]string) (HouseholdTransform, error) {
	pct, err := floatParam("adjust_income", "percent", params)
	if err != nil {
		return nil, err
	}
	return &AdjustIncome{Percent: pct}, nil
}
