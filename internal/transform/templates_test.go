package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "test_template", Description: "A test template"})

	retrieved, ok := registry.Get("test_template")
	require.True(t, ok)
	assert.Equal(t, "A test template", retrieved.Description)

	_, ok = registry.Get("TEST_TEMPLATE")
	assert.True(t, ok, "lookup is case-insensitive")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestTemplateRegistry_List(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "b_template"})
	registry.Register(Template{Name: "a_template"})

	assert.Equal(t, []string{"a_template", "b_template"}, registry.List())
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	for _, name := range []string{
		"retire_early_5", "retire_late_3", "return_plus_2", "return_minus_2",
		"save_more_20", "spend_less_10", "income_up_10", "conservative", "aggressive",
	} {
		tmpl, ok := registry.Get(name)
		if assert.True(t, ok, "missing template %s", name) {
			assert.NotEmpty(t, tmpl.Transforms, name)
			assert.NotEmpty(t, tmpl.Description, name)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()
	base := createTestHousehold()

	tests := []struct {
		template  string
		retAge    int
		savings   float64
		expenses  float64
		preReturn float64
	}{
		{"retire_early_5", 55, 40000, 80000, 0},
		{"retire_late_3", 63, 40000, 80000, 0},
		{"return_plus_2", 60, 40000, 80000, 14},
		{"return_minus_2", 60, 40000, 80000, 10},
		{"save_more_20", 60, 48000, 80000, 0},
		{"spend_less_10", 60, 48000, 72000, 0},
		{"conservative", 63, 40000, 80000, 10},
		{"aggressive", 60, 48000, 80000, 14},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			tmpl, ok := registry.Get(tt.template)
			require.True(t, ok)

			result, err := ApplyTemplate(base, tmpl)
			require.NoError(t, err)
			assert.Equal(t, tt.retAge, result.Profile.RetirementAge)
			assert.Equal(t, tt.savings, result.Profile.MonthlySavings)
			assert.Equal(t, tt.expenses, result.Profile.MonthlyExpenses)
			assert.Equal(t, tt.preReturn, result.Assumptions.PreRetirementReturn)
		})
	}

	assert.Equal(t, 60, base.Profile.RetirementAge, "templates never modify the base")
}

func TestApplyTemplate_EmptyTransforms(t *testing.T) {
	base := createTestHousehold()
	result, err := ApplyTemplate(base, Template{Name: "noop"})
	require.NoError(t, err)
	assert.NotSame(t, base, result)
	assert.Equal(t, base, result)
}

func TestParseTemplateList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"retire_early_5", []string{"retire_early_5"}},
		{"retire_early_5, save_more_20", []string{"retire_early_5", "save_more_20"}},
		{" a ,, b ,", []string{"a", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ParseTemplateList(tt.input), tt.input)
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	for _, want := range []string{"Retirement Timing:", "Market Returns:", "Cash Flow:", "Combination Strategies:", "retire_early_5", "Usage:"} {
		assert.True(t, strings.Contains(help, want), "help missing %q", want)
	}

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

func TestTransformRegistry(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Contains(t, registry.List(), "postpone_retirement")
	assert.Contains(t, registry.List(), "adjust_expenses")

	tr, err := registry.ParseTransformSpec("adjust_expenses:percent=-10,redirect=true")
	require.NoError(t, err)
	assert.Equal(t, &AdjustExpenses{Percent: -10, RedirectToSavings: true}, tr)

	tr, err = registry.ParseTransformSpec("postpone_retirement:years=2")
	require.NoError(t, err)
	assert.Equal(t, &PostponeRetirement{Years: 2}, tr)

	tr, err = registry.Create("set_savings", map[string]string{"amount": "50000"})
	require.NoError(t, err)
	assert.Equal(t, &SetMonthlySavings{Amount: 50000}, tr)

	errorSpecs := []string{
		"postpone_retirement",
		"postpone_retirement:years",
		"postpone_retirement:months=3",
		"postpone_retirement:years=two",
		"adjust_return:delta=abc",
		"unknown:x=1",
	}
	for _, spec := range errorSpecs {
		_, err := registry.ParseTransformSpec(spec)
		assert.Error(t, err, spec)
	}
}
