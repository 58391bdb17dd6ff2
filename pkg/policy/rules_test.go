package policy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-releasecycle/pkg/policy"
	"github.com/goliatone/go-releasecycle/pkg/testsupport"
)

func TestDefaultRules_Window(t *testing.T) {
	rules := policy.DefaultRules()

	cases := map[string]int{
		"3.14": 730,
		"3.13": 730,
		"3.12": 547,
		"3.8":  547,
		"2.7":  547,
	}
	for identifier, want := range cases {
		got, err := rules.Window(identifier)
		require.NoError(t, err, identifier)
		require.Equal(t, want, got, identifier)
	}
}

func TestRules_SecurityStart(t *testing.T) {
	rules := policy.DefaultRules()

	got, err := rules.SecurityStart("3.13", testsupport.Date(t, "2024-10-07"))
	require.NoError(t, err)
	require.Equal(t, testsupport.Date(t, "2026-10-07"), got)

	got, err = rules.SecurityStart("3.12", testsupport.Date(t, "2023-10-02"))
	require.NoError(t, err)
	require.Equal(t, testsupport.Date(t, "2025-04-01"), got)
}

func TestRules_FirstMatchWins(t *testing.T) {
	rules, err := policy.NewRules(1,
		policy.Rule{Constraint: ">= 4.0", Years: 3},
		policy.Rule{Constraint: ">= 3.13", Years: 2},
	)
	require.NoError(t, err)

	years, err := rules.Years("4.1")
	require.NoError(t, err)
	require.Equal(t, 3.0, years)

	years, err = rules.Years("3.13")
	require.NoError(t, err)
	require.Equal(t, 2.0, years)

	years, err = rules.Years("3.12")
	require.NoError(t, err)
	require.Equal(t, 1.0, years)

	require.Len(t, rules.List(), 2)
}

func TestNewRules_Invalid(t *testing.T) {
	_, err := policy.NewRules(0)
	require.Error(t, err)

	_, err = policy.NewRules(1, policy.Rule{Constraint: "", Years: 1})
	require.Error(t, err)

	_, err = policy.NewRules(1, policy.Rule{Constraint: ">= 3.13", Years: -1})
	require.Error(t, err)

	_, err = policy.NewRules(1, policy.Rule{Constraint: "not a constraint", Years: 1})
	require.Error(t, err)
}

func TestRules_UnparsableVersion(t *testing.T) {
	_, err := policy.DefaultRules().Window("main")
	require.Error(t, err)
}
