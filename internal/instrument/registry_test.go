package instrument

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins_LoadAndValidate(t *testing.T) {
	insts, err := Builtins()
	require.NoError(t, err)

	ids := make([]string, 0, len(insts))
	for _, inst := range insts {
		ids = append(ids, inst.ID)
		assert.Empty(t, Validate(inst), "builtin %s should validate", inst.ID)
	}
	assert.Equal(t, []string{"bigfive", "gad7", "phq9", "pss10", "rses", "type4"}, ids)
}

func TestBuiltins_FollowUpsResolve(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	for _, inst := range reg.List() {
		for _, tier := range inst.Policy.Tiers {
			for _, id := range tier.FollowUps {
				_, ok := reg.Get(id)
				assert.True(t, ok, "%s tier %s follows up with unknown %s", inst.ID, tier.ID, id)
			}
		}
		for i, rule := range inst.Recommendations {
			for _, id := range rule.Tests {
				_, ok := reg.Get(id)
				assert.True(t, ok, "%s recommendation %d suggests unknown %s", inst.ID, i, id)
			}
		}
	}
}

func TestBuiltins_ScoreEndToEnd(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)

	gad7, err := reg.Require("gad7")
	require.NoError(t, err)
	answers := domain.AnswerSet{}
	for _, q := range gad7.Questions {
		answers[q.ID] = 3
	}
	res := scoring.Score(gad7, answers)
	assert.Equal(t, 3.0, res.Overall)
	assert.Equal(t, "severe", res.Classification.TierID)

	type4, err := reg.Require("type4")
	require.NoError(t, err)
	answers = domain.AnswerSet{}
	for _, q := range type4.Questions {
		answers[q.ID] = 5
	}
	res = scoring.Score(type4, answers)
	// Reversed items pull each dimension back to the midpoint, which resolves
	// to the high letter.
	assert.Equal(t, "ESTJ", res.Classification.Code)
}

func TestRegistry_RequireUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Require("nope")
	assert.ErrorIs(t, err, ErrUnknownInstrument)
}

func TestRegistry_CustomDirOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := `
id: gad7
title: Custom Anxiety
domain: anxiety
scale: {min: 0, max: 3}
dimensions:
  - {id: total}
questions:
  - {id: q1, dimension: total, text: "One"}
policy:
  kind: severity_tier
  cutoffs: [1.5]
  tiers:
    - {id: low}
    - {id: high}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gad7.yaml"), []byte(custom), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	reg, err := Load(dir)
	require.NoError(t, err)

	inst, ok := reg.Get("gad7")
	require.True(t, ok)
	assert.Equal(t, "Custom Anxiety", inst.Title)

	// Overriding keeps the original listing position.
	builtins, err := Builtins()
	require.NoError(t, err)
	assert.Len(t, reg.List(), len(builtins))
	assert.Equal(t, "gad7", reg.List()[1].ID)
}

func TestRegistry_MissingDirLoadsBuiltinsOnly(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	_, ok := reg.Get("phq9")
	assert.True(t, ok)
}

func TestRegistry_InvalidCustomDefinitionFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: bad\ntitel: typo\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}
