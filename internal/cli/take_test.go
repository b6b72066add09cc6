package cli

import (
	"testing"

	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/teatest"
	"github.com/alexanderramin/psyche/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleOptions(t *testing.T) {
	opts := scaleOptions(domain.Scale{Min: 1, Max: 4})
	require.Len(t, opts, 4)
	assert.Equal(t, "1", opts[0].Key)
	assert.Equal(t, 4.0, opts[3].Value)
}

func TestTakeModel_QuitKeyCancels(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		m := newTakeModel(testutil.NewTestSeverityInstrument(3))
		_, cmd := m.Update(msg)
		assert.True(t, m.cancelled, msg.String())
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestTakeModel_AnswersDefaultToScaleMin(t *testing.T) {
	inst := testutil.NewTestSeverityInstrument(3)
	m := newTakeModel(inst)
	m.values[1] = inst.Scale.Max

	got := m.answers()
	require.Len(t, got, 3)
	assert.Equal(t, inst.Scale.Min, got[inst.Questions[0].ID])
	assert.Equal(t, inst.Scale.Max, got[inst.Questions[1].ID])
}

func TestAnswerFlag(t *testing.T) {
	var f answerFlag
	require.NoError(t, f.Set("b=2, a=1"))
	require.NoError(t, f.Set("c=0.5"))
	assert.Equal(t, "a=1,b=2,c=0.5", f.String())
	assert.Equal(t, "question=value", f.Type())

	require.Error(t, f.Set("=3"))
	require.Error(t, f.Set("a=x"))
}

func TestMergeAnswers_FlagsWin(t *testing.T) {
	got := mergeAnswers(domain.AnswerSet{"a": 1, "b": 1}, domain.AnswerSet{"b": 3})
	assert.Equal(t, domain.AnswerSet{"a": 1, "b": 3}, got)
}

func TestTakeModel_EscThroughDriver(t *testing.T) {
	m := newTakeModel(testutil.NewTestSeverityInstrument(2))
	d := teatest.New(t, m).Start()

	d.PressEsc()
	assert.True(t, d.Quitting)
	assert.True(t, m.cancelled)
}

func TestTakeModel_CompletesForm(t *testing.T) {
	inst := testutil.NewTestSeverityInstrument(2)
	m := newTakeModel(inst)
	d := teatest.New(t, m).Start()
	assert.Contains(t, d.View(), "1/2")

	for range inst.Questions {
		d.PressDown()
		d.PressEnter()
	}

	assert.True(t, d.Quitting)
	assert.False(t, m.cancelled)
	assert.Equal(t, huh.StateCompleted, m.form.State)
	for _, v := range m.answers() {
		assert.Equal(t, inst.Scale.Min+1, v)
	}
}
