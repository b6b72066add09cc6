package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/psyche/internal/cli/formatter"
	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var errTakeCancelled = errors.New("cancelled")

func newTakeCmd(app *App) *cobra.Command {
	var user string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "take ID",
		Short: "Answer an instrument interactively, one question per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("take needs an interactive terminal; use `psyche submit %s --answer q=v` instead", args[0])
			}
			inst, err := app.Instruments.Require(args[0])
			if err != nil {
				return err
			}

			answers, err := runQuestionnaire(app, inst)
			if errors.Is(err, errTakeCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled. Nothing was saved."))
				return nil
			}
			if err != nil {
				return err
			}
			return runSubmit(cmd, app, contract.NewSubmitRequest(inst.ID, user, answers), asJSON)
		},
	}
	addUserFlag(cmd, &user)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	return cmd
}

type takeKeyMap struct {
	Quit key.Binding
}

func defaultTakeKeys() takeKeyMap {
	return takeKeyMap{
		Quit: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit without saving")),
	}
}

// takeModel runs the questionnaire form and lets the user abandon it.
type takeModel struct {
	inst      *domain.Instrument
	form      *huh.Form
	values    []float64
	keys      takeKeyMap
	cancelled bool
}

func newTakeModel(inst *domain.Instrument) *takeModel {
	m := &takeModel{
		inst:   inst,
		values: make([]float64, len(inst.Questions)),
		keys:   defaultTakeKeys(),
	}
	options := scaleOptions(inst.Scale)
	groups := make([]*huh.Group, len(inst.Questions))
	for i, q := range inst.Questions {
		m.values[i] = inst.Scale.Min
		groups[i] = huh.NewGroup(
			huh.NewSelect[float64]().
				Title(fmt.Sprintf("%d/%d  %s", i+1, len(inst.Questions), q.Text)).
				Options(options...).
				Value(&m.values[i]),
		)
	}
	m.form = huh.NewForm(groups...).WithTheme(psycheHuhTheme()).WithShowHelp(false)
	return m
}

// scaleOptions lists every whole step of the scale.
func scaleOptions(s domain.Scale) []huh.Option[float64] {
	var opts []huh.Option[float64]
	for v := s.Min; v <= s.Max; v++ {
		opts = append(opts, huh.NewOption(strconv.FormatFloat(v, 'f', -1, 64), v))
	}
	return opts
}

func (m *takeModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *takeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Quit) {
		m.cancelled = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m, tea.Quit
	case huh.StateAborted:
		m.cancelled = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *takeModel) View() string {
	if m.form.State != huh.StateNormal {
		return ""
	}
	return formatter.Bold(m.inst.Title) + "\n" + formatter.Dim(m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc) + "\n\n" + m.form.View()
}

func (m *takeModel) answers() domain.AnswerSet {
	out := make(domain.AnswerSet, len(m.inst.Questions))
	for i, q := range m.inst.Questions {
		out[q.ID] = m.values[i]
	}
	return out
}

func runQuestionnaire(app *App, inst *domain.Instrument) (domain.AnswerSet, error) {
	var opts []tea.ProgramOption
	in, out := app.TakeInput, app.TakeOutput
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	opts = append(opts, tea.WithInput(in), tea.WithOutput(out))

	final, err := tea.NewProgram(newTakeModel(inst), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("running questionnaire: %w", err)
	}
	m := final.(*takeModel)
	if m.cancelled {
		return nil, errTakeCancelled
	}
	return m.answers(), nil
}
