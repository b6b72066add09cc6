package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/psyche/internal/aggregate"
	"github.com/alexanderramin/psyche/internal/contract"
	"github.com/alexanderramin/psyche/internal/domain"
	"github.com/alexanderramin/psyche/internal/instrument"
	"github.com/alexanderramin/psyche/internal/logging"
	"github.com/alexanderramin/psyche/internal/recommend"
	"github.com/alexanderramin/psyche/internal/repository"
	"github.com/alexanderramin/psyche/internal/service"
	"github.com/alexanderramin/psyche/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	registry, err := instrument.Load("")
	require.NoError(t, err)

	resultRepo := repository.NewSQLiteResultRepo(database)
	interpRepo := repository.NewSQLiteInterpretationRepo(database)
	moodRepo := repository.NewSQLiteMoodRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	contentRepo := repository.NewSQLiteContentRepo(database)
	log := logging.Discard()

	profiles := service.NewProfileService(resultRepo, moodRepo, profileRepo, uow, registry, nil,
		aggregate.DefaultThresholds(), log)

	return &App{
		Instruments:     registry,
		Submissions:     service.NewSubmissionService(registry, uow, profiles, log),
		Results:         service.NewResultService(resultRepo, interpRepo),
		Profiles:        profiles,
		Recommendations: service.NewRecommendationService(profiles, recommend.New(contentRepo, log)),
		Moods:           service.NewMoodService(moodRepo, profiles, log),
		Content:         service.NewContentService(contentRepo, uow),
		// IsInteractive left nil: tests never have a terminal.
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func gad7Flags(v string) []string {
	args := []string{"submit", "gad7"}
	for _, id := range []string{"gad1", "gad2", "gad3", "gad4", "gad5", "gad6", "gad7"} {
		args = append(args, "--answer", id+"="+v)
	}
	return args
}

// --- instruments ---

func TestInstrumentsList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "instruments", "list")
	require.NoError(t, err)
	for _, id := range []string{"gad7", "phq9", "pss10", "rses", "type4", "bigfive"} {
		assert.Contains(t, out, id)
	}
}

func TestInstrumentsShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "instruments", "show", "gad7")
	require.NoError(t, err)
	assert.Contains(t, out, "GAD-7 Generalized Anxiety")
	assert.Contains(t, out, "Trouble relaxing")

	_, err = executeCmd(t, app, "instruments", "show", "nope")
	require.ErrorIs(t, err, instrument.ErrUnknownInstrument)
}

// --- submit ---

func TestSubmit_Flags(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, gad7Flags("2")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Moderate anxiety")
	assert.NotContains(t, out, "not saved")

	results, err := app.Results.List(context.Background(), DefaultUser, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "gad7", results[0].InstrumentID)
}

func TestSubmit_JSON(t *testing.T) {
	app := testApp(t)

	args := append(gad7Flags("0"), "--json", "--user", "alice")
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err)

	var resp contract.SubmitResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Stored)
	assert.Equal(t, "alice", resp.Result.UserID)
	assert.Equal(t, "minimal", resp.Result.Classification.TierID)
	assert.Equal(t, contract.ProfileRefreshed, resp.ProfileRefresh)
}

func TestSubmit_AnswersFileWithFlagOverride(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gad1: 3\ngad2: 3\ngad3: 3\ngad4: 3\ngad5: 3\ngad6: 3\ngad7: 3\n"), 0o644))

	out, err := executeCmd(t, app, "submit", "gad7", "--answers-file", path, "--json", "--answer", "gad1=0,gad2=0")
	require.NoError(t, err)

	var resp contract.SubmitResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 7, resp.Result.Answered)
	assert.InDelta(t, 15.0/7.0, resp.Result.Overall, 0.01)
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad answer syntax", []string{"submit", "gad7", "--answer", "gad1"}, "question=value"},
		{"non-numeric value", []string{"submit", "gad7", "--answer", "gad1=often"}, "not a number"},
		{"no answers", []string{"submit", "gad7"}, string(contract.ErrEmptyAnswers)},
		{"unknown instrument", []string{"submit", "nope", "--answer", "q1=1"}, string(contract.ErrUnknownInstrument)},
		{"missing answers file", []string{"submit", "gad7", "--answers-file", "/does/not/exist.yaml"}, "exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(t)
			_, err := executeCmd(t, app, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// --- results ---

func TestResultsList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "results", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No results yet")

	_, err = executeCmd(t, app, gad7Flags("1")...)
	require.NoError(t, err)

	out, err = executeCmd(t, app, "results", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "GAD-7 Generalized Anxiety")

	out, err = executeCmd(t, app, "results", "list", "--user", "someone-else")
	require.NoError(t, err)
	assert.Contains(t, out, "No results yet")
}

// --- mood ---

func TestMoodLogAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "mood", "log", "--mood", "good", "--note", "walked")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged")
	assert.Contains(t, out, "good")

	out, err = executeCmd(t, app, "mood", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "walked")
}

func TestMoodLog_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "mood", "log")
	require.Error(t, err)

	_, err = executeCmd(t, app, "mood", "log", "--mood", "ecstatic")
	var moodErr *contract.MoodError
	require.ErrorAs(t, err, &moodErr)
	assert.Equal(t, contract.ErrInvalidMood, moodErr.Code)

	_, err = executeCmd(t, app, "mood", "log", "--mood", "good", "--date", "03/01/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestMoodLog_Date(t *testing.T) {
	app := testApp(t)
	day := time.Now().UTC().AddDate(0, 0, -2).Format(domain.DayLayout)

	out, err := executeCmd(t, app, "mood", "log", "--mood", "low", "--date", day)
	require.NoError(t, err)
	assert.Contains(t, out, day)
}

// --- profile ---

func TestProfileShow_ColdStartJSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "profile", "show", "--json")
	require.NoError(t, err)

	var p domain.MentalHealthProfile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, DefaultUser, p.UserID)
	assert.Equal(t, domain.PhaseColdStart, p.Phase)
	assert.Equal(t, domain.RiskUnknown, p.RiskLevel)
}

func TestProfileRefresh_AfterSubmit(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, gad7Flags("3")...)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "profile", "refresh")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "profile", "show", "--json")
	require.NoError(t, err)
	var p domain.MentalHealthProfile
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, domain.PhaseTestsOnly, p.Phase)
	assert.Equal(t, domain.RiskHigh, p.RiskLevel)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.CombinedReport)
}

// --- content and recommend ---

func TestContentImportAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "content", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is empty")

	out, err = executeCmd(t, app, "content", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "starter catalog")

	starter, err := app.Content.List(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, starter)

	out, err = executeCmd(t, app, "content", "list", "--category", starter[0].Category)
	require.NoError(t, err)
	assert.Contains(t, out, starter[0].ID)
}

func TestContentImport_File(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`items:
  - {id: box-breathing, title: Box breathing, category: stress, type: exercise, difficulty: easy}
  - {id: gratitude-list, title: Three good things, category: balanced, type: worksheet}
`), 0o644))

	out, err := executeCmd(t, app, "content", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 items")

	out, err = executeCmd(t, app, "content", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "box-breathing")
	assert.Contains(t, out, "gratitude-list")
}

func TestRecommend_EmptyCatalogJSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "recommend", "--json")
	require.NoError(t, err)

	var rec domain.RecommendationResult
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.True(t, rec.Fallback)
	assert.Equal(t, recommend.DefaultPayload().ContentID, rec.ContentID)
}

func TestRecommend_AfterImport(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "content", "import")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "recommend")
	require.NoError(t, err)
	assert.Contains(t, out, "RECOMMENDED")
}

// --- take ---

func TestTake_RefusesWithoutTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "take", "gad7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit gad7 --answer")
}

func TestTake_UnknownInstrument(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }

	_, err := executeCmd(t, app, "take", "nope")
	require.ErrorIs(t, err, instrument.ErrUnknownInstrument)
}

func TestResultsShow(t *testing.T) {
	app := testApp(t)
	args := append(gad7Flags("2"), "--json")
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err)
	var resp contract.SubmitResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	out, err = executeCmd(t, app, "results", "show", resp.Result.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Moderate anxiety")
	assert.Contains(t, out, "INTERPRETATION")

	_, err = executeCmd(t, app, "results", "show", "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
