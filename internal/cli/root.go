package cli

import (
	"io"
	"time"

	"github.com/alexanderramin/psyche/internal/instrument"
	"github.com/alexanderramin/psyche/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// DefaultUser is used when --user is not given.
const DefaultUser = "local"

// App holds everything CLI commands call into.
type App struct {
	Instruments     *instrument.Registry
	Submissions     service.SubmissionService
	Results         service.ResultService
	Profiles        service.ProfileService
	Recommendations service.RecommendationService
	Moods           service.MoodService
	Content         service.ContentService

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// NarrativeEnabled shows a spinner while the profile narrative is written.
	NarrativeEnabled bool
	// TakeInput and TakeOutput override the terminal for `take`.
	TakeInput  io.Reader
	TakeOutput io.Writer
	Now        func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// RegisterGlobalFlags adds the flags that are read before commands are
// built: config file, database path and log level.
func RegisterGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Config file (default ./psyche.yaml or ~/.psyche/psyche.yaml)")
	fs.String("db", "", "SQLite database path")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
}

// NewRootCmd creates the top-level "psyche" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "psyche",
		Short:         "Self-assessment tests, mood tracking and a longitudinal profile",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	RegisterGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newInstrumentsCmd(app),
		newSubmitCmd(app),
		newTakeCmd(app),
		newResultsCmd(app),
		newMoodCmd(app),
		newProfileCmd(app),
		newRecommendCmd(app),
		newContentCmd(app),
	)
	return root
}

func addUserFlag(cmd *cobra.Command, user *string) {
	cmd.Flags().StringVarP(user, "user", "u", DefaultUser, "User ID")
}
