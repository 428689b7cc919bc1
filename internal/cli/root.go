package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vibecode_spa/internal/bootstrap"
	"vibecode_spa/internal/config"
	"vibecode_spa/internal/logging"
)

// runtime is what every subcommand needs after startup
type runtime struct {
	cfg    config.Config
	logger *log.Logger
}

// NewRootCommand builds the vibecode command tree. Running it without a
// subcommand starts the server.
func NewRootCommand(stderr io.Writer) *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "vibecode",
		Short:         "Serve the Vibecode SPA landing page",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dotenv := config.LoadDotenv()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, stderr)
			if err != nil {
				return err
			}
			if !dotenv {
				logger.Debug("No .env file found, using system environment")
			}

			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
	}

	serve := newServeCommand(rt)
	root.RunE = serve.RunE

	root.AddCommand(serve, newExportCommand(rt), newRoutesCommand(rt))
	return root
}

func (rt *runtime) options() []bootstrap.Option {
	return []bootstrap.Option{
		bootstrap.WithLogger(rt.logger),
		bootstrap.WithStrictMode(rt.cfg.IsDev()),
		bootstrap.WithTitle(rt.cfg.Title),
	}
}
