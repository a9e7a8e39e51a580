package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"protocolkb/internal/config"
	"protocolkb/internal/core"
	"protocolkb/internal/logging"
	"protocolkb/plugins/parasite"
)

// validFormats are the accepted values of --format.
var validFormats = []string{"text", "json"}

// rootOptions holds global flags plus the state PersistentPreRunE builds.
type rootOptions struct {
	configPath string
	verbose    bool
	format     string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "protocolkb",
		Short: "Parasite-cleanse protocol knowledge base",
		Long: `protocolkb catalogs herbal parasite-cleanse protocols, filters them by
ailment, intensity, evidence tier, category and region, and recommends the
best matching protocols for a set of reported conditions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logOpts := logging.Options{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
				Verbose:     opts.verbose,
			}
			if cmd.Name() == "serve" {
				opts.logger, err = logging.New(logOpts)
			} else {
				opts.logger, err = logging.NewWriter(cmd.ErrOrStderr(), logOpts)
			}
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (text|json)")

	cmd.AddCommand(
		newServeCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newRecommendCommand(opts),
		newFacetsCommand(opts),
		newValidateCommand(opts),
		newAuditCommand(opts),
	)
	return cmd
}

// loadCatalog builds the catalog from the bundled dataset. Invalid data is
// fatal for every command.
func loadCatalog() (*core.Catalog, error) {
	catalog, err := core.BuildCatalog(parasite.New())
	if err != nil {
		return nil, fmt.Errorf("load protocol catalog: %w", err)
	}
	return catalog, nil
}

func (o *rootOptions) service(extra ...core.ServiceOption) (*core.Service, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	opts := append([]core.ServiceOption{core.WithLogger(o.logger)}, extra...)
	return core.NewService(catalog, opts...), nil
}
