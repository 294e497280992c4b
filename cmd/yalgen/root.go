package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yalgen/yalgen/internal/version"
	"github.com/yalgen/yalgen/pkg/config"
	"github.com/yalgen/yalgen/pkg/errors"
	"github.com/yalgen/yalgen/pkg/generator"
	"github.com/yalgen/yalgen/pkg/logging"
	"github.com/yalgen/yalgen/pkg/paths"
	"github.com/yalgen/yalgen/pkg/writer"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity   int
		outputDir   string
		projectsDir string
	)

	rootCmd := &cobra.Command{
		Use:   "yalgen [CONFIGURATION_FILE]",
		Short: "Generates source files of the libyal libraries",
		Long: `yalgen generates source files of the libyal family of libraries: it reads
a source generation configuration file and template assets, and emits
populated library source stubs and a man page.

Without --output the generated files are printed to the console for
inspection instead of being written to disk.`,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := paths.DefaultConfigFile
			if len(args) > 0 {
				configFile = args[0]
			}
			return runGenerate(afero.NewOsFs(), configFile, outputDir, projectsDir)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "path of the output files to write to")
	rootCmd.Flags().StringVarP(&projectsDir, "projects", "p", "", "path of the projects")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// runGenerate is the whole pipeline: load configuration, resolve the
// template directories, run each generator against the output writer.
func runGenerate(fs afero.Fs, configFile, outputDir, projectsDir string) error {
	logger := logging.GetLogger("cmd.generate")

	if exists, err := afero.Exists(fs, configFile); err != nil || !exists {
		return errors.Newf(errors.ErrInvalidInput,
			"no such configuration file: %s", configFile)
	}

	if outputDir != "" {
		if isDir, err := afero.IsDir(fs, outputDir); err != nil || !isDir {
			return errors.Newf(errors.ErrDirNotFound,
				"no such output directory: %s", outputDir)
		}
	}

	cfg, err := config.Load(fs, configFile)
	if err != nil {
		return err
	}

	p, err := paths.New(projectsDir)
	if err != nil {
		return err
	}

	logger.Info().
		Str("library", cfg.LibraryName).
		Str("projects", p.ProjectsDir()).
		Msg("Generating source files")

	var out writer.OutputWriter
	if outputDir != "" {
		out = writer.NewFileWriter(fs, outputDir)
	} else {
		out = writer.NewConsoleWriter(os.Stdout)
	}

	generators := []generator.Generator{
		generator.NewLibrarySourceGenerator(
			fs, p.ProjectsDir(), p.TemplateDir(paths.LibraryTemplatesDir)),
		generator.NewManPageGenerator(
			fs, p.ProjectsDir(), p.TemplateDir(paths.ManPageTemplatesDir)),
	}
	for _, g := range generators {
		if err := g.Generate(cfg, out); err != nil {
			return err
		}
	}

	logger.Info().Msg("Source generation completed")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("yalgen version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
