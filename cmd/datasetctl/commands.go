package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"plotpirate/server/internal/database"
	"plotpirate/server/internal/dataset"
	"plotpirate/server/internal/search"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	datasetPath string
	sqlitePath  string
	verbose     bool
}

func (o *rootOptions) source() dataset.Source {
	return dataset.Source{Path: o.datasetPath, SQLitePath: o.sqlitePath}
}

func newRootCmd(logger *logrus.Logger, out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "datasetctl",
		Short:        "Inspect and convert listing datasets",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.SetLevel(logrus.DebugLevel)
			} else {
				logger.SetLevel(logrus.WarnLevel)
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "dataset JSON file (default: embedded dataset)")
	root.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "", "SQLite snapshot to read instead of a JSON file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newValidateCmd(opts, logger),
		newStatsCmd(opts, logger),
		newExportCmd(opts, logger),
	)
	return root
}

func newValidateCmd(opts *rootOptions, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset against the schema and listing invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := dataset.Open(opts.source(), logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d listings\n", repo.Len())
			return nil
		},
	}
}

func newStatsCmd(opts *rootOptions, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the filter facets of a dataset as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := dataset.Open(opts.source(), logger)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(search.NewService(repo, logger).Facets())
		},
	}
}

func newExportCmd(opts *rootOptions, logger *logrus.Logger) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dataset into a SQLite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return errors.New("--out is required")
			}
			if outPath == opts.sqlitePath {
				return errors.New("--out must differ from --sqlite")
			}

			repo, err := dataset.Open(opts.source(), logger)
			if err != nil {
				return err
			}

			db, err := database.NewDatabase(outPath, false, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunMigrations(); err != nil {
				return err
			}
			if err := db.ReplaceListings(repo.All()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d listings to %s\n", repo.Len(), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "snapshot file to write")
	return cmd
}
