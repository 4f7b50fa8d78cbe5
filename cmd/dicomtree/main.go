// Command dicomtree inspects DICOM files: it renders them as document
// trees, evaluates path expressions against them and serves them over
// HTTP.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FrodeRanders/dicom-tools/dicom"
	"github.com/FrodeRanders/dicom-tools/loader"
	"github.com/FrodeRanders/dicom-tools/model"
)

var (
	// Global flags
	verbose        bool
	asDicomdir     bool
	loadReferenced bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dicomtree",
	Short: "Inspect and query DICOM documents",
	Long: `dicomtree reads DICOM files and DICOMDIR media directories,
renders them as readable document trees and evaluates path
expressions against them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		dicom.SetLogger(logger)
		model.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// isDicomdir reports whether path should be loaded as a DICOMDIR.
func isDicomdir(path string) bool {
	return asDicomdir || strings.EqualFold(filepath.Base(path), "DICOMDIR")
}

// loadDocuments loads every path, expanding DICOMDIR files into the
// documents they reference.
func loadDocuments(paths []string) ([]*model.Document, error) {
	var docs []*model.Document
	fileLoader := loader.New(loader.WithLogger(logger))

	for _, path := range paths {
		if isDicomdir(path) {
			dirLoader := loader.NewDirLoader(
				loader.WithLogger(logger),
				loader.WithReferencedFiles(loadReferenced),
			)
			if _, err := dirLoader.Load(path); err != nil {
				return nil, err
			}
			docs = append(docs, dirLoader.Documents()...)
			continue
		}

		doc, err := fileLoader.Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asDicomdir, "dicomdir", false, "treat input files as DICOMDIR directories")
	rootCmd.PersistentFlags().BoolVar(&loadReferenced, "referenced", true, "load the files a DICOMDIR references")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
