package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpRecurse bool

var dumpCmd = &cobra.Command{
	Use:   "dump <file>...",
	Short: "Render DICOM files as document trees",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	docs, err := loadDocuments(args)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		fmt.Println(doc.Root().AsText(dumpRecurse))
	}
	return nil
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpRecurse, "recurse", true, "descend into nested sequence items")
	rootCmd.AddCommand(dumpCmd)
}
