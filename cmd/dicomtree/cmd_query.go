package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FrodeRanders/dicom-tools/model"
	"github.com/FrodeRanders/dicom-tools/xpath"
)

var queryCmd = &cobra.Command{
	Use:   "query <expression> <file>...",
	Short: "Evaluate a path expression against DICOM files",
	Long: `Compiles a path expression once and evaluates it against every
given document. Matching attributes print as name and value; matching
elements print as their header line.

Examples:
  dicomtree query '//ConceptNameCodeSequence/@CodeValue' report.dcm
  dicomtree query "//ConceptNameCodeSequence[@CodingSchemeDesignator='DCM']" DICOMDIR`,
	Args: cobra.MinimumNArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	expr, err := xpath.Compile(args[0])
	if err != nil {
		return err
	}

	docs, err := loadDocuments(args[1:])
	if err != nil {
		return err
	}

	for _, doc := range docs {
		nodes := expr.SelectNodes(doc.Root())
		if len(nodes) == 0 {
			continue
		}

		fmt.Printf("%s:\n", doc.Name())
		for _, node := range nodes {
			switch n := node.(type) {
			case *model.Attribute:
				fmt.Print(n.AsText("  "))
			case *model.Element:
				fmt.Printf("  %s\n", n.String())
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
