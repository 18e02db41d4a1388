package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inertia-go/inertia/internal/errors"
)

func explainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [code]",
		Short: "Describe an error code",
		Long: `Describe a diagnostic code printed by this CLI.

Without an argument, lists every known code.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listCodes()
				return nil
			}

			code := strings.ToUpper(args[0])
			if _, ok := errors.GetTemplate(code); !ok {
				return errors.Newf(errors.CategoryCLI, "unknown error code %q", args[0])
			}
			fmt.Print(errors.New(code).Format())
			return nil
		},
	}

	return cmd
}

func listCodes() {
	codes := errors.GetAllCodes()
	sort.Strings(codes)

	for _, code := range codes {
		tpl, _ := errors.GetTemplate(code)
		fmt.Printf("  %s  %-7s %s\n", code, tpl.Category, tpl.Message)
	}
}
