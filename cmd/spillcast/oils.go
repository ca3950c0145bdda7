package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tidemark/spillcast/pkg/spill"
)

func oilsCommand() *cobra.Command {
	var oilFile string

	cmd := &cobra.Command{
		Use:   "oils",
		Short: "List the oil reference set",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := loadOils(oilFile)
			if err != nil {
				return err
			}

			tw := newTable()
			fmt.Fprintln(tw, "NAME\tDENSITY (g/cm³)\tVISCOSITY (cP)\tEVAP RATE\tSOLUBILITY\tPERSISTENCE\tCLEANUP\tCO2 (t/bbl)\tTOXICITY")
			fmt.Fprintln(tw, "----\t---------------\t--------------\t---------\t----------\t-----------\t-------\t-----------\t--------")
			for _, name := range db.Names() {
				oil, _ := db.Lookup(name)
				fmt.Fprintf(tw, "%s\t%.2f\t%.1f\t%.2f\t%.3f\t%.2f\t%.1f\t%.1f\t%s\n",
					name, oil.Density, oil.Viscosity, oil.EvaporationRate, oil.Solubility,
					oil.PersistenceFactor, oil.CleanupDifficulty, oil.CO2EmissionFactor,
					oil.EnvironmentalToxicity)
			}
			tw.Flush()

			fmt.Println()
			fmt.Printf("location types: %s\n", strings.Join(spill.DefaultTables().LocationTypes(), ", "))
			return nil
		},
	}

	cmd.Flags().StringVar(&oilFile, "oil-file", "", "JSON file of oil types merged over the builtin set")
	return cmd
}
