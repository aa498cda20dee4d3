/*
Copyright © 2026 the lagrangian authors.
This file is part of lagrangian.

lagrangian is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

lagrangian is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with lagrangian.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"

	"github.com/oceanlab/lagrangian"
	"github.com/spf13/cobra"
)

// configFile specifies the location of the run configuration file.
var configFile string

func init() {
	Root.AddCommand(versionCmd)
	Root.AddCommand(mapCmd)

	Root.PersistentFlags().StringVar(&configFile, "config", "./lagrangian.toml", "run configuration file location")
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "lagrangian",
	Short: "Finite-time and finite-size Lyapunov exponent maps from gridded velocity data.",
	Long: `lagrangian computes Lagrangian coherent structure diagnostics (FTLE, FSLE)
by advecting dense stencils of particles through a time-varying velocity
field and measuring how far they stretch apart.`,
	DisableAutoGenTag: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lagrangian v%s\n", lagrangian.Version)
	},
	DisableAutoGenTag: true,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Compute a map of Lyapunov exponents.",
	Long: `map reads the run configuration and the velocity field it describes,
advects a stencil per output grid cell over the configured time span, and
writes the resulting exponent grids to the configured output file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := ReadConfigFile(configFile)
		if err != nil {
			return err
		}
		return RunMap(cfg)
	},
	DisableAutoGenTag: true,
}
