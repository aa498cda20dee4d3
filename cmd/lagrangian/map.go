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
	"math"
	"strings"

	"github.com/oceanlab/lagrangian"
	"github.com/oceanlab/lagrangian/internal/result"
)

// RunMap executes a full Field -> Integrator -> MapEngine run from a parsed
// configuration and writes the resulting exponent grids to cfg.OutputFile.
func RunMap(cfg *ConfigData) error {
	lagrangian.SetVerbose(cfg.Verbose)

	vel, err := readVelocityConfig(cfg.VelocityConfig)
	if err != nil {
		return err
	}

	u, err := lagrangian.NewTimeSeries(vel.uFiles, vel.uName, cfg.VelocityUnit, vel.fillValue, cfg.PoolSize)
	if err != nil {
		return fmt.Errorf("lagrangian: u component: %w", err)
	}
	v, err := lagrangian.NewTimeSeries(vel.vFiles, vel.vName, cfg.VelocityUnit, vel.fillValue, cfg.PoolSize)
	if err != nil {
		return fmt.Errorf("lagrangian: v component: %w", err)
	}

	coords := lagrangian.Cartesian
	if cfg.SphericalEquatorial {
		coords = lagrangian.SphericalEquatorial
	}
	field := lagrangian.NewTimeSeriesField(u, v, lagrangian.Metric, coords)

	mode, err := parseMode(cfg.Mode)
	if err != nil {
		return err
	}
	stencilKind, err := parseStencilKind(cfg.Stencil)
	if err != nil {
		return err
	}

	integrator, err := lagrangian.NewIntegrator(
		cfg.StartTime, cfg.EndTime, cfg.TimeStep, mode, cfg.MinSeparation, cfg.Delta, field)
	if err != nil {
		return fmt.Errorf("lagrangian: %w", err)
	}

	props := lagrangian.NewMapProperties(cfg.Grid.NX, cfg.Grid.NY, cfg.Grid.XMin, cfg.Grid.YMin, cfg.Grid.Step)
	engine := lagrangian.NewMapEngine(props)

	if cfg.MaskFile != "" {
		mask := lagrangian.NewGridReader()
		if err := mask.Open(cfg.MaskFile); err != nil {
			return fmt.Errorf("lagrangian: mask file: %w", err)
		}
		if err := mask.Load(cfg.MaskVariable, cfg.VelocityUnit); err != nil {
			return fmt.Errorf("lagrangian: mask file: %w", err)
		}
		if err := engine.InitializeMasked(integrator, mask, stencilKind); err != nil {
			return fmt.Errorf("lagrangian: %w", err)
		}
	} else {
		if err := engine.Initialize(integrator, stencilKind); err != nil {
			return fmt.Errorf("lagrangian: %w", err)
		}
	}

	if err := engine.Compute(integrator, cfg.NumWorkers); err != nil {
		return fmt.Errorf("lagrangian: %w", err)
	}

	set := result.Set{Grids: []result.Grid{
		result.FromDenseArray("lambda1", engine.GetMapOfLambda1(integrator, math.NaN())),
		result.FromDenseArray("lambda2", engine.GetMapOfLambda2(integrator, math.NaN())),
		result.FromDenseArray("theta1", engine.GetMapOfTheta1(integrator, math.NaN())),
		result.FromDenseArray("theta2", engine.GetMapOfTheta2(integrator, math.NaN())),
		result.FromDenseArray("delta_t", engine.GetMapOfDeltaT(integrator, math.NaN())),
		result.FromDenseArray("final_separation", engine.GetMapOfFinalSeparation(integrator, math.NaN())),
	}}

	if err := result.WriteFile(cfg.OutputFile, set); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", cfg.OutputFile)
	return nil
}

func parseMode(s string) (lagrangian.Mode, error) {
	switch strings.ToLower(s) {
	case "fsle":
		return lagrangian.FSLE, nil
	case "ftle":
		return lagrangian.FTLE, nil
	default:
		return 0, fmt.Errorf("lagrangian: unknown mode %q (want \"fsle\" or \"ftle\")", s)
	}
}

func parseStencilKind(s string) (lagrangian.StencilKind, error) {
	switch strings.ToLower(s) {
	case "", "triplet":
		return lagrangian.TripletStencil, nil
	case "quintuplet":
		return lagrangian.QuintupletStencil, nil
	default:
		return 0, fmt.Errorf("lagrangian: unknown stencil %q (want \"triplet\" or \"quintuplet\")", s)
	}
}
