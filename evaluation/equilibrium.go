// SPDX-License-Identifier: MIT

package evaluation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/units"
)

const (
	opThermalEq = "ThermalEquilibrium"
	opDephEq    = "DephasingEquilibrium"
)

// eigenbasis returns the eigenvalues and the complex eigenvector matrix
// (columns) of ham without ground state.
func eigenbasis(ham *hamiltonian.Hamiltonian) ([]float64, *matrix.CDense, error) {
	vals, vecs, err := ham.Eigensystem()
	if err != nil {
		return nil, nil, err
	}

	return vals, vecs.ToComplex(), nil
}

// ThermalEquilibrium returns the Gibbs state Σ_i p_i|v_i⟩⟨v_i| with
// p_i ∝ exp(−E_i/(k_B·T)), energies converted to Joule, in the site (or
// pair) basis without ground state. At T = 0 it is the projector on the
// lowest eigenstate.
// Errors: ErrNilInput, ErrInvalidTemperature, units.ErrUnknownUnit.
func ThermalEquilibrium(ham *hamiltonian.Hamiltonian, temperature float64) (*matrix.CDense, error) {
	if ham == nil {
		return nil, evalErrorf(opThermalEq, ErrNilInput)
	}
	if temperature < 0 || math.IsNaN(temperature) || math.IsInf(temperature, 0) {
		return nil, fmt.Errorf("%s: T=%v: %w", opThermalEq, temperature, ErrInvalidTemperature)
	}
	toJ, err := ham.Unit().InJoule()
	if err != nil {
		return nil, evalErrorf(opThermalEq, err)
	}
	vals, vecs, err := eigenbasis(ham)
	if err != nil {
		return nil, evalErrorf(opThermalEq, err)
	}
	n := len(vals)
	weights := make([]float64, n)
	if temperature == 0 {
		weights[0] = 1
	} else {
		// shifting by the lowest energy leaves the normalized weights unchanged
		var z float64
		for i, v := range vals {
			weights[i] = math.Exp(-(v - vals[0]) * toJ / (units.Boltzmann * temperature))
			z += weights[i]
		}
		for i := range weights {
			weights[i] /= z
		}
	}
	diag, err := matrix.NewCDense(n, n)
	if err != nil {
		return nil, evalErrorf(opThermalEq, err)
	}
	for i, w := range weights {
		if err = diag.Set(i, i, complex(w, 0)); err != nil {
			return nil, evalErrorf(opThermalEq, err)
		}
	}
	out, err := basis.GlobalToLocal(diag, vecs, false)
	if err != nil {
		return nil, evalErrorf(opThermalEq, err)
	}

	return out, nil
}

// DephasingEquilibrium returns the long-time state of pure dephasing:
//
//	LocalDephasing:  I/dim, dim = ham.Dim()
//	GlobalDephasing: ρ0 with its eigenbasis coherences removed
//
// With relaxation ρ0 may carry the ground state; it is kept as is and
// only the excited block is dephased.
// Errors: ErrNilInput, ErrNoDephasing, matrix.ErrDimensionMismatch.
func DephasingEquilibrium(ham *hamiltonian.Hamiltonian, deph dissipator.Dephasing, rho0 *matrix.CDense) (*matrix.CDense, error) {
	if ham == nil || rho0 == nil {
		return nil, evalErrorf(opDephEq, ErrNilInput)
	}
	switch d := deph.(type) {
	case dissipator.LocalDephasing:
		if d.Rate == 0 {
			break
		}
		out, err := matrix.NewCIdentity(ham.Dim())
		if err != nil {
			return nil, evalErrorf(opDephEq, err)
		}
		out.ScaleInPlace(complex(1/float64(ham.Dim()), 0))
		return out, nil
	case dissipator.GlobalDephasing:
		if d.Rate == 0 {
			break
		}
		out, err := dephaseGlobal(ham, rho0)
		if err != nil {
			return nil, evalErrorf(opDephEq, err)
		}
		return out, nil
	}

	return nil, evalErrorf(opDephEq, ErrNoDephasing)
}

func dephaseGlobal(ham *hamiltonian.Hamiltonian, rho0 *matrix.CDense) (*matrix.CDense, error) {
	if rho0.Rows() != ham.Dim() || rho0.Cols() != ham.Dim() {
		return nil, matrix.ErrDimensionMismatch
	}
	_, vecs, err := eigenbasis(ham)
	if err != nil {
		return nil, err
	}
	block := rho0
	if ham.Relaxation() {
		if block, err = matrix.DeleteGroundstateC(rho0); err != nil {
			return nil, err
		}
	}
	glob, err := basis.LocalToGlobal(block, vecs, false)
	if err != nil {
		return nil, err
	}
	diag, err := matrix.NewCDense(glob.Rows(), glob.Cols())
	if err != nil {
		return nil, err
	}
	for i, v := range glob.Diag() {
		if err = diag.Set(i, i, v); err != nil {
			return nil, err
		}
	}
	out, err := basis.GlobalToLocal(diag, vecs, false)
	if err != nil {
		return nil, err
	}
	if !ham.Relaxation() {
		return out, nil
	}
	if out, err = matrix.AddGroundstateC(out); err != nil {
		return nil, err
	}
	gs, err := rho0.At(0, 0)
	if err != nil {
		return nil, err
	}
	if err = out.Set(0, 0, gs); err != nil {
		return nil, err
	}

	return out, nil
}
