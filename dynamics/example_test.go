// SPDX-License-Identifier: MIT
package dynamics_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/topology"
	"github.com/katalvlaran/qdna/units"
)

// ExampleNew shows the resolution guard: 5 points cannot resolve 10 fs.
func ExampleNew() {
	seq, _ := sequence.New("GC", topology.WM)
	model, _ := topology.Build(topology.WM, seq.Dims())
	tab, _ := params.NewTable(params.Key{Source: "dimer", Particle: "electron", Model: "WM"}, units.HundredMeV,
		map[string]float64{"E_G": 0, "E_C": 0, "t_GC": 0.7})
	ham, _ := hamiltonian.New(context.Background(), model, seq, params.NewMemorySource(tab),
		hamiltonian.WithSource("dimer"), hamiltonian.WithDescription(hamiltonian.OneParticle))
	diss, _ := dissipator.New(ham)

	_, err := dynamics.New(ham, diss, dynamics.WithTEnd(10), dynamics.WithTSteps(5))
	fmt.Println(errors.Is(err, qerr.ErrNumericGuard))

	e, _ := dynamics.New(ham, diss, dynamics.WithTEnd(10), dynamics.WithTSteps(11))
	fmt.Println(len(e.Times()), e.Times()[1])
	// Output:
	// true
	// 11 1
}
