// SPDX-License-Identifier: MIT
package basis_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/stretchr/testify/require"
)

func mustIndexer(t *testing.T, strands, sites int) basis.Indexer {
	t.Helper()
	x, err := basis.NewIndexer(strands, sites)
	require.NoError(t, err)

	return x
}

func TestNewIndexerRejectsEmptyDims(t *testing.T) {
	_, err := basis.NewIndexer(0, 3)
	require.ErrorIs(t, err, basis.ErrInvalidDims)
	require.ErrorIs(t, err, qerr.ErrConfiguration)
}

func TestTBBasisOrder(t *testing.T) {
	x := mustIndexer(t, 2, 2)
	require.Equal(t, []string{"(0, 0)", "(0, 1)", "(1, 0)", "(1, 1)"}, x.Labels())
}

// TestBijections walks every index through label and tuple and back.
func TestBijections(t *testing.T) {
	for _, d := range []basis.Dims{{Strands: 1, Sites: 1}, {Strands: 1, Sites: 5}, {Strands: 2, Sites: 3}, {Strands: 4, Sites: 7}} {
		x := mustIndexer(t, d.Strands, d.Sites)
		require.Equal(t, d.Size(), len(x.TBBasis()))
		for idx := 0; idx < x.Size(); idx++ {
			label, err := x.Label(idx)
			require.NoError(t, err)
			back, err := x.Index(label)
			require.NoError(t, err)
			require.Equal(t, idx, back)

			site, err := basis.ParseLabel(label)
			require.NoError(t, err)
			require.Equal(t, label, site.Label())
			si, err := x.SiteIndex(site)
			require.NoError(t, err)
			require.Equal(t, idx, si)
		}
		for idx := 0; idx < x.EHSize(); idx++ {
			p, err := x.EHPair(idx)
			require.NoError(t, err)
			back, err := x.EHIndex(p)
			require.NoError(t, err)
			require.Equal(t, idx, back)
		}
	}
}

func TestOutOfRangeAndBadLabels(t *testing.T) {
	x := mustIndexer(t, 1, 3)

	_, err := x.Label(3)
	require.ErrorIs(t, err, basis.ErrOutOfRange)
	_, err = x.Site(-1)
	require.ErrorIs(t, err, basis.ErrOutOfRange)
	_, err = x.Index("(1, 0)")
	require.ErrorIs(t, err, basis.ErrOutOfRange)
	_, err = x.EHPair(9)
	require.ErrorIs(t, err, basis.ErrOutOfRange)
	_, err = x.EHIndex(basis.Pair{Electron: basis.Site{Strand: 0, Index: 0}, Hole: basis.Site{Strand: 0, Index: 3}})
	require.ErrorIs(t, err, basis.ErrOutOfRange)

	for _, bad := range []string{"", "0, 1", "(a, 1)", "(0, 1, 2)", "[0, 1]"} {
		_, err = basis.ParseLabel(bad)
		require.ErrorIs(t, err, basis.ErrBadLabel, bad)
	}
	s, err := basis.ParseLabel(" ( 0 ,2 ) ")
	require.NoError(t, err)
	require.Equal(t, basis.Site{Strand: 0, Index: 2}, s)
}

func TestEHBasisElectronOuter(t *testing.T) {
	x := mustIndexer(t, 1, 3)
	eh := x.EHBasis()
	require.Len(t, eh, 9)
	require.Equal(t, basis.Pair{Electron: basis.Site{Strand: 0, Index: 0}, Hole: basis.Site{Strand: 0, Index: 1}}, eh[1])
	require.Equal(t, basis.Pair{Electron: basis.Site{Strand: 0, Index: 1}, Hole: basis.Site{Strand: 0, Index: 0}}, eh[3])
}

func TestDistances(t *testing.T) {
	require.InDelta(t, math.Sqrt2, basis.Distance(basis.Site{Strand: 0, Index: 0}, basis.Site{Strand: 1, Index: 1}), 1e-15)
	p := basis.Pair{Electron: basis.Site{Strand: 1, Index: 0}, Hole: basis.Site{Strand: 0, Index: 0}}
	require.Equal(t, 1.0, basis.EHDistance(p))

	x := mustIndexer(t, 2, 1)
	require.Equal(t, []float64{0, 1, 1, 0}, x.EHDistances())
}

func TestParticleStates(t *testing.T) {
	x := mustIndexer(t, 1, 3)
	site := basis.Site{Strand: 0, Index: 2}

	el, err := x.ParticleStates(basis.Electron, site)
	require.NoError(t, err)
	require.Equal(t, []basis.Pair{
		{Electron: site, Hole: basis.Site{Strand: 0, Index: 0}},
		{Electron: site, Hole: basis.Site{Strand: 0, Index: 1}},
		{Electron: site, Hole: basis.Site{Strand: 0, Index: 2}},
	}, el)

	ho, err := x.ParticleStates(basis.Hole, site)
	require.NoError(t, err)
	require.Equal(t, basis.Site{Strand: 0, Index: 1}, ho[1].Electron)
	require.Equal(t, site, ho[1].Hole)

	ex, err := x.ParticleStates(basis.Exciton, site)
	require.NoError(t, err)
	require.Len(t, ex, 1)

	_, err = x.ParticleStates("proton", site)
	require.ErrorIs(t, err, basis.ErrUnknownParticle)
	_, err = x.ParticleStates(basis.Electron, basis.Site{Strand: 0, Index: 3})
	require.ErrorIs(t, err, basis.ErrOutOfRange)

	_, err = basis.ParseParticle("hole")
	require.NoError(t, err)
	_, err = basis.ParseParticle("photon")
	require.ErrorIs(t, err, qerr.ErrConfiguration)
}

// TestChangeRoundTrip rotates a diagonal matrix into the site basis and back.
func TestChangeRoundTrip(t *testing.T) {
	h, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	vals, vecs, err := matrix.EigenSym(h)
	require.NoError(t, err)

	d, err := matrix.NewCDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, complex(vals[0], 0)))
	require.NoError(t, d.Set(1, 1, complex(vals[1], 0)))

	v := vecs.ToComplex()
	local, err := basis.GlobalToLocal(d, v, false)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want, _ := h.At(i, j)
			got, _ := local.At(i, j)
			require.InDelta(t, want, real(got), 1e-12)
		}
	}

	global, err := basis.LocalToGlobal(local, v, false)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		want, _ := d.At(i, i)
		got, _ := global.At(i, i)
		require.InDelta(t, real(want), real(got), 1e-12)
	}
}

func TestChangeLiouvilleShape(t *testing.T) {
	s, _ := matrix.NewCIdentity(2)
	m, _ := matrix.NewCIdentity(4)
	out, err := basis.Change(m, s, true)
	require.NoError(t, err)
	require.Equal(t, 4, out.Rows())
	require.InDelta(t, 4.0, real(out.Trace()), 1e-15)

	_, err = basis.Change(m, s, false)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
