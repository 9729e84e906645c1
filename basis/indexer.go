// SPDX-License-Identifier: MIT

// Package basis - tight-binding site basis.
//
// A site is addressed three ways, all in bijection for fixed dims:
//
//	Site{Strand: s, Index: i}  <->  label "(s, i)"  <->  linear index s*sites + i
//
// Linear order is strand-major, so strand 0 occupies indices [0, sites).

package basis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	opLabel     = "Label"
	opIndex     = "Index"
	opSite      = "Site"
	opSiteIndex = "SiteIndex"
	opParse     = "ParseLabel"
)

// Dims fixes the shape of a tight-binding basis.
type Dims struct {
	Strands int // number of strands (backbone strands included)
	Sites   int // sites per strand
}

// Size returns Strands*Sites.
func (d Dims) Size() int { return d.Strands * d.Sites }

// String renders "(strands, sites)".
func (d Dims) String() string { return fmt.Sprintf("(%d, %d)", d.Strands, d.Sites) }

// Site is one tight-binding site: a strand number and a position in the strand.
type Site struct {
	Strand int
	Index  int
}

// Label renders the canonical "(s, i)" label.
func (s Site) Label() string { return fmt.Sprintf("(%d, %d)", s.Strand, s.Index) }

// String is Label.
func (s Site) String() string { return s.Label() }

// ParseLabel parses "(s, i)"; whitespace around the numbers is ignored.
// Errors: ErrBadLabel.
func ParseLabel(label string) (Site, error) {
	t := strings.TrimSpace(label)
	if !strings.HasPrefix(t, "(") || !strings.HasSuffix(t, ")") {
		return Site{}, basisErrorf(opParse, strconv.Quote(label), ErrBadLabel)
	}
	parts := strings.Split(t[1:len(t)-1], ",")
	if len(parts) != 2 {
		return Site{}, basisErrorf(opParse, strconv.Quote(label), ErrBadLabel)
	}
	s, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	i, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return Site{}, basisErrorf(opParse, strconv.Quote(label), ErrBadLabel)
	}

	return Site{Strand: s, Index: i}, nil
}

// Distance is the Euclidean distance between two sites in (strand, index)
// coordinates, in units of the base-pair spacing.
func Distance(a, b Site) float64 {
	return math.Hypot(float64(a.Strand-b.Strand), float64(a.Index-b.Index))
}

// Indexer converts between sites, labels and linear indices for fixed dims.
// The zero value is unusable; construct with NewIndexer.
type Indexer struct {
	dims Dims
}

// NewIndexer validates the dimensions. Errors: ErrInvalidDims.
func NewIndexer(strands, sites int) (Indexer, error) {
	if strands <= 0 || sites <= 0 {
		return Indexer{}, basisErrorf("NewIndexer", Dims{strands, sites}, ErrInvalidDims)
	}

	return Indexer{dims: Dims{Strands: strands, Sites: sites}}, nil
}

// Dims returns the indexer's dimensions.
func (x Indexer) Dims() Dims { return x.dims }

// Size returns the number of sites N.
func (x Indexer) Size() int { return x.dims.Size() }

// Contains reports whether s lies inside the dimensions.
func (x Indexer) Contains(s Site) bool {
	return s.Strand >= 0 && s.Strand < x.dims.Strands && s.Index >= 0 && s.Index < x.dims.Sites
}

// Site returns the site at linear index idx. Errors: ErrOutOfRange.
func (x Indexer) Site(idx int) (Site, error) {
	if idx < 0 || idx >= x.Size() {
		return Site{}, basisErrorf(opSite, idx, ErrOutOfRange)
	}

	return Site{Strand: idx / x.dims.Sites, Index: idx % x.dims.Sites}, nil
}

// SiteIndex returns the linear index of s. Errors: ErrOutOfRange.
func (x Indexer) SiteIndex(s Site) (int, error) {
	if !x.Contains(s) {
		return 0, basisErrorf(opSiteIndex, s, ErrOutOfRange)
	}

	return s.Strand*x.dims.Sites + s.Index, nil
}

// Label returns the label at linear index idx. Errors: ErrOutOfRange.
func (x Indexer) Label(idx int) (string, error) {
	if idx < 0 || idx >= x.Size() {
		return "", basisErrorf(opLabel, idx, ErrOutOfRange)
	}
	s, _ := x.Site(idx)

	return s.Label(), nil
}

// Index returns the linear index of a label. Errors: ErrBadLabel, ErrOutOfRange.
func (x Indexer) Index(label string) (int, error) {
	s, err := ParseLabel(label)
	if err != nil {
		return 0, err
	}
	idx, err := x.SiteIndex(s)
	if err != nil {
		return 0, basisErrorf(opIndex, strconv.Quote(label), ErrOutOfRange)
	}

	return idx, nil
}

// TBBasis returns every site in linear order.
func (x Indexer) TBBasis() []Site {
	out := make([]Site, 0, x.Size())
	for s := 0; s < x.dims.Strands; s++ {
		for i := 0; i < x.dims.Sites; i++ {
			out = append(out, Site{Strand: s, Index: i})
		}
	}

	return out
}

// Labels returns every label in linear order.
func (x Indexer) Labels() []string {
	sites := x.TBBasis()
	out := make([]string, len(sites))
	for k, s := range sites {
		out[k] = s.Label()
	}

	return out
}
