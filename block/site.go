package block

import "github.com/arloliu/haplo/format"

// SiteInfo describes one SNP column.
//
// StartRow and EndRow bound the rows holding a non-gap symbol at the site. Rows in between
// do not necessarily cover the site.
type SiteInfo struct {
	StartRow int
	EndRow   int
	Zeros    int
	Ones     int
	Type     format.SiteType
}

// IsMonotone reports whether the site was observed with a single allele.
func (s SiteInfo) IsMonotone() bool {
	return s.Zeros == 0 || s.Ones == 0
}

// Elements returns the number of non-gap observations.
func (s SiteInfo) Elements() int {
	return s.Zeros + s.Ones
}

// Rows returns the length of the covering-row range.
func (s SiteInfo) Rows() int {
	if s.Elements() == 0 {
		return 0
	}

	return s.EndRow - s.StartRow + 1
}

func (s *SiteInfo) observe(row int, sym format.Symbol) {
	if s.Elements() == 0 {
		s.StartRow = row
	}
	s.EndRow = row
	if sym == format.SymbolZero {
		s.Zeros++
	} else {
		s.Ones++
	}
}
