package heat

import (
	"civicmap/backend/report"
)

// CellSum is one aggregated density cell: the severity-weighted sum of the
// reports that fell into it, positioned at the cell center (or at the
// single report when only one landed there).
type CellSum struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
	Count  int64   `json:"count"`
}

// GridAggregator buckets reports into a fixed latCnt x lngCnt planar grid
// over a bounding box. Points outside the box are dropped.
type GridAggregator struct {
	box              BBox
	latStep, lngStep float64
	latCnt, lngCnt   int
	cells            map[int]*CellSum
}

func NewGridAggregator(box BBox, latCnt, lngCnt int) *GridAggregator {
	return &GridAggregator{
		box:     box,
		latStep: (box.MaxLat - box.MinLat) / float64(latCnt),
		lngStep: (box.MaxLng - box.MinLng) / float64(lngCnt),
		latCnt:  latCnt,
		lngCnt:  lngCnt,
		cells:   make(map[int]*CellSum),
	}
}

func (a *GridAggregator) Add(r report.Report) {
	latX := int((r.Lat - a.box.MinLat) / a.latStep)
	lngX := int((r.Lng - a.box.MinLng) / a.lngStep)
	if latX < 0 || lngX < 0 || latX >= a.latCnt || lngX >= a.lngCnt {
		return
	}
	x := latX*a.lngCnt + lngX
	cell, ok := a.cells[x]
	if !ok {
		cell = &CellSum{
			Lat: a.box.MinLat + a.latStep*(0.5+float64(latX)),
			Lng: a.box.MinLng + a.lngStep*(0.5+float64(lngX)),
		}
		a.cells[x] = cell
	}
	cell.Weight += Weight(r.Status)
	cell.Count++
}

func (a *GridAggregator) ToArray() []CellSum {
	out := make([]CellSum, 0, len(a.cells))
	for _, c := range a.cells {
		out = append(out, *c)
	}
	return out
}
