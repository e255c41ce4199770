package heat

import (
	"civicmap/backend/report"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	expectedCells = 160
	minCellLevel  = 6
	maxCellLevel  = 16
)

type s2Unit struct {
	weight   float64
	count    int64
	origCell s2.CellID
}

// S2Aggregator buckets reports into S2 cells at a level chosen so that the
// viewport holds roughly expectedCells cells. Unlike the planar grid it
// needs no row/column counts from the caller.
type S2Aggregator struct {
	level int
	units map[s2.CellID]*s2Unit
}

// cellBaseLevel picks the deepest level whose cells still tile the viewport
// in fewer than expectedCells pieces.
func cellBaseLevel(box BBox) int {
	minLL := s2.LatLngFromDegrees(box.MinLat, box.MinLng)
	maxLL := s2.LatLngFromDegrees(box.MaxLat, box.MaxLng)

	rect := s2.Rect{
		Lat: r1.Interval{Lo: minLL.Lat.Radians(), Hi: maxLL.Lat.Radians()},
		Lng: s1.Interval{Lo: minLL.Lng.Radians(), Hi: maxLL.Lng.Radians()},
	}
	area := rect.Area()

	center := s2.CellIDFromLatLng(rect.Center())
	for lv := maxCellLevel; lv >= minCellLevel; lv-- {
		cell := s2.CellFromCellID(center.Parent(lv))
		if area/cell.ApproxArea() < expectedCells {
			return lv
		}
	}
	return minCellLevel
}

func NewS2Aggregator(box BBox) *S2Aggregator {
	return &S2Aggregator{
		level: cellBaseLevel(box),
		units: make(map[s2.CellID]*s2Unit),
	}
}

func (a *S2Aggregator) Add(r report.Report) {
	pc := s2.CellIDFromLatLng(s2.LatLngFromDegrees(r.Lat, r.Lng))
	parent := pc.Parent(a.level)
	u, ok := a.units[parent]
	if !ok {
		u = &s2Unit{}
		a.units[parent] = u
	}
	u.weight += Weight(r.Status)
	u.count++
	u.origCell = pc
}

func (a *S2Aggregator) ToArray() []CellSum {
	out := make([]CellSum, 0, len(a.units))
	for c, u := range a.units {
		ll := c.LatLng()
		if u.count == 1 {
			ll = u.origCell.LatLng()
		}
		out = append(out, CellSum{
			Lat:    ll.Lat.Degrees(),
			Lng:    ll.Lng.Degrees(),
			Weight: u.weight,
			Count:  u.count,
		})
	}
	return out
}
