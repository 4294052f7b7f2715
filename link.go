package gref

import (
	"github.com/grailbio/base/log"
)

// linkPair is one directed edge as recorded in Pool state: the raw (from,to)
// pair, before compaction drops the from column.
type linkPair struct {
	from GID
	to   GID
}

// Freeze transitions a Pool to an Archive: it appends the tail sentinel
// segment, sorts the link list by source gid via sortLinksByFrom, and compacts it
// into contiguous per-vertex forward-edge slices.
//
// On any failure the graph is torn down (via Clean) and the state is left
// unchanged from the caller's point of view (a non-nil error is returned
// and the handle must not be reused for anything but Clean).
func (g *Graph) Freeze() error {
	if err := g.requireState("Freeze", Pool); err != nil {
		return err
	}

	// Step 1: append the tail sentinel if not already present.
	sentinelID := uint32(len(g.sec))
	if g.sawAnyID {
		sentinelID = g.maxID + 1
	}
	for uint32(len(g.sec)) <= sentinelID {
		g.sec = append(g.sec, Section{ID: uint32(len(g.sec))})
	}
	g.sec[sentinelID].sentinel = true

	n2 := 2 * sentinelID // number of real oriented vertices (sentinel excluded)

	// Step 2: sort the link list by source gid.
	if err := sortLinksByFrom(g.links, g.opts.NumThreads); err != nil {
		g.Clean()
		return sortFailure(err)
	}

	// Step 3: walk the sorted list, writing fw_link_base/rv_link_base as
	// half-records indexed by gid (2*segID+orientation), with the sentinel's
	// forward gid (n2) terminating the array.
	halfBase := make([]int, n2+1)
	li := 0
	for gidVal := 0; gidVal < int(n2); gidVal++ {
		halfBase[gidVal] = li
		for li < len(g.links) && int(g.links[li].from) == gidVal {
			li++
		}
	}
	halfBase[n2] = len(g.links)

	for segID := uint32(0); segID < sentinelID; segID++ {
		fwGID := int(segmentGID(segID))
		g.sec[segID].fwLinkBase = halfBase[fwGID]
		g.sec[segID].rvLinkBase = halfBase[fwGID+1]
	}
	// The sentinel owns the tail of the array: both its bases equal the
	// total link count, so [fwLinkBase,rvLinkBase) is empty, per the tail
	// sentinel invariant sec[i].rv_link_base == sec[i+1].fw_link_base.
	g.sec[sentinelID].fwLinkBase = len(g.links)
	g.sec[sentinelID].rvLinkBase = len(g.links)

	// Step 4: project (from,to) down to to-only.
	compact := make([]GID, len(g.links))
	for i, e := range g.links {
		compact[i] = e.to
	}
	g.compactLinks = compact
	g.links = nil

	g.state = Archive
	log.Printf("gref: froze graph into archive (%d sections, %d links)", sentinelID, len(g.compactLinks))
	return nil
}

// Melt transitions an Archive back to a Pool, expanding the compacted
// to-only link table back into (from,to) pairs by scanning the link_base
// offsets. The resulting link list is a permutation of the original, and an
// identical multiset including duals (round-trip property).
func (g *Graph) Melt() error {
	if err := g.requireState("Melt", Archive); err != nil {
		return err
	}
	sentinelID := g.sentinelID()
	links := make([]linkPair, len(g.compactLinks))
	for segID := uint32(0); segID < sentinelID; segID++ {
		sec := &g.sec[segID]
		fwGID := segmentGID(segID)
		for i := sec.fwLinkBase; i < sec.rvLinkBase; i++ {
			links[i] = linkPair{from: fwGID, to: g.compactLinks[i]}
		}
		rvGID := fwGID.Rev()
		nextFw := sec.fwLinkBase
		if segID+1 < uint32(len(g.sec)) {
			nextFw = g.sec[segID+1].fwLinkBase
		} else {
			nextFw = len(g.compactLinks)
		}
		for i := sec.rvLinkBase; i < nextFw; i++ {
			links[i] = linkPair{from: rvGID, to: g.compactLinks[i]}
		}
	}
	g.links = links
	g.compactLinks = nil
	// Drop the tail sentinel; it's re-synthesized on the next Freeze.
	g.sec = g.sec[:sentinelID]
	g.state = Pool
	return nil
}

// sentinelID returns the id of the tail sentinel segment, valid in Archive
// and Index state.
func (g *Graph) sentinelID() uint32 {
	return uint32(len(g.sec)) - 1
}

// forwardEdges returns the slice of destination gids reachable by an
// outgoing edge from gid, valid in Archive and Index state.
func (g *Graph) forwardEdges(gid GID) []GID {
	sec := &g.sec[gid.Segment()]
	if gid.Forward() {
		return g.compactLinks[sec.fwLinkBase:sec.rvLinkBase]
	}
	nextFw := len(g.compactLinks)
	if int(gid.Segment())+1 < len(g.sec) {
		nextFw = g.sec[gid.Segment()+1].fwLinkBase
	}
	return g.compactLinks[sec.rvLinkBase:nextFw]
}
