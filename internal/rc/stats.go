package rc

import "sync/atomic"

type metrics struct {
	submitted   atomic.Uint64
	registered  atomic.Uint64
	applied     atomic.Uint64
	nominated   atomic.Uint64
	resurrected atomic.Uint64
	deleted     atomic.Uint64
	poolHits    atomic.Uint64
	poolAllocs  atomic.Uint64

	// nomHighWater is written only by the reclaimer.
	nomHighWater atomic.Uint64
}

// Stats is a point-in-time snapshot of the runtime counters.
type Stats struct {
	Submitted   uint64
	Registered  uint64
	Applied     uint64
	Nominated   uint64
	Resurrected uint64
	Deleted     uint64
	PoolHits    uint64
	PoolAllocs  uint64

	NomHighWater uint64
}

func (m *metrics) snapshot() Stats {
	return Stats{
		Submitted:    m.submitted.Load(),
		Registered:   m.registered.Load(),
		Applied:      m.applied.Load(),
		Nominated:    m.nominated.Load(),
		Resurrected:  m.resurrected.Load(),
		Deleted:      m.deleted.Load(),
		PoolHits:     m.poolHits.Load(),
		PoolAllocs:   m.poolAllocs.Load(),
		NomHighWater: m.nomHighWater.Load(),
	}
}

func (m *metrics) noteNomDepth(depth int) {
	if d := uint64(depth); d > m.nomHighWater.Load() {
		m.nomHighWater.Store(d)
	}
}
