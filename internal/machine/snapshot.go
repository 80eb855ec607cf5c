package machine

import (
	"sort"

	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/snapshot"
)

// registerOrder fixes the order in which register pairs are restored from
// a snapshot. Names missing from the snapshot restore as zero; nothing
// here validates snapshot well-formedness, that is the producer's job.
var registerOrder = []struct {
	name string
	slot int
}{
	{"AF", engine.RegAF},
	{"BC", engine.RegBC},
	{"DE", engine.RegDE},
	{"HL", engine.RegHL},
	{"AF_", engine.RegAF_},
	{"BC_", engine.RegBC_},
	{"DE_", engine.RegDE_},
	{"HL_", engine.RegHL_},
	{"IX", engine.RegIX},
	{"IY", engine.RegIY},
	{"SP", engine.RegSP},
	{"IR", engine.RegIR},
}

// LoadSnapshot replaces the whole machine state with the snapshot's
// contents. The model is applied first because it decides the paging
// behaviour; memory goes in before registers so execution never resumes
// over stale pages; the paging port is only written on models that have
// one.
func (m *Machine) LoadSnapshot(s *snapshot.Snapshot) {
	m.engine.SetModel(s.Model)

	pages := make([]int, 0, len(s.Pages))
	for page := range s.Pages {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	for _, page := range pages {
		m.LoadMemoryPage(page, s.Pages[page])
	}

	regs := m.engine.Registers()
	for _, r := range registerOrder {
		regs[r.slot] = s.Registers[r.name]
	}
	m.engine.SetPC(s.Registers["PC"])

	m.engine.SetIFF1(s.IFF1)
	m.engine.SetIFF2(s.IFF2)
	m.engine.SetIM(s.IM)
	m.engine.SetHalted(s.Halted)

	m.engine.WritePort(engine.PortULA, s.Border)
	if !s.Model.Is48K() {
		m.engine.WritePort(engine.PortPaging, s.Paging)
	}

	m.engine.SetTStates(s.TStates)
}

// LoadMemoryPage copies one page of raw bytes into machine memory. Page
// indices out of range panic on the destination slice; the caller owns
// that contract.
func (m *Machine) LoadMemoryPage(page int, data []byte) {
	mem := m.engine.MachineMemory()
	copy(mem[page*engine.PageSize:(page+1)*engine.PageSize], data)
}
