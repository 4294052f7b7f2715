package gref

// nameMap is the dense name->id allocator backing segment lookups: insert-or-
// lookup on a name, ids allocated densely from 0 in first-mention order. This
// plays the role of the "NameMap" collaborator from the package overview --
// treated there as an external dependency, here a small internal type with
// the same insert-or-lookup contract, in the spirit of the name->GeneID map
// in the ancestor codebase's gene database.
type nameMap struct {
	ids   map[string]uint32
	names [][]byte
}

func newNameMap(hint int) *nameMap {
	return &nameMap{
		ids: make(map[string]uint32, hint),
	}
}

// internOrLookup returns the id for name, allocating a new one if this is
// the first mention.
func (m *nameMap) internOrLookup(name []byte) uint32 {
	if id, ok := m.ids[string(name)]; ok {
		return id
	}
	id := uint32(len(m.names))
	stored := make([]byte, len(name))
	copy(stored, name)
	m.ids[string(stored)] = id
	m.names = append(m.names, stored)
	return id
}

// lookup returns the id for name and whether it was already known.
func (m *nameMap) lookup(name []byte) (uint32, bool) {
	id, ok := m.ids[string(name)]
	return id, ok
}

// get returns the name bytes previously stored for id.
func (m *nameMap) get(id uint32) []byte {
	return m.names[id]
}

// count returns the next id that would be allocated, i.e. the number of
// distinct names interned so far.
func (m *nameMap) count() uint32 {
	return uint32(len(m.names))
}
