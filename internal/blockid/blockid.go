// Package blockid decodes the 32-bit block identifiers used throughout
// VMFS: the low bits select a block type, the remaining bits encode either
// a full-block number or a (subgroup, number) pair addressing an item in
// one of the meta-files.
package blockid

// Type identifies the kind of object a block id addresses.
type Type uint32

const (
	typeMask = 0x7

	// FullBlock addresses a whole filesystem block directly.
	FullBlock Type = 1
	// SubBlock addresses an item inside the SBC meta-file.
	SubBlock Type = 2
	// PointerBlock addresses an item inside the PBC meta-file.
	PointerBlock Type = 3
	// FileDescriptor addresses an item inside the FDC meta-file.
	FileDescriptor Type = 4
)

// String names a block type for diagnostics.
func (t Type) String() string {
	switch t {
	case FullBlock:
		return "FB"
	case SubBlock:
		return "SB"
	case PointerBlock:
		return "PB"
	case FileDescriptor:
		return "FD"
	default:
		return "unknown"
	}
}

// TypeOf extracts the block type from a block id.
func TypeOf(id uint32) Type {
	return Type(id & typeMask)
}

// FBNumber extracts the full-block number from an FB-typed id.
func FBNumber(id uint32) uint32 {
	return id >> 6
}

// SBSubgroupNumber extracts the (subgroup, number) pair from an SB-typed id.
func SBSubgroupNumber(id uint32) (subgroup, number uint32) {
	return (id >> 4) & 0x3, id >> 22
}

// PBSubgroupNumber extracts the (subgroup, number) pair from a PB-typed id.
func PBSubgroupNumber(id uint32) (subgroup, number uint32) {
	return (id >> 4) & 0x3, id >> 22
}

// FDSubgroupNumber extracts the (subgroup, number) pair from an FD-typed id.
func FDSubgroupNumber(id uint32) (subgroup, number uint32) {
	return (id >> 4) & 0x3F, id >> 10
}
