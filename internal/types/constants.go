package types

// Fixed offsets and magic numbers for the on-disk layout. All multi-byte
// integers on disk are little-endian.
const (
	// VolInfoBase is the absolute offset of the VolumeInfo descriptor.
	VolInfoBase = 0x100000

	// VolInfoMagic is VolumeInfo's expected magic number.
	VolInfoMagic = 0xC001D00D

	// VolInfoSize is the size of the buffer VolumeInfo is decoded from.
	VolInfoSize = 1024

	// FSInfoOffset is FSInfo's offset relative to vmfs_base.
	FSInfoOffset = 0x1200000

	// FSInfoMagic is FSInfo's expected magic number.
	FSInfoMagic = 0x2FABF15E

	// FSInfoSize is the size of the buffer FSInfo is decoded from.
	FSInfoSize = 512

	// HeartbeatOffset is the heartbeat array's offset relative to vmfs_base.
	HeartbeatOffset = 0x1300000

	// HeartbeatSize is the size of one heartbeat slot and the size of the
	// buffer a Heartbeat is decoded from.
	HeartbeatSize = 0x200

	// HBMagicOff marks a heartbeat slot as not currently held.
	HBMagicOff = 0xABCDEF01

	// HBMagicOn marks a heartbeat slot as actively held.
	HBMagicOn = 0xABCDEF02

	// FDCBaseOffset is the FDC meta-file's offset relative to vmfs_base.
	FDCBaseOffset = 0x1400000

	// VolBlockBase is added to vmfs_base before a full-block number is
	// multiplied by the block size when translating a full-block read to
	// an absolute image offset.
	VolBlockBase = 0x1000000

	// FileInfoSize is the size of a file's meta-info buffer.
	FileInfoSize = 0x800

	// FileInfoBlockArrayOffset is the offset of the inline block-id array
	// inside a meta-info buffer.
	FileInfoBlockArrayOffset = 0x400

	// FileInfoBlockCount is the maximum number of inline block ids.
	FileInfoBlockCount = 256

	// FileRecordSize is the size of one directory entry.
	FileRecordSize = 0x8C

	// FileRecordNameSize is the size of a file record's name field.
	FileRecordNameSize = 128

	// VolInfoNameSize is the size of VolumeInfo's name field.
	VolInfoNameSize = 28

	// FSInfoLabelSize is the size of FSInfo's label field.
	FSInfoLabelSize = 128

	// UUIDSize is the size of every UUID field on disk.
	UUIDSize = 16

	// BitmapHeaderSize is the size of the buffer a BitmapHeader is decoded
	// from: the first 512 bytes of a meta-file.
	BitmapHeaderSize = 512
)

// Well-known meta-file names, searched for in the root directory during
// volume open.
const (
	FBBFileName = ".fbb.sf"
	FDCFileName = ".fdc.sf"
	PBCFileName = ".pbc.sf"
	SBCFileName = ".sbc.sf"
	VHFileName  = ".vh.sf"
)

// Byte offsets within the fixed-size descriptor buffers.
const (
	OfsVolInfoMagic   = 0x0000
	OfsVolInfoVersion = 0x0004
	OfsVolInfoName    = 0x0012
	OfsVolInfoUUID    = 0x0082
	OfsVolInfoSize    = 0x0200
	OfsVolInfoBlocks  = 0x0208

	OfsFSInfoMagic     = 0x0000
	OfsFSInfoVolVer    = 0x0004
	OfsFSInfoVersion   = 0x0008
	OfsFSInfoUUID      = 0x0009
	OfsFSInfoLabel     = 0x001D
	OfsFSInfoBlockSize = 0x00A1

	OfsHBMagic  = 0x0000
	OfsHBPos    = 0x0004
	OfsHBUptime = 0x0014
	OfsHBUUID   = 0x001C

	OfsFileInfoGroupID = 0x0000
	OfsFileInfoPos     = 0x0004
	OfsFileInfoHBPos   = 0x000C
	OfsFileInfoHBLock  = 0x0024
	OfsFileInfoHBUUID  = 0x0028
	OfsFileInfoID      = 0x0200
	OfsFileInfoID2     = 0x0204
	OfsFileInfoType    = 0x020C
	OfsFileInfoSize    = 0x0214
	OfsFileInfoTS1     = 0x022C
	OfsFileInfoTS2     = 0x0230
	OfsFileInfoTS3     = 0x0234
	OfsFileInfoUID     = 0x0238
	OfsFileInfoGID     = 0x023C
	OfsFileInfoMode    = 0x0240

	OfsFileRecType    = 0x0000
	OfsFileRecBlockID = 0x0004
	OfsFileRecRecID   = 0x0008
	OfsFileRecName    = 0x000C
)

// Whence selects how Seek interprets its offset argument.
type Whence int

const (
	SeekSet Whence = iota
	SeekCur
	SeekEnd
)
