package block

import (
	"fmt"

	"github.com/arloliu/haplo/endian"
	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
)

// DeviceSiteInfoSize is the encoded size of one DeviceSiteInfo.
const DeviceSiteInfoSize = 25

// DeviceSiteInfo is the reduced, read-only site record uploaded to an accelerator.
type DeviceSiteInfo struct {
	StartRow uint64
	EndRow   uint64
	Elements uint64
	Type     format.SiteType
}

// Device projects the site into its device record.
func (s SiteInfo) Device() DeviceSiteInfo {
	return DeviceSiteInfo{
		StartRow: uint64(s.StartRow),
		EndRow:   uint64(s.EndRow),
		Elements: uint64(s.Elements()),
		Type:     s.Type,
	}
}

// DeviceSites projects every site of the block.
func (b *Block) DeviceSites() []DeviceSiteInfo {
	out := make([]DeviceSiteInfo, len(b.sites))
	for i := range b.sites {
		out[i] = b.sites[i].Device()
	}

	return out
}

// EncodeDeviceSites appends the fixed-size records of infos to dst.
func EncodeDeviceSites(engine endian.Engine, dst []byte, infos []DeviceSiteInfo) []byte {
	dst = growBytes(dst, len(infos)*DeviceSiteInfoSize)
	for _, info := range infos {
		dst = engine.AppendUint64(dst, info.StartRow)
		dst = engine.AppendUint64(dst, info.EndRow)
		dst = engine.AppendUint64(dst, info.Elements)
		dst = append(dst, byte(info.Type))
	}

	return dst
}

// DecodeDeviceSites parses records written by EncodeDeviceSites.
//
// Returns:
//   - error: ErrTruncatedPayload if data is not a whole number of records
func DecodeDeviceSites(engine endian.Engine, data []byte) ([]DeviceSiteInfo, error) {
	if len(data)%DeviceSiteInfoSize != 0 {
		return nil, fmt.Errorf("%d bytes is not a multiple of %d: %w",
			len(data), DeviceSiteInfoSize, errs.ErrTruncatedPayload)
	}

	out := make([]DeviceSiteInfo, len(data)/DeviceSiteInfoSize)
	for i := range out {
		rec := data[i*DeviceSiteInfoSize : (i+1)*DeviceSiteInfoSize]
		out[i] = DeviceSiteInfo{
			StartRow: engine.Uint64(rec[0:8]),
			EndRow:   engine.Uint64(rec[8:16]),
			Elements: engine.Uint64(rec[16:24]),
			Type:     format.SiteType(rec[24]),
		}
	}

	return out, nil
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)

	return grown
}
