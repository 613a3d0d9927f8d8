// Package volio reads and writes boundary and label volumes as flat binary
// files. A file is a fixed little-endian header (magic tag plus the three
// axis extents) followed by one snappy-compressed block holding the voxel
// payload in (z, x, y) order. The segmentation core itself never touches
// files; this package is the persistence collaborator the CLI plugs into it.
package volio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/golang/snappy"

	"watershed3d/internal/models"
)

// Magic tags identifying the two volume kinds.
var (
	magicBoundary = [4]byte{'B', 'V', 'O', '1'}
	magicLabels   = [4]byte{'L', 'V', 'O', '1'}
)

// ErrBadMagic is returned when a file does not start with a known volume tag.
var ErrBadMagic = errors.New("not a volume file (bad magic)")

// ErrCorrupt is returned when the payload does not match the header extents.
var ErrCorrupt = errors.New("volume file payload is corrupt")

// Kind distinguishes boundary-probability files from label files.
type Kind int

const (
	KindBoundary Kind = iota
	KindLabels
)

// String returns a human-readable name for the volume kind.
func (k Kind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindLabels:
		return "labels"
	default:
		return "unknown"
	}
}

// Header describes a volume file without its payload.
type Header struct {
	Kind       Kind
	NZ, NX, NY int
}

// headerSize is the encoded size: 4 magic bytes plus three uint32 extents.
const headerSize = 16

// WriteVolume writes a boundary volume to path.
func WriteVolume(path string, v *models.Volume) error {
	payload := make([]byte, 8*len(v.Data))
	for i, val := range v.Data {
		binary.LittleEndian.PutUint64(payload[8*i:], math.Float64bits(val))
	}
	return writeFile(path, magicBoundary, v.NZ, v.NX, v.NY, payload)
}

// ReadVolume reads a boundary volume from path.
func ReadVolume(path string) (*models.Volume, error) {
	hdr, payload, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if hdr.Kind != KindBoundary {
		return nil, fmt.Errorf("%s: expected boundary volume, found %s file", path, hdr.Kind)
	}
	v := models.NewVolume(hdr.NZ, hdr.NX, hdr.NY)
	if len(payload) != 8*len(v.Data) {
		return nil, fmt.Errorf("%s: %w: %d payload bytes for %d voxels",
			path, ErrCorrupt, len(payload), len(v.Data))
	}
	for i := range v.Data {
		v.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
	}
	return v, nil
}

// WriteLabels writes a label volume to path.
func WriteLabels(path string, l *models.LabelVolume) error {
	payload := make([]byte, 4*len(l.Data))
	for i, lab := range l.Data {
		binary.LittleEndian.PutUint32(payload[4*i:], lab)
	}
	return writeFile(path, magicLabels, l.NZ, l.NX, l.NY, payload)
}

// ReadLabels reads a label volume from path.
func ReadLabels(path string) (*models.LabelVolume, error) {
	hdr, payload, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if hdr.Kind != KindLabels {
		return nil, fmt.Errorf("%s: expected label volume, found %s file", path, hdr.Kind)
	}
	l := models.NewLabelVolume(hdr.NZ, hdr.NX, hdr.NY)
	if len(payload) != 4*len(l.Data) {
		return nil, fmt.Errorf("%s: %w: %d payload bytes for %d voxels",
			path, ErrCorrupt, len(payload), len(l.Data))
	}
	for i := range l.Data {
		l.Data[i] = binary.LittleEndian.Uint32(payload[4*i:])
	}
	return l, nil
}

// ReadHeader reads only the header of a volume file, without decompressing
// the payload.
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("failed to open volume file: %w", err)
	}
	defer f.Close()

	var raw [headerSize]byte
	if _, err := io.ReadFull(f, raw[:]); err != nil {
		return Header{}, fmt.Errorf("%s: failed to read header: %w", path, err)
	}
	return decodeHeader(path, raw)
}

func decodeHeader(path string, raw [headerSize]byte) (Header, error) {
	var hdr Header
	var magic [4]byte
	copy(magic[:], raw[:4])
	switch magic {
	case magicBoundary:
		hdr.Kind = KindBoundary
	case magicLabels:
		hdr.Kind = KindLabels
	default:
		return Header{}, fmt.Errorf("%s: %w", path, ErrBadMagic)
	}

	hdr.NZ = int(binary.LittleEndian.Uint32(raw[4:]))
	hdr.NX = int(binary.LittleEndian.Uint32(raw[8:]))
	hdr.NY = int(binary.LittleEndian.Uint32(raw[12:]))
	if hdr.NZ <= 0 || hdr.NX <= 0 || hdr.NY <= 0 {
		return Header{}, fmt.Errorf("%s: %w: non-positive extents (%d,%d,%d)",
			path, ErrCorrupt, hdr.NZ, hdr.NX, hdr.NY)
	}
	return hdr, nil
}

func writeFile(path string, magic [4]byte, nz, nx, ny int, payload []byte) error {
	compressed := snappy.Encode(nil, payload)
	out := make([]byte, headerSize+len(compressed))
	copy(out[:4], magic[:])
	binary.LittleEndian.PutUint32(out[4:], uint32(nz))
	binary.LittleEndian.PutUint32(out[8:], uint32(nx))
	binary.LittleEndian.PutUint32(out[12:], uint32(ny))
	copy(out[headerSize:], compressed)

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write volume file: %w", err)
	}
	return nil
}

func readFile(path string) (Header, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to read volume file: %w", err)
	}
	if len(raw) < headerSize {
		return Header{}, nil, fmt.Errorf("%s: %w: file too short", path, ErrCorrupt)
	}

	var fixed [headerSize]byte
	copy(fixed[:], raw[:headerSize])
	hdr, err := decodeHeader(path, fixed)
	if err != nil {
		return Header{}, nil, err
	}

	payload, err := snappy.Decode(nil, raw[headerSize:])
	if err != nil {
		return Header{}, nil, fmt.Errorf("%s: %w: %v", path, ErrCorrupt, err)
	}
	return hdr, payload, nil
}
