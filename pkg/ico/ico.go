// SPDX-License-Identifier: MPL-2.0

package ico

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// HeaderSize is the fixed binary size of the container header.
	HeaderSize = 6
	// EntrySize is the fixed binary size of one directory entry.
	EntrySize = 16
	// TypeIcon is the header type value for icon containers.
	TypeIcon = 1
	// MaxSize is the largest image dimension the directory can describe.
	MaxSize = 256

	planes       = 1
	bitsPerPixel = 32
)

// CanonicalSizes are the image sizes every folder icon carries, in order.
var CanonicalSizes = []int{16, 32, 48, 64, 128, 256}

var (
	// ErrMalformed is the sentinel error wrapped by MalformedError.
	ErrMalformed = errors.New("malformed icon container")
	// ErrInvalidImage is the sentinel error wrapped by InvalidImageError.
	ErrInvalidImage = errors.New("invalid icon image")
)

type (
	// Header is the fixed container header.
	Header struct {
		Reserved uint16
		Type     uint16
		Count    uint16
	}

	// DirEntry describes one image payload.
	DirEntry struct {
		Width      uint8
		Height     uint8
		ColorCount uint8
		Reserved   uint8
		Planes     uint16
		BitCount   uint16
		Length     uint32
		Offset     uint32
	}

	// Image is one square raster at a fixed pixel size. Data holds the
	// compressed payload (PNG for images produced by this module).
	Image struct {
		Size int
		Data []byte
	}

	// Container is an ordered set of images.
	Container struct {
		Images []Image
	}

	// MalformedError is returned by Decode when the input violates the layout.
	MalformedError struct {
		Reason string
	}

	// InvalidImageError is returned by Encode when an image cannot be described
	// by a directory entry.
	InvalidImageError struct {
		Index  int
		Reason string
	}
)

// Error implements the error interface for MalformedError.
func (e *MalformedError) Error() string {
	return "malformed icon container: " + e.Reason
}

// Unwrap returns ErrMalformed for errors.Is() compatibility.
func (e *MalformedError) Unwrap() error { return ErrMalformed }

// Error implements the error interface for InvalidImageError.
func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid icon image %d: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidImage for errors.Is() compatibility.
func (e *InvalidImageError) Unwrap() error { return ErrInvalidImage }

// DimensionByte returns the directory byte for a pixel size. A single byte
// cannot hold 256, so 256 is written as 0.
func DimensionByte(size int) uint8 {
	return uint8(size % 256)
}

// SizeFromByte is the inverse of DimensionByte.
func SizeFromByte(b uint8) int {
	if b == 0 {
		return MaxSize
	}
	return int(b)
}

// EncodeTo writes the header to buf, which must be at least HeaderSize bytes.
func (h *Header) EncodeTo(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:2], h.Reserved)
	binary.LittleEndian.PutUint16(buf[2:4], h.Type)
	binary.LittleEndian.PutUint16(buf[4:6], h.Count)
}

// DecodeFrom reads the header from buf without validating it.
func (h *Header) DecodeFrom(buf []byte) {
	h.Reserved = binary.LittleEndian.Uint16(buf[0:2])
	h.Type = binary.LittleEndian.Uint16(buf[2:4])
	h.Count = binary.LittleEndian.Uint16(buf[4:6])
}

// EncodeTo writes the entry to buf, which must be at least EntrySize bytes.
func (e *DirEntry) EncodeTo(buf []byte) {
	buf[0] = e.Width
	buf[1] = e.Height
	buf[2] = e.ColorCount
	buf[3] = e.Reserved
	binary.LittleEndian.PutUint16(buf[4:6], e.Planes)
	binary.LittleEndian.PutUint16(buf[6:8], e.BitCount)
	binary.LittleEndian.PutUint32(buf[8:12], e.Length)
	binary.LittleEndian.PutUint32(buf[12:16], e.Offset)
}

// DecodeFrom reads the entry from buf without validating it.
func (e *DirEntry) DecodeFrom(buf []byte) {
	e.Width = buf[0]
	e.Height = buf[1]
	e.ColorCount = buf[2]
	e.Reserved = buf[3]
	e.Planes = binary.LittleEndian.Uint16(buf[4:6])
	e.BitCount = binary.LittleEndian.Uint16(buf[6:8])
	e.Length = binary.LittleEndian.Uint32(buf[8:12])
	e.Offset = binary.LittleEndian.Uint32(buf[12:16])
}

// Size returns the pixel size encoded by the entry.
func (e *DirEntry) Size() int { return SizeFromByte(e.Width) }

// Sizes returns the pixel sizes of the images, in order.
func (c *Container) Sizes() []int {
	out := make([]int, len(c.Images))
	for i, img := range c.Images {
		out[i] = img.Size
	}
	return out
}

// Directory computes the header and directory entries Encode would write.
func (c *Container) Directory() (Header, []DirEntry, error) {
	if len(c.Images) == 0 {
		return Header{}, nil, &InvalidImageError{Index: -1, Reason: "container has no images"}
	}
	if len(c.Images) > math.MaxUint16 {
		return Header{}, nil, &InvalidImageError{Index: -1, Reason: fmt.Sprintf("too many images (%d)", len(c.Images))}
	}

	entries := make([]DirEntry, len(c.Images))
	offset := uint64(HeaderSize + EntrySize*len(c.Images))
	for i, img := range c.Images {
		if img.Size < 1 || img.Size > MaxSize {
			return Header{}, nil, &InvalidImageError{Index: i, Reason: fmt.Sprintf("size %d outside 1-%d", img.Size, MaxSize)}
		}
		if len(img.Data) == 0 {
			return Header{}, nil, &InvalidImageError{Index: i, Reason: "empty payload"}
		}
		if offset+uint64(len(img.Data)) > math.MaxUint32 {
			return Header{}, nil, &InvalidImageError{Index: i, Reason: "container exceeds 4 GiB"}
		}
		entries[i] = DirEntry{
			Width:    DimensionByte(img.Size),
			Height:   DimensionByte(img.Size),
			Planes:   planes,
			BitCount: bitsPerPixel,
			Length:   uint32(len(img.Data)),
			Offset:   uint32(offset),
		}
		offset += uint64(len(img.Data))
	}

	return Header{Type: TypeIcon, Count: uint16(len(c.Images))}, entries, nil
}

// MarshalBinary encodes the container.
func (c *Container) MarshalBinary() ([]byte, error) {
	h, entries, err := c.Directory()
	if err != nil {
		return nil, err
	}

	last := entries[len(entries)-1]
	buf := make([]byte, int(last.Offset)+int(last.Length))
	h.EncodeTo(buf[:HeaderSize])
	for i := range entries {
		off := HeaderSize + i*EntrySize
		entries[i].EncodeTo(buf[off : off+EntrySize])
		copy(buf[entries[i].Offset:], c.Images[i].Data)
	}
	return buf, nil
}

// UnmarshalBinary decodes data into c, replacing its images. Payloads are
// copied, so data may be reused afterwards.
func (c *Container) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return &MalformedError{Reason: fmt.Sprintf("header too short: need %d bytes, got %d", HeaderSize, len(data))}
	}

	var h Header
	h.DecodeFrom(data)
	if h.Reserved != 0 {
		return &MalformedError{Reason: fmt.Sprintf("reserved field is %d, want 0", h.Reserved)}
	}
	if h.Type != TypeIcon {
		return &MalformedError{Reason: fmt.Sprintf("type is %d, want %d", h.Type, TypeIcon)}
	}
	if h.Count == 0 {
		return &MalformedError{Reason: "image count is zero"}
	}

	dirEnd := HeaderSize + EntrySize*int(h.Count)
	if len(data) < dirEnd {
		return &MalformedError{Reason: fmt.Sprintf("directory truncated: need %d bytes, got %d", dirEnd, len(data))}
	}

	images := make([]Image, int(h.Count))
	next := uint64(dirEnd)
	for i := range images {
		var e DirEntry
		off := HeaderSize + i*EntrySize
		e.DecodeFrom(data[off : off+EntrySize])

		if e.Width != e.Height {
			return &MalformedError{Reason: fmt.Sprintf("entry %d is not square (%dx%d)", i, SizeFromByte(e.Width), SizeFromByte(e.Height))}
		}
		if e.Length == 0 {
			return &MalformedError{Reason: fmt.Sprintf("entry %d has an empty payload", i)}
		}
		if uint64(e.Offset) != next {
			return &MalformedError{Reason: fmt.Sprintf("entry %d offset %d, want %d", i, e.Offset, next)}
		}
		end := next + uint64(e.Length)
		if end > uint64(len(data)) {
			return &MalformedError{Reason: fmt.Sprintf("entry %d payload runs past end of data", i)}
		}

		payload := make([]byte, e.Length)
		copy(payload, data[e.Offset:end])
		images[i] = Image{Size: e.Size(), Data: payload}
		next = end
	}
	if next != uint64(len(data)) {
		return &MalformedError{Reason: fmt.Sprintf("%d trailing bytes after last payload", uint64(len(data))-next)}
	}

	c.Images = images
	return nil
}

// Encode is a convenience wrapper around MarshalBinary.
func Encode(c *Container) ([]byte, error) {
	return c.MarshalBinary()
}

// Decode is a convenience wrapper around UnmarshalBinary.
func Decode(data []byte) (*Container, error) {
	c := &Container{}
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return c, nil
}
