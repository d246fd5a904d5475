// SPDX-License-Identifier: MPL-2.0

package binding

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const descriptorNewline = "\r\n"

// Descriptor is the content of a folder's desktop.ini override.
type Descriptor struct {
	// IconResource is the absolute path of the icon container.
	IconResource string
	// IconIndex selects the icon inside the container.
	IconIndex int
}

// descriptorEncoding is UTF-16LE with a byte order mark, the encoding the
// shell writes desktop.ini files in.
var descriptorEncoding = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// Text renders the descriptor as INI text. The [ViewState] keys are left
// empty so the shell discards any cached layout for the folder.
func (d Descriptor) Text() string {
	lines := []string{
		"[.ShellClassInfo]",
		fmt.Sprintf("IconResource=%s,%d", d.IconResource, d.IconIndex),
		"IconIndex=" + strconv.Itoa(d.IconIndex),
		"[ViewState]",
		"Mode=",
		"Vid=",
		"FolderType=Generic",
	}
	return strings.Join(lines, descriptorNewline) + descriptorNewline
}

// MarshalText encodes the descriptor as UTF-16LE with a byte order mark.
func (d Descriptor) MarshalText() ([]byte, error) {
	out, err := descriptorEncoding.NewEncoder().Bytes([]byte(d.Text()))
	if err != nil {
		return nil, fmt.Errorf("encode descriptor: %w", err)
	}
	return out, nil
}

// UnmarshalText decodes a descriptor. UTF-16 input with a byte order mark and
// plain UTF-8 are both accepted. Unknown sections and keys are ignored.
func (d *Descriptor) UnmarshalText(data []byte) error {
	text := data
	if bytes.HasPrefix(data, []byte{0xff, 0xfe}) || bytes.HasPrefix(data, []byte{0xfe, 0xff}) {
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return fmt.Errorf("decode descriptor: %w", err)
		}
		text = decoded
	}

	*d = Descriptor{}
	section := ""
	for _, raw := range strings.Split(string(text), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, ";"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			section = strings.ToLower(line[1 : len(line)-1])
			continue
		}
		if section != ".shellclassinfo" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "iconresource":
			value = strings.TrimSpace(value)
			if i := strings.LastIndex(value, ","); i >= 0 {
				if n, err := strconv.Atoi(strings.TrimSpace(value[i+1:])); err == nil {
					d.IconIndex = n
					value = value[:i]
				}
			}
			d.IconResource = value
		case "iconindex":
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				d.IconIndex = n
			}
		}
	}
	if d.IconResource == "" {
		return fmt.Errorf("decode descriptor: %w", ErrNoIconResource)
	}
	return nil
}
