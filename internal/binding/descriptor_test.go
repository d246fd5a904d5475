// SPDX-License-Identifier: MPL-2.0

package binding

import (
	"errors"
	"strings"
	"testing"
)

func TestDescriptorText(t *testing.T) {
	t.Parallel()

	d := Descriptor{IconResource: `C:\Users\me\Pictures\folder.ico`}
	want := strings.Join([]string{
		"[.ShellClassInfo]",
		`IconResource=C:\Users\me\Pictures\folder.ico,0`,
		"IconIndex=0",
		"[ViewState]",
		"Mode=",
		"Vid=",
		"FolderType=Generic",
		"",
	}, "\r\n")
	if got := d.Text(); got != want {
		t.Errorf("Text() =\n%q\nwant\n%q", got, want)
	}
}

func TestDescriptorEncoding(t *testing.T) {
	t.Parallel()

	data, err := Descriptor{IconResource: "x"}.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	// BOM, then '[' as a little-endian code unit.
	if len(data) < 4 || data[0] != 0xff || data[1] != 0xfe || data[2] != '[' || data[3] != 0 {
		t.Fatalf("unexpected prefix % x", data[:min(4, len(data))])
	}
}

func TestDescriptorUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []byte
		want    Descriptor
		wantErr error
	}{
		{
			name:  "utf8 with comments",
			input: []byte("; comment\n[.ShellClassInfo]\nIconResource=D:\\a,b\\folder.ico,2\n"),
			want:  Descriptor{IconResource: `D:\a,b\folder.ico`, IconIndex: 2},
		},
		{
			name:  "keys in other sections ignored",
			input: []byte("[Other]\nIconResource=nope\n[.ShellClassInfo]\nIconResource=icon.ico\nIconIndex=3\n"),
			want:  Descriptor{IconResource: "icon.ico", IconIndex: 3},
		},
		{
			name:    "no icon",
			input:   []byte("[.ShellClassInfo]\nConfirmFileOp=0\n"),
			wantErr: ErrNoIconResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var d Descriptor
			err := d.UnmarshalText(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalText: %v", err)
			}
			if d != tt.want {
				t.Errorf("got %+v, want %+v", d, tt.want)
			}
		})
	}
}

func TestDescriptorRoundTrip(t *testing.T) {
	t.Parallel()

	in := Descriptor{IconResource: `C:\Räume\Ordner\folder.ico`}
	data, err := in.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var out Descriptor
	if err := out.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if out != in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}

func TestAttrString(t *testing.T) {
	t.Parallel()

	if got := (AttrHidden | AttrSystem).String(); got != "hidden|system" {
		t.Errorf("String() = %q", got)
	}
	if got := Attr(0x20).String(); got != "0x20" {
		t.Errorf("String() = %q", got)
	}
}
