// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// maxConfigFileSize rejects config files that are clearly not hand-written.
const maxConfigFileSize = 1 << 20

// checkFileSize guards the CUE compiler against oversized input.
func checkFileSize(data []byte, path string) error {
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("%s: file size %d exceeds maximum %d bytes", path, len(data), maxConfigFileSize)
	}
	return nil
}

// formatCUEError flattens a CUE error list into "<file>: <path>: <message>"
// lines, with array indices rendered as [n].
func formatCUEError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		pathStr := formatCUEPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes repeats the path inside the message.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		if pathStr != "" {
			lines = append(lines, pathStr+": "+msg)
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatCUEPath turns ["refresh", "helper_command", "0"] into
// "refresh.helper_command[0]".
func formatCUEPath(path []string) string {
	var sb strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
