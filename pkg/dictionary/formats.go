package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat identifies a dictionary file layout.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // int32 count, then (uint16 len, word, uint32 freq) records
	FormatText               // "word frequency" lines
)

// FormatInfo describes one FileFormat.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Binary Chunk Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4,
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ".dict"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// GetFormatInfo returns the metadata for format.
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, ok := supportedFormats[format]
	return info, ok
}

// formatForExt maps a lowercased extension to its format.
func formatForExt(ext string) FileFormat {
	for format, info := range supportedFormats {
		if slices.Contains(info.Extensions, ext) {
			return format
		}
	}
	return FormatUnknown
}

// ValidateFileFormat checks that filename is a plausible file of format.
func ValidateFileFormat(filename string, format FileFormat) error {
	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %d", format)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(info.Extensions, ext) {
		return fmt.Errorf("%s: extension %q is not one of %v", filename, ext, info.Extensions)
	}

	stat, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	if stat.Size() < info.MinSize {
		return fmt.Errorf("%s: %d bytes is too small for a %s", filename, stat.Size(), info.Description)
	}

	if format == FormatChunk {
		return checkChunkHeader(filename)
	}
	return nil
}

// checkChunkHeader reads only the entry count.
func checkChunkHeader(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()

	var count int32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if count < 0 || count > maxBinaryEntries {
		return fmt.Errorf("%s: invalid entry count %d", filename, count)
	}

	log.Debugf("Chunk %s holds %d entries", filename, count)
	return nil
}

// DetectFileFormat picks a format by extension and validates the file against it.
func DetectFileFormat(filename string) (FileFormat, error) {
	format := formatForExt(strings.ToLower(filepath.Ext(filename)))
	if format == FormatUnknown {
		return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
	}
	if err := ValidateFileFormat(filename, format); err != nil {
		return FormatUnknown, err
	}
	return format, nil
}
