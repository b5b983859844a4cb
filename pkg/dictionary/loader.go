package dictionary

import (
	"bufio"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

//go:embed seed_words.txt
var seedWords string

// maxBinaryEntries guards against corrupt headers.
const maxBinaryEntries = 1000000

// DefaultEntries returns the built-in seed dictionary.
func DefaultEntries() []Entry {
	entries, err := ParseText(strings.NewReader(seedWords))
	if err != nil {
		log.Errorf("Failed to parse built-in seed list: %v", err)
		return nil
	}
	return entries
}

// ParseText reads "word [frequency]" lines.
// Blank lines and lines starting with # are skipped; a missing frequency means 1.
func ParseText(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		freq := 1
		word := fields[0]
		if len(fields) > 1 {
			last := fields[len(fields)-1]
			n, err := strconv.Atoi(last)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid frequency %q: %w", lineNo, last, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNegativeFrequency)
			}
			freq = n
			word = strings.Join(fields[:len(fields)-1], " ")
		}
		entries = append(entries, Entry{Word: word, Frequency: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text dictionary: %w", err)
	}
	return entries, nil
}

// ReadBinary decodes the chunk format: an int32 entry count followed by
// (uint16 length, word bytes, uint32 frequency) records, all little endian.
func ReadBinary(r io.Reader) ([]Entry, error) {
	reader := bufio.NewReader(r)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if total < 0 || total > maxBinaryEntries {
		return nil, fmt.Errorf("invalid entry count %d in chunk header", total)
	}

	entries := make([]Entry, 0, total)
	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				log.Warnf("Chunk ended after %d of %d entries", i, total)
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var freq uint32
		if err := binary.Read(reader, binary.LittleEndian, &freq); err != nil {
			return nil, fmt.Errorf("failed to read frequency: %w", err)
		}
		if freq > math.MaxInt32 {
			return nil, fmt.Errorf("frequency %d for %q out of range", freq, wordBytes)
		}

		entries = append(entries, Entry{Word: string(wordBytes), Frequency: int(freq)})
	}
	return entries, nil
}

// WriteBinary encodes entries in the format read by ReadBinary.
func WriteBinary(w io.Writer, entries []Entry) error {
	if len(entries) > maxBinaryEntries {
		return fmt.Errorf("too many entries for one chunk: %d", len(entries))
	}
	writer := bufio.NewWriter(w)

	if err := binary.Write(writer, binary.LittleEndian, int32(len(entries))); err != nil {
		return fmt.Errorf("failed to write chunk header: %w", err)
	}
	for _, e := range entries {
		if len(e.Word) > math.MaxUint16 {
			return fmt.Errorf("word too long: %d bytes", len(e.Word))
		}
		if e.Frequency < 0 {
			return fmt.Errorf("%q: %w", e.Word, ErrNegativeFrequency)
		}
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(e.Word))); err != nil {
			return err
		}
		if _, err := writer.WriteString(e.Word); err != nil {
			return err
		}
		if err := binary.Write(writer, binary.LittleEndian, uint32(e.Frequency)); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// LoadFile reads a text or binary dictionary, chosen by DetectFileFormat.
func LoadFile(path string) ([]Entry, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	var entries []Entry
	switch format {
	case FormatChunk:
		entries, err = ReadBinary(file)
	case FormatText:
		entries, err = ParseText(file)
	default:
		return nil, fmt.Errorf("unsupported format for %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debugf("Loaded %d entries from %s", len(entries), path)
	return entries, nil
}
