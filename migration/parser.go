package migration

import (
	"fmt"
	"strings"

	"github.com/pgshift/pgshift/e"
	"github.com/pgshift/pgshift/migration/model"
)

const (
	ECode000301 = e.Code0003 + "01"
)

const (
	upMarker   = "-- up migration"
	downMarker = "-- down migration"
)

// Parsed the up and down SQL blocks extracted from a migration file. Legacy
// files predate the markers: the whole file is the up block and no down
// block exists. A marked file with an empty down block is not legacy - that
// is a validation failure, while legacy is only a warning.
type Parsed struct {
	Up       string
	Down     string
	Legacy   bool
	Checksum string
}

// Parse extracts the up and down blocks from a migration file. Lines whose
// trimmed form starts with a backslash are interactive client meta-commands,
// not executable SQL, and are stripped before the blocks are returned.
func Parse(f *File) (p *Parsed, err error) {
	content := string(f.Raw)

	upIdx, downIdx := markerOffsets(content)

	p = &Parsed{
		Checksum: Checksum(f.Raw),
	}

	if upIdx < 0 && downIdx < 0 {
		p.Legacy = true
		p.Up = cleanBlock(content)
		return p, nil
	}

	var up, down string
	switch {
	case upIdx >= 0 && downIdx >= 0:
		if downIdx < upIdx {
			return nil, e.W(nil, ECode000301,
				fmt.Sprintf("down marker precedes up marker in %s", f.Filename))
		}
		up = stripMarkerLine(content[upIdx:downIdx])
		down = stripMarkerLine(content[downIdx:])
	case upIdx >= 0:
		up = stripMarkerLine(content[upIdx:])
	default:
		// Only a down marker: everything before it is the up block
		up = content[:downIdx]
		down = stripMarkerLine(content[downIdx:])
	}

	p.Up = cleanBlock(up)
	p.Down = cleanBlock(down)

	return p, nil
}

// Block returns the SQL for the requested direction
func (p *Parsed) Block(dir model.Direction) string {
	if dir == model.DirectionDown {
		return p.Down
	}
	return p.Up
}

// markerOffsets returns the byte offsets of the up and down marker lines,
// or -1 when absent. Markers are matched case-insensitively and must sit on
// their own line.
func markerOffsets(content string) (upIdx, downIdx int) {
	upIdx, downIdx = -1, -1

	offset := 0
	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		if upIdx < 0 && trimmed == upMarker {
			upIdx = offset
		}
		if downIdx < 0 && trimmed == downMarker {
			downIdx = offset
		}
		offset += len(line)
	}

	return upIdx, downIdx
}

// stripMarkerLine drops the first line of a block, which holds the marker
func stripMarkerLine(block string) string {
	if idx := strings.Index(block, "\n"); idx >= 0 {
		return block[idx+1:]
	}
	return ""
}

// cleanBlock removes meta-command lines and trims the block
func cleanBlock(block string) string {
	lines := strings.Split(block, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), `\`) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
