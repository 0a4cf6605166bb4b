package migration

import "strings"

// splitState tracks whether the scan is inside an explicit BEGIN;..COMMIT;
// span
type splitState int

const (
	stateNormal splitState = iota
	stateInTransactionBlock
)

// SplitStatements splits a cleaned SQL block into individually executable
// statements. An explicit BEGIN; .. COMMIT;/ROLLBACK; span is kept together
// as one statement. The scan is line oriented: transaction keywords and
// terminating semicolons only count when they end a line.
func SplitStatements(block string) (statements []string) {
	var acc strings.Builder
	state := stateNormal

	flush := func() {
		stmt := strings.TrimSpace(acc.String())
		if stmt != "" {
			statements = append(statements, stmt)
		}
		acc.Reset()
	}

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.ToUpper(strings.TrimSpace(line))

		switch {
		case trimmed == "BEGIN;":
			acc.WriteString(line)
			acc.WriteString("\n")
			state = stateInTransactionBlock

		case trimmed == "COMMIT;" || trimmed == "ROLLBACK;":
			acc.WriteString(line)
			acc.WriteString("\n")
			if state == stateInTransactionBlock {
				flush()
				state = stateNormal
			}

		case strings.HasSuffix(trimmed, ";") && state == stateNormal:
			acc.WriteString(line)
			flush()

		default:
			acc.WriteString(line)
			acc.WriteString("\n")
		}
	}

	// A trailing statement not terminated by a recognized marker
	flush()

	return statements
}
