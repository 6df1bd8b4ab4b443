package recordstore

import "strings"

// RecordIDFormula builds a formula matching any of ids against RECORD_ID().
// It returns an empty string when ids is empty.
func RecordIDFormula(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	clauses := make([]string, 0, len(ids))
	for _, id := range ids {
		clauses = append(clauses, "RECORD_ID()='"+escapeFormulaString(id)+"'")
	}
	return "OR(" + strings.Join(clauses, ",") + ")"
}

// uniqueIDs drops blanks and duplicates, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func escapeFormulaString(s string) string {
	return formulaEscaper.Replace(s)
}
