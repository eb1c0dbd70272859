package basiclang

import "strings"

// StringWithArrows renders the lines of fileText spanned by [start,
// end) with a caret ('^') underline beneath the error range. A span
// covering multiple lines produces one caret row per line.
//
// This is a pure formatting helper with no dependency on the lexer,
// parser, or interpreter; it operates purely on text and positions.
func StringWithArrows(fileText string, start, end Position) string {
	var result strings.Builder

	// tail is fileText from i on, or "" when i is past the end.
	tail := func(i int) string {
		if i > len(fileText) {
			return ""
		}
		return fileText[i:]
	}
	upTo := start.Idx + 1
	if upTo > len(fileText) {
		upTo = len(fileText)
	}

	idxStart := maxInt(strings.LastIndex(fileText[:upTo], "\n"), 0)
	idxEnd := strings.Index(tail(idxStart+1), "\n")
	if idxEnd < 0 {
		idxEnd = len(fileText)
	} else {
		idxEnd += idxStart + 1
	}

	lineCount := end.Line - start.Line + 1
	for i := 0; i < lineCount; i++ {
		line := fileText[idxStart:idxEnd]

		colStart := 0
		if i == 0 {
			colStart = start.Col
		}
		colEnd := len(line)
		if i == lineCount-1 {
			colEnd = end.Col
		}
		if colEnd <= colStart {
			colEnd = colStart + 1
		}

		result.WriteString(line)
		result.WriteString("\n")
		result.WriteString(strings.Repeat(" ", colStart))
		result.WriteString(strings.Repeat("^", colEnd-colStart))

		idxStart = idxEnd
		next := strings.Index(tail(idxStart+1), "\n")
		if next < 0 {
			idxEnd = len(fileText)
		} else {
			idxEnd = idxStart + 1 + next
		}

		if i < lineCount-1 {
			result.WriteString("\n")
		}
	}

	return strings.ReplaceAll(result.String(), "\t", "")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
