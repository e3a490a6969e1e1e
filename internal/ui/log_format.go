package ui

import (
	"fmt"
	"strconv"
	"strings"
)

type logField struct {
	key   string
	value string
}

// formatLogLine turns a logrus text entry into
// "2026-10-17 10:00:01 WARN [controller] Recipe #3 (detail) – fetch failed"
// with remaining fields listed below it. Lines that don't parse are returned
// unchanged.
func formatLogLine(line string) string {
	fields, ok := parseLogFields(line)
	if !ok {
		return line
	}

	var ts, level, msg, component, op string
	recipeID := 0
	var details []logField
	for _, f := range fields {
		switch f.key {
		case "time":
			ts = f.value
		case "level":
			level = f.value
		case "msg":
			msg = f.value
		case "component":
			component = f.value
		case "op":
			op = f.value
		case "recipe_id":
			if id, err := strconv.Atoi(f.value); err == nil {
				recipeID = id
				continue
			}
			details = append(details, f)
		default:
			details = append(details, f)
		}
	}
	if level == "" && msg == "" {
		return line
	}

	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		level = "INFO"
	}
	if level == "WARNING" {
		level = "WARN"
	}
	parts := []string{level}
	if ts != "" {
		parts = append([]string{ts}, parts...)
	}
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	header := strings.Join(parts, " ")
	if subject := composeSubject(recipeID, op); subject != "" {
		header += " " + subject
	}
	if message := strings.TrimSpace(msg); message != "" {
		header += " – " + message
	}
	if len(details) == 0 {
		return header
	}

	var builder strings.Builder
	builder.WriteString(header)
	for _, detail := range details {
		value := strings.TrimSpace(detail.value)
		if value == "" {
			continue
		}
		builder.WriteString("\n    - ")
		builder.WriteString(detail.key)
		builder.WriteString(": ")
		builder.WriteString(value)
	}
	return builder.String()
}

func composeSubject(recipeID int, op string) string {
	op = strings.TrimSpace(op)
	switch {
	case recipeID > 0 && op != "":
		return fmt.Sprintf("Recipe #%d (%s)", recipeID, op)
	case recipeID > 0:
		return fmt.Sprintf("Recipe #%d", recipeID)
	default:
		return op
	}
}

// parseLogFields splits key=value pairs. Quoted values are unquoted the way
// logrus quotes them.
func parseLogFields(line string) ([]logField, bool) {
	var fields []logField
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 || strings.ContainsAny(rest[:eq], " \t\"") {
			return nil, false
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := closingQuote(rest)
			if end < 0 {
				return nil, false
			}
			unq, err := strconv.Unquote(rest[:end+1])
			if err != nil {
				return nil, false
			}
			value, rest = unq, rest[end+1:]
		} else {
			value, rest, _ = strings.Cut(rest, " ")
		}
		fields = append(fields, logField{key: key, value: value})
		rest = strings.TrimLeft(rest, " ")
	}
	return fields, len(fields) > 0
}

// closingQuote returns the index of the quote ending the string that opens
// at s[0], or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
