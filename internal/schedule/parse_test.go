package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,day,time,title,location,department
2025-05-12,lunedì,9:00–10:00,Lab aperto,Aula Magna,Fisica
2025-05-12,lunedì,mattino,"Rocce, minerali e fossili",Museo,DST
2025-05-13,martedì,14:00–15:30,Visita guidata,Cortile,Chimica
`

// TestParseSchedule_Basic tests field mapping and record count on a
// well-formed file
func TestParseSchedule_Basic(t *testing.T) {
	events, report, err := ParseSchedule([]byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 3, report.Rows)
	assert.Zero(t, report.Dropped)

	first := events[0]
	assert.Equal(t, "2025-05-12", first.Date)
	assert.Equal(t, "lunedì", first.Day)
	assert.Equal(t, "9:00–10:00", first.TimeSpec)
	assert.Equal(t, "Lab aperto", first.Title)
	assert.Equal(t, "Aula Magna", first.Location)
	assert.Equal(t, "Fisica", first.Department)
}

// TestParseSchedule_QuotedDelimiter tests that commas inside quotes are
// literal and the quotes themselves are stripped
func TestParseSchedule_QuotedDelimiter(t *testing.T) {
	events, _, err := ParseSchedule([]byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, "Rocce, minerali e fossili", events[1].Title)
}

// TestParseSchedule_DropsMismatchedRows tests silent dropping of rows
// whose field count disagrees with the header
func TestParseSchedule_DropsMismatchedRows(t *testing.T) {
	csv := "date,day,time,title,location,department\n" +
		"2025-05-12,lunedì,9:00–10:00,Ok,Aula,Fisica\n" +
		"2025-05-12,lunedì,troppo,corto\n" +
		"2025-05-12,lunedì,9,Extra,Aula,Fisica,di,troppo\n"

	events, report, err := ParseSchedule([]byte(csv))
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 3, report.Rows)
	assert.Equal(t, 2, report.Dropped)
}

// TestParseSchedule_HeaderOrderIndependent tests matching fields by name
// regardless of column order
func TestParseSchedule_HeaderOrderIndependent(t *testing.T) {
	csv := "title,department,date,time,location,day\n" +
		"Seminario,DSTF,2025-05-14,pomeriggio,Aula 3,mercoledì\n"

	events, _, err := ParseSchedule([]byte(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Seminario", events[0].Title)
	assert.Equal(t, "DSTF", events[0].Department)
	assert.Equal(t, "pomeriggio", events[0].TimeSpec)
}

// TestParseSchedule_MissingHeaderField tests the one hard error: an
// unusable header
func TestParseSchedule_MissingHeaderField(t *testing.T) {
	csv := "date,day,time,title,location\n2025-05-12,lunedì,9,X,Y\n"
	_, _, err := ParseSchedule([]byte(csv))
	assert.ErrorContains(t, err, "department")
}

// TestParseSchedule_DayDerivedFromDate tests that a missing or wrong day
// column is replaced by the weekday the date implies
func TestParseSchedule_DayDerivedFromDate(t *testing.T) {
	// 2025-05-12 is a Monday.
	csv := "date,day,time,title,location,department\n" +
		"2025-05-12,,9,Senza giorno,Aula,Fisica\n" +
		"2025-05-12,venerdì,10,Giorno sbagliato,Aula,Fisica\n" +
		"2025-05-12,Lunedì,11,Case diverso,Aula,Fisica\n"

	events, report, err := ParseSchedule([]byte(csv))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "lunedì", events[0].Day)
	assert.Equal(t, "lunedì", events[1].Day)
	// Case-insensitive agreement is not a mismatch, but is normalized.
	assert.Equal(t, "lunedì", events[2].Day)
	assert.Equal(t, 1, report.DayMismatches)
}

// TestParseSchedule_BadDateKeptAsWritten tests that a non-ISO date keeps
// the record and its day column
func TestParseSchedule_BadDateKeptAsWritten(t *testing.T) {
	csv := "date,day,time,title,location,department\n" +
		"12/05/2025,lunedì,9,Data strana,Aula,Fisica\n"

	events, report, err := ParseSchedule(([]byte)(csv))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "lunedì", events[0].Day)
	assert.Equal(t, 1, report.BadDates)
}

// TestParseSchedule_CRLF tests Windows line endings
func TestParseSchedule_CRLF(t *testing.T) {
	csv := "date,day,time,title,location,department\r\n" +
		"2025-05-12,lunedì,9,Ok,Aula,Fisica\r\n"
	events, _, err := ParseSchedule([]byte(csv))
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

// TestSplitLine tests the quote-toggle scanner directly
func TestSplitLine(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitLine("a,b,c"))
	assert.Equal(t, []string{"a,b", "c"}, splitLine(`"a,b",c`))
	assert.Equal(t, []string{"a", ""}, splitLine("a,"))
	assert.Equal(t, []string{""}, splitLine(""))
	// Unbalanced quote: the rest of the line stays one field.
	assert.Equal(t, []string{"a", "b,c"}, splitLine(`a,"b,c`))
}
