package repository

// Test-only access to the table parsers
var (
	ParseCSV   = parseCSV
	ParseTable = parseTable
)
