package config

// Specification of measuring oracle used for layout.
// ENUM(grid, font)
type OracleKind int

// Specification of console output after layout.
// ENUM(none, plain, boxes)
type ConsoleMode int
