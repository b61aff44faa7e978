// flags.go defines constants for all CLI flag names.
//
// Using constants instead of string literals prevents typos and enables
// compile-time checking when flag names are used in both Flags().Type()
// definitions and GetType() calls.
//
// Naming convention: Flag<PascalCaseName> where name matches the CLI flag
// (e.g., "section_name" -> FlagSectionName). Flags inherited from the
// original corpus scripts keep their snake_case spelling.

package extension

// Flag name constants for CLI commands.
// These are used with cobra's Flags().Type() and GetType() methods.
const (
	// Boolean flags

	FlagCheckEnc = "check_enc" // Run the UTF-8 encoding check
	FlagDiff     = "diff"      // Show diff output
	FlagLocal    = "local"     // Use local scope

	// String flags

	FlagInput       = "input"        // Input file
	FlagOutput      = "output"       // Output directory
	FlagRuns        = "runs"         // Run range (e.g., "2:1")
	FlagSectionName = "section_name" // Name of the resulting section
	FlagSince       = "since"        // Age threshold (e.g., "7d")
	FlagSource      = "source"       // Ledger source filter

	// Integer flags

	FlagEncodingLines = "encoding_lines" // Lines sampled by the encoding check
	FlagLimit         = "limit"          // Limit number of results
)
