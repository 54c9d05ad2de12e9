package layout

import "fmt"

// Config holds the layout parameters, in canonical pixels
type Config struct {
	// ColumnThreshold is the spread of bubble left edges above which the
	// sheet is split into two columns (exclusive).
	// Default: 250
	ColumnThreshold int

	// RowTolerance is the largest vertical distance, exclusive, between
	// consecutive bubbles of the same row.
	// Default: 20
	RowTolerance int

	// Options is the number of bubbles kept per row.
	// Default: 5
	Options int

	// MinOptions is the fewest bubbles a row may have and still count as a
	// question.
	// Default: 3
	MinOptions int

	// LeftColumnQuestions fixes the size of the left column on two column
	// sheets. Zero derives it from the expected question count.
	LeftColumnQuestions int
}

// DefaultConfig returns the configuration for the standard printed card
func DefaultConfig() Config {
	return Config{
		ColumnThreshold: 250,
		RowTolerance:    20,
		Options:         5,
		MinOptions:      3,
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.ColumnThreshold <= 0 {
		return fmt.Errorf("column threshold must be positive, got %d", c.ColumnThreshold)
	}
	if c.RowTolerance <= 0 {
		return fmt.Errorf("row tolerance must be positive, got %d", c.RowTolerance)
	}
	if c.Options <= 0 {
		return fmt.Errorf("options must be positive, got %d", c.Options)
	}
	if c.MinOptions <= 0 || c.MinOptions > c.Options {
		return fmt.Errorf("min options must be in [1, %d], got %d", c.Options, c.MinOptions)
	}
	if c.LeftColumnQuestions < 0 {
		return fmt.Errorf("left column questions must not be negative, got %d", c.LeftColumnQuestions)
	}
	return nil
}

// WithDefaults returns c with every unset (zero or negative) field taken
// from DefaultConfig. A defaulted MinOptions never exceeds Options.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.ColumnThreshold <= 0 {
		c.ColumnThreshold = def.ColumnThreshold
	}
	if c.RowTolerance <= 0 {
		c.RowTolerance = def.RowTolerance
	}
	if c.Options <= 0 {
		c.Options = def.Options
	}
	if c.MinOptions <= 0 {
		c.MinOptions = min(def.MinOptions, c.Options)
	}
	if c.LeftColumnQuestions < 0 {
		c.LeftColumnQuestions = 0
	}
	return c
}
