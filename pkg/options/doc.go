// Package options turns the dfmt README option table into editor settings.
//
// The table body is parsed into Rows, each switch name is normalized into a
// dotted settings identifier, and the "allowed values" column is classified
// into a Descriptor:
//
//	rows, err := options.ParseOptionTable(section)
//	n := options.DefaultNormalizer()
//	for _, row := range rows {
//	    d, err := options.Synthesize(row.RawOptions, row.Description, options.DefaultScope)
//	    ...
//	    fmt.Println(n.Identifier(row.SwitchName), d.Type)
//	}
//
// All parsing failures wrap ErrRowShape or ErrClassification so callers can
// tell an upstream documentation change apart from an I/O problem.
package options
