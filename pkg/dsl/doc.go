/*
Package dsl builds FAQ documents in Go instead of YAML or JSON files.

It is useful for tests, generated catalogues and embedding a small FAQ in a binary.

Example usage:

	b := dsl.New("FAQ")

	b.Category("Payments").
		Question("Where can I pay?", "At the front desk or online.").
		Question("Do you take cards?", "Visa and Mastercard.")

	b.Question("Opening hours", "Nine to six.")

	src, err := b.Source()
	if err != nil {
		return err
	}
	engine, err := deeds.New("", deeds.WithSource(src))
*/
package dsl
