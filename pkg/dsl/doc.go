/*
Package dsl provides a fluent Go builder for rule forests.

It lets hosts and tests declare classification rules in code instead of a
rule file, with the same validation a loaded file goes through.

Example usage:

	b := dsl.New()

	b.Add("PKS").Domains("KS", "A").When("0 and not 1")
	b.Add("Type I PKS").Under("PKS").
		Domains("KS").When("0").
		Filter("KS", "PKS_KS", "PKS")
	b.Add("NRPS").Domains("KS", "A").When("1 and not 0").
		Rename("ACP", "T").After("A", "C")

	forest, err := b.Build()
*/
package dsl
