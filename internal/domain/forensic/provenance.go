package forensic

import "regexp"

// rutRegex matches a Chilean RUT: up to two leading digits, two dotted
// thousand blocks and a verifier digit or k.
var rutRegex = regexp.MustCompile(`\d{1,2}\.\d{3}\.\d{3}-[\dkK]`)

// TagProvenance attaches the first RUT-shaped token found in the text to the
// first expense of the batch and returns a new slice; the input is not
// mutated. Only the first expense receives the supplier; statements naming
// several suppliers leave the rest untagged.
func TagProvenance(text string, expenses []Expense) []Expense {
	rut := rutRegex.FindString(text)
	if rut == "" || len(expenses) == 0 {
		return expenses
	}

	tagged := make([]Expense, len(expenses))
	copy(tagged, expenses)
	tagged[0].SupplierTaxID = &rut
	return tagged
}
