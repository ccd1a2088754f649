// Package formula builds filter expressions for the record store's formula
// language.
//
// Every literal is emitted through Quote, so user-controlled values cannot
// close a string literal early and change the structure of the expression:
//
//	formula.Eq("culture", "O'Hara's")          // {culture}='O\'Hara\'s'
//	formula.EqFold("culture", "Inde")          // LOWER({culture})=LOWER('Inde')
//	formula.Match{Field: "culture"}.Build(nil) // FALSE()
//
// Multiple values are combined with OR. Linked record fields use a
// containment test over ARRAYJOIN instead of equality.
package formula
