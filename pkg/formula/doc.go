// Package formula enumerates chemical design spaces: every unique reduced
// formula that can be built from n-combinations of a set of elements.
//
// What:
//
//   - Candidates/Combinations concatenate n-combinations of element symbols,
//     in lexicographic index order ("combinations without replacement").
//   - Parse tokenizes a formula greedily against an ElementTable, trying a
//     two-character symbol before a one-character one ("BaO" → Ba, O).
//   - Composition.ReducedFormula renders the lowest-ratio formula.
//   - Screen keeps the first occurrence of each composition, in order.
//   - EnumerateUniqueFormulas chains all of the above.
//
// Ordering:
//
//   - OrderElectronegativity (default): ascending Pauling electronegativity,
//     ties alphabetical, elements without a value last ("TiO", "BaTiO3").
//   - OrderAlphabetical: by symbol ("OTi").
//
// Complexity:
//
//   - Enumerate: O(C(n,k)·k) time, O(unique) memory.
//
// Errors:
//
//   - ErrInvalidInput: empty element set or a blank symbol.
//   - ErrInvalidArity: arity outside [1, len(elements)].
//   - ErrParse: a formula could not be tokenized; returned as *ParseError.
//
// All operations are pure and deterministic; the first error aborts the
// enumeration and no partial result is returned.
package formula
